// Copyright 2015-2023 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package hid

import "math"

// Known HID Power Device unit codes and the exponent baked into each by
// convention (HID PDC ch. 3.2.3): a voltage item with UnitExp 7 is really
// reporting volts, not 10^7 volts, because the unit itself already carries
// an implicit *10^7. PhysicalValue subtracts this baseline off the item's
// declared UnitExp so callers get volts, amps, watts, and so on rather
// than whatever scale the device's firmware happened to pick.
var knownUnitExponents = map[uint32]int{
	0x00000000: 0, // none / percent
	0x00F0D121: 7, // voltage
	0x00100001: 0, // ampere
	0x0000D121: 7, // VA
	0x00001001: 0, // second
	0x00010001: 0, // kelvin
	0x0000F001: 0, // hertz
	0x00101001: 0, // ampere-second
}

func knownUnitExponent(unit uint32) (int, bool) {
	exp, ok := knownUnitExponents[unit]
	return exp, ok
}

func pow10(exp int) float64 {
	return math.Pow(10, float64(exp))
}
