// Copyright 2015-2023 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

// Package hid parses USB HID report descriptors and decodes/encodes the
// bit-packed numeric values of the items they describe. It has no
// transport dependency: callers hand it a raw descriptor byte string once
// and a raw report buffer on every read/write. Nothing in this package
// blocks or allocates a goroutine; Parse, GetValue, and SetValue are pure
// functions safe to call from any goroutine on an immutable *Descriptor.
package hid

import "fmt"

// Structural limits from the HID report descriptor format. Exceeding any
// of these during Parse is a BadDescriptor error, never a silent truncation.
const (
	MaxPathDepth  = 10
	MaxUsageStack = 50
	MaxReportIDs  = 256
	MaxDescriptor = 6144
)

// Kind classifies a Main item as a Feature, Input, or Output report field.
type Kind int

const (
	Feature Kind = iota
	Input
	Output
)

func (k Kind) String() string {
	switch k {
	case Feature:
		return "Feature"
	case Input:
		return "Input"
	case Output:
		return "Output"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Attribute flags a data field as constant and/or volatile, mirroring bits
// 0 and 7 of the Main item's flag byte.
type Attribute struct {
	Constant bool
	Volatile bool
}

// PathNode is one (UsagePage, UsageID) step in an Item's collection path.
type PathNode struct {
	Page  uint16
	Usage uint16
}

// Item is one bit-packed field extracted from a report descriptor: a
// named, typed, located slot within some report.
type Item struct {
	Path []PathNode

	ReportID uint8
	Offset   int // bit offset within the report, not counting the leading report-ID byte
	Size     int // bits

	Kind      Kind
	Attribute Attribute

	LogMin, LogMax int32

	HasPhysical    bool
	PhyMin, PhyMax int32

	Unit    uint32
	UnitExp int8
}

// Descriptor is the parsed form of a raw HID report descriptor: an
// ordered list of Items plus the byte length of every report ID they
// reference. It is immutable once returned by Parse and may be shared
// freely across goroutines.
type Descriptor struct {
	Items []Item

	// ReportLen[id] is the byte length of report id, not counting the
	// leading report-ID byte.
	ReportLen [MaxReportIDs]int
}
