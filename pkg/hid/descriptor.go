// Copyright 2015-2023 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package hid

// Item tag bytes, matching the USB HID report descriptor encoding: the
// low two bits select the payload size class (0/1/2/4 bytes, class 3
// meaning 4), the next two bits select Main/Global/Local, and the top
// four bits are the tag. itemMask strips the size-class bits so items can
// be switched on regardless of payload width.
const (
	itemMask = 0xFC

	itemUsagePage     = 0x04
	itemLogicalMin    = 0x14
	itemLogicalMax    = 0x24
	itemPhysicalMin   = 0x34
	itemPhysicalMax   = 0x44
	itemUnitExponent  = 0x54
	itemUnit          = 0x64
	itemReportSize    = 0x74
	itemReportID      = 0x84
	itemReportCount   = 0x94
	itemUsage         = 0x08
	itemCollection    = 0xA0
	itemEndCollection = 0xC0
	itemFeature       = 0xB0
	itemInput         = 0x80
	itemOutput        = 0x90
	itemLong          = 0xFC
)

var payloadSize = [4]int{0, 1, 2, 4}

type usageNode struct {
	page  uint16
	usage uint16
}

// globalState carries the HID parser's Global item environment: it
// persists across Main items within a Collection and is only ever
// overwritten, never reset, by Global tags.
type globalState struct {
	usagePage uint16

	reportID    uint8
	reportSize  int
	reportCount int

	logMin, logMax int32

	havePhyMin, havePhyMax bool
	phyMin, phyMax         int32

	unit    uint32
	unitExp int8
}

// localState carries the HID parser's Local item environment: the usage
// stack (the current usage page lives in globalState). It is
// cleared after every Main item (HID 1.11 §6.2.2.8) so usages never leak
// between controls.
type localState struct {
	usages []usageNode
}

func (l *localState) reset() {
	l.usages = l.usages[:0]
}

// popUsage removes and returns the oldest pending usage, or the zero
// usage on the current page if none is pending.
func (l *localState) popUsage(page uint16) usageNode {
	if len(l.usages) == 0 {
		return usageNode{page: page}
	}
	u := l.usages[0]
	l.usages = l.usages[1:]
	return u
}

type offsetKey struct {
	reportID uint8
	kind     Kind
}

// Parse walks a raw HID report descriptor and returns the list of Items
// it describes, following HID 1.11 Main/Global/Local item semantics:
//
//   - Usage Page sets the current page for subsequent Usage items.
//   - Usage pushes a pending (page, usage) pair.
//   - Collection pops one usage onto the path stack; an indexed
//     collection (payload >= 0x80) also pushes a synthetic (0xFF, index)
//     node. Local state resets.
//   - End Collection pops the path (and a trailing index node, if any).
//     Local state resets.
//   - Feature/Input/Output emit one Item per ReportCount, each consuming
//     a pending usage, advancing that report's running bit offset, and
//     resetting local state once the count is exhausted.
//   - Report ID/Size/Count and the Logical/Physical/Unit tags update
//     global state.
//   - Long items are skipped over by their declared length.
//
// Parse fails with a *BadDescriptorError if the descriptor, its path
// nesting, its usage stack, or its report table exceed the structural
// bounds in this package's Max* constants. Unrecognized item tags are
// silently skipped, not fatal.
func Parse(desc []byte) (*Descriptor, error) {
	if len(desc) > MaxDescriptor {
		return nil, badDescriptor(0, "descriptor too large: %d > %d", len(desc), MaxDescriptor)
	}

	var (
		d       Descriptor
		g       globalState
		l       localState
		path    []PathNode
		offsets = make(map[offsetKey]int)
		seenIDs = make(map[uint8]bool)
	)

	pos := 0
	for pos < len(desc) {
		tag := desc[pos]
		size := payloadSize[tag&0x03]
		pos++

		if pos+size > len(desc) {
			return nil, badDescriptor(pos, "item payload runs past end of descriptor")
		}

		var raw uint32
		for i := 0; i < size; i++ {
			raw |= uint32(desc[pos+i]) << (8 * uint(i))
		}
		pos += size

		switch tag & itemMask {
		case itemLong:
			skip := int(raw & 0xff)
			if pos+skip > len(desc) {
				return nil, badDescriptor(pos, "long item skip runs past end of descriptor")
			}
			pos += skip

		case itemUsagePage:
			g.usagePage = uint16(raw)

		case itemUsage:
			if len(l.usages) >= MaxUsageStack {
				return nil, badDescriptor(pos, "usage stack overflow (> %d)", MaxUsageStack)
			}
			page := g.usagePage
			if size > 2 {
				page = uint16(raw >> 16)
			}
			l.usages = append(l.usages, usageNode{page: page, usage: uint16(raw & 0xffff)})

		case itemCollection:
			u := l.popUsage(g.usagePage)
			if len(path) >= MaxPathDepth {
				return nil, badDescriptor(pos, "collection path too deep (> %d)", MaxPathDepth)
			}
			path = append(path, PathNode{Page: u.page, Usage: u.usage})

			if raw >= 0x80 {
				if len(path) >= MaxPathDepth {
					return nil, badDescriptor(pos, "collection path too deep (> %d)", MaxPathDepth)
				}
				path = append(path, PathNode{Page: 0xFF, Usage: uint16(raw & 0x7F)})
			}
			l.reset()

		case itemEndCollection:
			if len(path) == 0 {
				return nil, badDescriptor(pos, "end collection with no open collection")
			}
			popped := path[len(path)-1]
			path = path[:len(path)-1]
			if popped.Page == 0xFF {
				if len(path) == 0 {
					return nil, badDescriptor(pos, "end collection with no open collection")
				}
				path = path[:len(path)-1]
			}
			l.reset()

		case itemFeature, itemInput, itemOutput:
			var kind Kind
			switch tag & itemMask {
			case itemFeature:
				kind = Feature
			case itemInput:
				kind = Input
			case itemOutput:
				kind = Output
			}

			attr := Attribute{
				Constant: raw&0x01 != 0,
				Volatile: raw&0x80 != 0,
			}

			count := g.reportCount
			if count == 0 {
				count = 1
			}

			if !seenIDs[g.reportID] {
				if len(seenIDs) >= MaxReportIDs {
					return nil, badDescriptor(pos, "too many distinct report IDs (> %d)", MaxReportIDs)
				}
				seenIDs[g.reportID] = true
			}

			key := offsetKey{reportID: g.reportID, kind: kind}

			for i := 0; i < count; i++ {
				u := l.popUsage(g.usagePage)

				if len(path) >= MaxPathDepth {
					return nil, badDescriptor(pos, "item path too deep (> %d)", MaxPathDepth)
				}
				itemPath := append(append([]PathNode(nil), path...), PathNode{Page: u.page, Usage: u.usage})

				offset := offsets[key]
				if offset+g.reportSize > 8*256 {
					return nil, badDescriptor(pos, "report %d exceeds maximum report length", g.reportID)
				}

				item := Item{
					Path:        itemPath,
					ReportID:    g.reportID,
					Offset:      offset,
					Size:        g.reportSize,
					Kind:        kind,
					Attribute:   attr,
					LogMin:      g.logMin,
					LogMax:      g.logMax,
					HasPhysical: g.havePhyMin && g.havePhyMax,
					PhyMin:      g.phyMin,
					PhyMax:      g.phyMax,
					Unit:        g.unit,
					UnitExp:     g.unitExp,
				}
				d.Items = append(d.Items, item)

				offsets[key] = offset + g.reportSize

				bytesUsed := (offset + g.reportSize + 7) / 8
				if bytesUsed > d.ReportLen[g.reportID] {
					d.ReportLen[g.reportID] = bytesUsed
				}
			}

			l.reset()

		case itemReportID:
			g.reportID = uint8(raw)

		case itemReportSize:
			g.reportSize = int(raw)

		case itemReportCount:
			g.reportCount = int(raw)

		case itemLogicalMin:
			g.logMin = signExtend(raw, size)

		case itemLogicalMax:
			g.logMax = signExtend(raw, size)

		case itemPhysicalMin:
			g.phyMin = signExtend(raw, size)
			g.havePhyMin = true

		case itemPhysicalMax:
			g.phyMax = signExtend(raw, size)
			g.havePhyMax = true

		case itemUnitExponent:
			exp := int8(raw & 0xF)
			if exp > 7 {
				exp -= 16
			}
			g.unitExp = exp

		case itemUnit:
			g.unit = raw

		default:
			// Unrecognized item tag: skip, not fatal.
		}
	}

	if len(path) != 0 {
		return nil, badDescriptor(pos, "descriptor ends with %d unclosed collection(s)", len(path))
	}

	return &d, nil
}

// signExtend interprets raw as a size-byte little-endian two's complement
// integer (size 0 means the value 0, not sign-extended).
func signExtend(raw uint32, size int) int32 {
	switch size {
	case 1:
		return int32(int8(raw))
	case 2:
		return int32(int16(raw))
	default:
		return int32(raw)
	}
}
