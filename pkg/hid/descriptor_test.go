// Copyright 2015-2023 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package hid

import "testing"

// simpleVoltageDescriptor encodes one Application collection containing a
// single 8-bit unsigned Input item (usage page 1, item usage 0x30, report
// ID 1): UsagePage, Usage, Collection,
// ReportID, Usage, LogicalMinimum, LogicalMaximum, ReportSize, ReportCount,
// Input, EndCollection.
func simpleVoltageDescriptor() []byte {
	return []byte{
		0x05, 0x01, // Usage Page (1)
		0x09, 0x01, // Usage (1)
		0xA1, 0x01, // Collection (Application)
		0x85, 0x01, // Report ID (1)
		0x09, 0x30, // Usage (0x30)
		0x15, 0x00, // Logical Minimum (0)
		0x26, 0xFF, 0x00, // Logical Maximum (255), 2-byte payload
		0x75, 0x08, // Report Size (8)
		0x95, 0x01, // Report Count (1)
		0x81, 0x02, // Input (Data,Var,Abs)
		0xC0, // End Collection
	}
}

func TestParseSimpleDescriptor(t *testing.T) {
	d, err := Parse(simpleVoltageDescriptor())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(d.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(d.Items))
	}

	it := d.Items[0]
	if it.ReportID != 1 || it.Offset != 0 || it.Size != 8 {
		t.Fatalf("item = %+v, want ReportID=1 Offset=0 Size=8", it)
	}
	if it.LogMin != 0 || it.LogMax != 255 {
		t.Fatalf("item logical range = [%d,%d], want [0,255]", it.LogMin, it.LogMax)
	}
	if it.Kind != Input {
		t.Fatalf("item kind = %v, want Input", it.Kind)
	}
	if len(it.Path) != 2 || it.Path[0].Page != 1 || it.Path[0].Usage != 1 || it.Path[1].Usage != 0x30 {
		t.Fatalf("item path = %+v, want [{1 1} {1 48}]", it.Path)
	}
	if d.ReportLen[1] != 1 {
		t.Fatalf("ReportLen[1] = %d, want 1", d.ReportLen[1])
	}
}

// Structural invariants (offset/size bounds, path depth, bit accounting)
// checked generically against whatever items Parse produces for a
// handful of descriptors.
func TestParseInvariants(t *testing.T) {
	descriptors := [][]byte{simpleVoltageDescriptor(), twoItemDescriptor()}

	for di, desc := range descriptors {
		d, err := Parse(desc)
		if err != nil {
			t.Fatalf("descriptor %d: Parse: %v", di, err)
		}

		bitsByReport := make(map[uint8]int)
		for _, it := range d.Items {
			if it.Offset < 0 {
				t.Fatalf("descriptor %d: item offset %d < 0", di, it.Offset)
			}
			if it.Size < 1 || it.Size > 32 {
				t.Fatalf("descriptor %d: item size %d out of [1,32]", di, it.Size)
			}
			if it.Offset+it.Size > 8*d.ReportLen[it.ReportID] {
				t.Fatalf("descriptor %d: item %+v overruns report length %d bytes", di, it, d.ReportLen[it.ReportID])
			}
			if len(it.Path) > MaxPathDepth {
				t.Fatalf("descriptor %d: item path depth %d > %d", di, len(it.Path), MaxPathDepth)
			}
			bitsByReport[it.ReportID] += it.Size
		}

		for id, bits := range bitsByReport {
			if want := 8 * d.ReportLen[id]; bits != want {
				t.Fatalf("descriptor %d: report %d has %d bits of items, report length implies %d", di, id, bits, want)
			}
		}
	}
}

// twoItemDescriptor packs two 4-bit items into the same report byte,
// exercising the running bit-offset tracking within a single report ID.
func twoItemDescriptor() []byte {
	return []byte{
		0x05, 0x01, // Usage Page (1)
		0x09, 0x01, // Usage (1)
		0xA1, 0x01, // Collection (Application)
		0x85, 0x02, // Report ID (2)
		0x15, 0x00, // Logical Minimum (0)
		0x25, 0x0F, // Logical Maximum (15)
		0x75, 0x04, // Report Size (4)
		0x95, 0x02, // Report Count (2)
		0x09, 0x31, // Usage (0x31)
		0x09, 0x32, // Usage (0x32)
		0x81, 0x02, // Input (Data,Var,Abs)
		0xC0, // End Collection
	}
}

func TestParseRunningOffset(t *testing.T) {
	d, err := Parse(twoItemDescriptor())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(d.Items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(d.Items))
	}
	if d.Items[0].Offset != 0 || d.Items[1].Offset != 4 {
		t.Fatalf("offsets = [%d,%d], want [0,4]", d.Items[0].Offset, d.Items[1].Offset)
	}
	if d.ReportLen[2] != 1 {
		t.Fatalf("ReportLen[2] = %d, want 1", d.ReportLen[2])
	}
}

func TestParseUnclosedCollectionFails(t *testing.T) {
	desc := []byte{0x05, 0x01, 0x09, 0x01, 0xA1, 0x01}
	if _, err := Parse(desc); err == nil {
		t.Fatal("expected error for unclosed collection")
	}
}

func TestParseUnmatchedEndCollectionFails(t *testing.T) {
	desc := []byte{0xC0}
	if _, err := Parse(desc); err == nil {
		t.Fatal("expected error for unmatched end collection")
	}
}

func TestParseIndexedCollectionPopsSyntheticNode(t *testing.T) {
	desc := []byte{
		0x05, 0x01, // Usage Page (1)
		0x09, 0x01, // Usage (1)
		0xA1, 0x80, // Collection, indexed (index 0)
		0xC0, // End Collection
	}
	if _, err := Parse(desc); err != nil {
		t.Fatalf("Parse: %v", err)
	}
}

func TestParseRejectsOversizedDescriptor(t *testing.T) {
	desc := make([]byte, MaxDescriptor+1)
	if _, err := Parse(desc); err == nil {
		t.Fatal("expected error for oversized descriptor")
	}
}
