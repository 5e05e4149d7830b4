// Copyright 2015-2023 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package wire

import "testing"

func TestIsErr(t *testing.T) {
	pe, ok := IsErr("ERR UNKNOWN-UPS")
	if !ok {
		t.Fatal("expected ERR line to be classified")
	}
	if pe.Code != "UNKNOWN-UPS" {
		t.Fatalf("Code = %q, want UNKNOWN-UPS", pe.Code)
	}

	if _, ok := IsErr("OK"); ok {
		t.Fatal("did not expect OK to classify as an error")
	}
}

func TestParseOK(t *testing.T) {
	if id, err := ParseOK("OK"); err != nil || id != "" {
		t.Fatalf("ParseOK(OK) = (%q, %v), want (\"\", nil)", id, err)
	}

	id, err := ParseOK("OK TRACKING abc")
	if err != nil || id != "abc" {
		t.Fatalf("ParseOK(OK TRACKING abc) = (%q, %v), want (\"abc\", nil)", id, err)
	}

	_, err = ParseOK("ERR ACCESS-DENIED")
	if err == nil {
		t.Fatal("expected error for ERR reply")
	}
	if pe, ok := AsProtocolError(err); !ok || pe.Code != "ACCESS-DENIED" {
		t.Fatalf("expected ProtocolError ACCESS-DENIED, got %v (ok=%v)", pe, ok)
	}
}

func TestParseDeviceListing(t *testing.T) {
	dl, err := ParseDeviceListing(`UPS ups1 "Lab"`)
	if err != nil {
		t.Fatalf("ParseDeviceListing: %v", err)
	}
	if dl.Name != "ups1" || dl.Description != "Lab" {
		t.Fatalf("got %+v", dl)
	}
}

func TestReadBlock(t *testing.T) {
	lines := []string{
		`BEGIN LIST UPS`,
		`UPS ups1 "Lab"`,
		`UPS ups2 "Rack"`,
		`END LIST UPS`,
	}
	i := 0
	readLine := func() (string, error) {
		l := lines[i]
		i++
		return l, nil
	}

	body, err := ReadBlock(readLine, "LIST UPS")
	if err != nil {
		t.Fatalf("ReadBlock: %v", err)
	}
	if len(body) != 2 {
		t.Fatalf("len(body) = %d, want 2", len(body))
	}
}

func TestReadBlockErrReply(t *testing.T) {
	i := 0
	lines := []string{"ERR UNKNOWN-UPS"}
	readLine := func() (string, error) {
		l := lines[i]
		i++
		return l, nil
	}
	if _, err := ReadBlock(readLine, "LIST VAR"); err == nil {
		t.Fatal("expected error")
	}
}
