// Copyright 2015-2023 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package nutlog

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestFilter(t *testing.T) {
	sink1 := new(bytes.Buffer)
	AddLogger("sink1Level", sink1, DEBUG, false)
	defer DelLogger("sink1Level")

	Debugln("test 123")
	if s1 := sink1.String(); !strings.Contains(s1, "test 123") {
		t.Fatal("sink1 got:", s1)
	}

	AddFilter("sink1Level", "nutlog_test")
	Debugln("test 456")
	if s1 := sink1.String(); strings.Contains(s1, "test 456") {
		t.Fatal("sink1 got:", s1)
	}

	DelFilter("sink1Level", "nutlog_test")
	Debugln("test 456")
	if s1 := sink1.String(); !strings.Contains(s1, "test 456") {
		t.Fatal("sink1 got:", s1)
	}
}

func TestMultilog(t *testing.T) {
	sink1, sink2 := new(bytes.Buffer), new(bytes.Buffer)
	AddLogger("sink1", sink1, DEBUG, false)
	AddLogger("sink2", sink2, DEBUG, false)
	defer DelLogger("sink1")
	defer DelLogger("sink2")

	Debugln("test 123")

	if s1 := sink1.String(); !strings.Contains(s1, "test 123") {
		t.Fatal("sink1 got:", s1)
	}
	if s2 := sink2.String(); !strings.Contains(s2, "test 123") {
		t.Fatal("sink2 got:", s2)
	}
}

func TestLogLevels(t *testing.T) {
	sink1, sink2 := new(bytes.Buffer), new(bytes.Buffer)
	AddLogger("sink1Level", sink1, DEBUG, false)
	AddLogger("sink2Level", sink2, INFO, false)
	defer DelLogger("sink1Level")
	defer DelLogger("sink2Level")

	Debugln("test 123")

	if s1 := sink1.String(); !strings.Contains(s1, "test 123") {
		t.Fatal("sink1 got:", s1)
	}
	if s2 := sink2.String(); len(s2) != 0 {
		t.Fatal("sink2 got:", s2)
	}
}

func TestDelLogger(t *testing.T) {
	sink := new(bytes.Buffer)
	AddLogger("sinkDel", sink, DEBUG, false)

	Debug("test 123")
	s, err := sink.ReadString('\n')
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(s, "test 123") {
		t.Fatal("sink got:", s)
	}

	DelLogger("sinkDel")
	Debug("test 456")

	s, err = sink.ReadString('\n')
	if err != nil && err != io.EOF {
		t.Fatal(err)
	}
	if len(s) != 0 {
		t.Fatal("sink got:", s)
	}
}

func TestErrorFields(t *testing.T) {
	sink := new(bytes.Buffer)
	AddLogger("sinkFields", sink, DEBUG, false)
	defer DelLogger("sinkFields")

	ErrorFields(Fields{"ups": "ups1", "code": "UNKNOWN-UPS"}, "GET VAR failed")
	got := sink.String()
	if !strings.Contains(got, "GET VAR failed") {
		t.Fatal("sink got:", got)
	}
	if !strings.Contains(got, "code=UNKNOWN-UPS") || !strings.Contains(got, "ups=ups1") {
		t.Fatal("sink missing rendered fields:", got)
	}
	// keys render in sorted order: code before ups.
	if strings.Index(got, "code=") > strings.Index(got, "ups=") {
		t.Fatal("fields not sorted:", got)
	}
}

func TestErrorFieldsPercentInValue(t *testing.T) {
	sink := new(bytes.Buffer)
	AddLogger("sinkPercent", sink, DEBUG, false)
	defer DelLogger("sinkPercent")

	// A field value containing '%' must never be reinterpreted as a
	// format verb against the call's other arguments.
	WarnFields(Fields{"detail": "battery at 50%"}, "low battery on %s", "ups1")
	got := sink.String()
	if !strings.Contains(got, "low battery on ups1") {
		t.Fatal("sink got:", got)
	}
	if !strings.Contains(got, "detail=battery at 50%") {
		t.Fatal("sink missing field:", got)
	}
}

func TestQuietTrackingPolls(t *testing.T) {
	sink := new(bytes.Buffer)
	AddLogger("sinkTracking", sink, DEBUG, false)
	defer DelLogger("sinkTracking")

	if err := QuietTrackingPolls("sinkTracking"); err != nil {
		t.Fatal(err)
	}
	defer DelFilter("sinkTracking", "GET TRACKING")

	Debug("GET TRACKING abc123")
	if s := sink.String(); strings.Contains(s, "abc123") {
		t.Fatal("sink got:", s)
	}

	Debug("unrelated message")
	if s := sink.String(); !strings.Contains(s, "unrelated message") {
		t.Fatal("sink got:", s)
	}
}

func TestHistory(t *testing.T) {
	h := AddHistory("sinkHistory", 2, DEBUG)
	defer DelLogger("sinkHistory")

	Debugln("first")
	Debugln("second")
	Debugln("third")

	lines := h.Dump()
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2: %v", len(lines), lines)
	}
	if strings.Contains(lines[0], "first") {
		t.Fatal("oldest line should have been evicted:", lines)
	}
	if !strings.Contains(lines[0], "second") || !strings.Contains(lines[1], "third") {
		t.Fatal("unexpected history contents:", lines)
	}
}

func TestParseLevel(t *testing.T) {
	for s, want := range map[string]Level{
		"debug": DEBUG,
		"info":  INFO,
		"warn":  WARN,
		"error": ERROR,
		"fatal": FATAL,

		// case-insensitive, and the syslog spelling of WARN.
		"DEBUG":   DEBUG,
		"Warn":    WARN,
		"warning": WARN,
		"WARNING": WARN,
	} {
		got, err := ParseLevel(s)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", s, got, want)
		}
	}

	if _, err := ParseLevel("bogus"); err == nil {
		t.Fatal("expected error for invalid level")
	}
}
