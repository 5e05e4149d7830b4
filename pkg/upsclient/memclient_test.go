// Copyright 2015-2023 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package upsclient

import "testing"

func TestMemClientSeedAndGet(t *testing.T) {
	m := NewMemClient()
	m.Seed("ups1", "battery.charge", "100")

	values, err := m.GetVariableValue("ups1", "battery.charge")
	if err != nil {
		t.Fatalf("GetVariableValue: %v", err)
	}
	if len(values) != 1 || values[0] != "100" {
		t.Fatalf("values = %v, want [100]", values)
	}
}

func TestMemClientUnknownLookupIsEmpty(t *testing.T) {
	m := NewMemClient()

	values, err := m.GetVariableValue("nosuch", "battery.charge")
	if err != nil {
		t.Fatalf("GetVariableValue: %v", err)
	}
	if len(values) != 0 {
		t.Fatalf("values = %v, want empty", values)
	}
}

func TestMemClientSetVariableValue(t *testing.T) {
	m := NewMemClient()
	id, err := m.SetVariableValue("ups1", "ups.id", "lab-A")
	if err != nil {
		t.Fatalf("SetVariableValue: %v", err)
	}
	if id != "" {
		t.Fatalf("id = %q, want empty", id)
	}

	values, err := m.GetVariableValue("ups1", "ups.id")
	if err != nil || len(values) != 1 || values[0] != "lab-A" {
		t.Fatalf("values = %v, %v", values, err)
	}
}

func TestMemClientUnimplemented(t *testing.T) {
	m := NewMemClient()
	if _, err := m.GetDeviceNames(); err == nil {
		t.Fatal("expected NotImplemented error")
	}
	if _, err := m.ExecuteCommand("ups1", "test.battery.start"); err == nil {
		t.Fatal("expected NotImplemented error")
	}
}

// invariant 6 for the in-memory backend.
func TestMemClientGetTrackingResultEmptyID(t *testing.T) {
	m := NewMemClient()
	got, err := m.GetTrackingResult("")
	if err != nil || got != Success {
		t.Fatalf("GetTrackingResult(\"\") = %v, %v, want Success, nil", got, err)
	}
}

func TestMemClientGetDevicesVariableValues(t *testing.T) {
	m := NewMemClient()
	m.Seed("ups1", "battery.charge", "100")

	result, err := m.GetDevicesVariableValues([]string{"ups1", "ups2"})
	if err != nil {
		t.Fatalf("GetDevicesVariableValues: %v", err)
	}
	if _, ok := result["ups1"]; !ok {
		t.Fatalf("result missing ups1: %+v", result)
	}
}
