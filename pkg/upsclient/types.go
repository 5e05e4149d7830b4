// Copyright 2015-2023 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

// Package upsclient drives the line-oriented UPS data-server protocol
// over a reliable byte stream: connection state, authentication, tracked
// mutations, and batched variable listing. It has no transport opinion
// beyond net.Conn (or anything that implements it), and no vendor driver
// knowledge — those are external collaborators.
package upsclient

// Device is a UPS the server knows about, as seen by a client: just
// enough to name it and fetch fresh state. The authoritative store is
// server-side; a Device here carries no live variable/command cache.
type Device struct {
	Name        string
	Description string
}

// Variable is a named attribute of a device. Values is almost always a
// single string; ENUM/LIST variables carry several.
type Variable struct {
	Name        string
	Values      []string
	Writable    bool
	Description string
}

// Command is a named instant command a device accepts, optionally with
// one parameter.
type Command struct {
	Name        string
	Description string
}

// TrackingResult is the terminal (or pending) state of a tracked
// mutation, polled via GetTrackingResult.
type TrackingResult int

const (
	Pending TrackingResult = iota
	Success
	Failure
	InvalidArgument
	Unknown
)

func (r TrackingResult) String() string {
	switch r {
	case Pending:
		return "PENDING"
	case Success:
		return "SUCCESS"
	case Failure:
		return "FAILURE"
	case InvalidArgument:
		return "INVALID_ARGUMENT"
	case Unknown:
		return "UNKNOWN"
	default:
		return "UNKNOWN"
	}
}

// UpsClient is the common surface of the TCP-backed Client and the
// in-memory MemClient test double.
type UpsClient interface {
	IsConnected() bool
	Disconnect() error

	GetDeviceNames() ([]string, error)
	GetDeviceDescription(ups string) (string, error)
	GetDeviceVariableValues(ups string) (map[string][]string, error)
	GetDevicesVariableValues(devices []string) (map[string]map[string][]string, error)

	GetVariableValue(ups, name string) ([]string, error)
	SetVariableValue(ups, name string, values ...string) (string, error)

	ExecuteCommand(ups, cmd string, param ...string) (string, error)

	GetTrackingResult(id string) (TrackingResult, error)
}
