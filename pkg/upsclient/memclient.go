// Copyright 2015-2023 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package upsclient

import "sync"

// MemClient is the in-memory UpsClient test double: a flat
// device→variable→values map with no server, no protocol, and no
// tracking. GetDeviceNames, GetDeviceDescription, ExecuteCommand, and
// GetTrackingResult for a non-empty id return an *Error of Kind
// NotImplemented, and there is no Login — callers that need those
// operations exercised should script a fake server against Client instead.
type MemClient struct {
	mu   sync.Mutex
	vars map[string]map[string][]string
}

// NewMemClient returns an empty MemClient.
func NewMemClient() *MemClient {
	return &MemClient{vars: make(map[string]map[string][]string)}
}

// Seed installs ups/name's values directly, for test setup.
func (m *MemClient) Seed(ups, name string, values ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.vars[ups] == nil {
		m.vars[ups] = make(map[string][]string)
	}
	m.vars[ups][name] = append([]string(nil), values...)
}

func (m *MemClient) IsConnected() bool { return true }
func (m *MemClient) Disconnect() error { return nil }

func (m *MemClient) GetDeviceNames() ([]string, error) {
	return nil, errNotImplemented
}

func (m *MemClient) GetDeviceDescription(string) (string, error) {
	return "", errNotImplemented
}

// GetDeviceVariableValues returns every cached variable for ups.
func (m *MemClient) GetDeviceVariableValues(ups string) (map[string][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	vars, ok := m.vars[ups]
	if !ok {
		return map[string][]string{}, nil
	}
	out := make(map[string][]string, len(vars))
	for k, v := range vars {
		out[k] = append([]string(nil), v...)
	}
	return out, nil
}

// GetDevicesVariableValues applies GetDeviceVariableValues per device;
// since there is no transport to fail, every requested device appears in
// the result, a device with no cached variables as an empty map.
func (m *MemClient) GetDevicesVariableValues(devices []string) (map[string]map[string][]string, error) {
	out := make(map[string]map[string][]string, len(devices))
	for _, ups := range devices {
		vars, err := m.GetDeviceVariableValues(ups)
		if err != nil {
			continue
		}
		out[ups] = vars
	}
	return out, nil
}

// GetVariableValue returns ups/name's cached values. An unknown device
// or variable yields an empty result, not an error: lookups are
// optional, only writes and unimplemented operations fail.
func (m *MemClient) GetVariableValue(ups, name string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.vars[ups][name]...), nil
}

// SetVariableValue mutates the cached map directly and always returns
// an empty TrackingID: the in-memory backend has no tracking.
func (m *MemClient) SetVariableValue(ups, name string, values ...string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.vars[ups] == nil {
		m.vars[ups] = make(map[string][]string)
	}
	m.vars[ups][name] = append([]string(nil), values...)
	return "", nil
}

func (m *MemClient) ExecuteCommand(string, string, ...string) (string, error) {
	return "", errNotImplemented
}

// GetTrackingResult resolves an empty id to Success: the in-memory
// backend never issues a TrackingID, so every id it issues is empty. Any
// other id returns Unknown with a NotImplemented error.
func (m *MemClient) GetTrackingResult(id string) (TrackingResult, error) {
	if id == "" {
		return Success, nil
	}
	return Unknown, errNotImplemented
}

var errNotImplemented = &Error{Kind: NotImplemented}

var _ UpsClient = (*MemClient)(nil)
var _ UpsClient = (*Client)(nil)
