// Copyright 2015-2023 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package upsclient

import "github.com/nutmon/nutmon/pkg/wire"

// GetDeviceNames issues LIST UPS and returns every device name.
func (c *Client) GetDeviceNames() ([]string, error) {
	devices, err := c.listDevices()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(devices))
	for i, d := range devices {
		names[i] = d.Name
	}
	return names, nil
}

// GetDevices issues LIST UPS and returns every device with its
// description.
func (c *Client) GetDevices() ([]Device, error) {
	return c.listDevices()
}

func (c *Client) listDevices() ([]Device, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireConnected(); err != nil {
		return nil, err
	}

	body, err := c.readBlockLocked(wire.ListUPS(), "LIST UPS")
	if err != nil {
		return nil, err
	}

	devices := make([]Device, 0, len(body))
	for _, line := range body {
		dl, err := wire.ParseDeviceListing(line)
		if err != nil {
			return nil, classify(err)
		}
		devices = append(devices, Device{Name: dl.Name, Description: dl.Description})
	}
	return devices, nil
}

// GetDeviceDescription issues GET UPSDESC <ups>.
func (c *Client) GetDeviceDescription(ups string) (string, error) {
	return c.getScalar(wire.GetUPSDesc(ups))
}

// GetVariableDescription issues GET DESC <ups> <var>.
func (c *Client) GetVariableDescription(ups, v string) (string, error) {
	return c.getScalar(wire.GetDesc(ups, v))
}

// GetCommandDescription issues GET CMDDESC <ups> <cmd>.
func (c *Client) GetCommandDescription(ups, cmd string) (string, error) {
	return c.getScalar(wire.GetCmdDesc(ups, cmd))
}

// GetNumLogins issues GET NUMLOGINS <ups>.
func (c *Client) GetNumLogins(ups string) (string, error) {
	return c.getScalar(wire.GetNumLogins(ups))
}

func (c *Client) getScalar(req wire.Request) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireConnected(); err != nil {
		return "", err
	}

	line, err := c.roundTripLocked(req)
	if err != nil {
		return "", err
	}
	v, err := wire.ParseScalar(line)
	if err != nil {
		return "", classify(err)
	}
	return v, nil
}

// GetVariableValue issues GET VAR <ups> <var> and returns its value as a
// single-element slice (the scalar reply shape); multi-value ENUM/LIST
// variables are only ever returned in full by GetDeviceVariableValues.
func (c *Client) GetVariableValue(ups, name string) ([]string, error) {
	v, err := c.getScalar(wire.GetVar(ups, name))
	if err != nil {
		return nil, err
	}
	return []string{v}, nil
}

// GetDeviceVariableValues issues LIST VAR <ups> and returns every
// variable's value(s) keyed by name.
func (c *Client) GetDeviceVariableValues(ups string) (map[string][]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireConnected(); err != nil {
		return nil, err
	}

	body, err := c.readBlockLocked(wire.ListVar(ups), "LIST VAR "+ups)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]string)
	for _, line := range body {
		vl, err := wire.ParseVarListing(line)
		if err != nil {
			return nil, classify(err)
		}
		out[vl.Var] = append(out[vl.Var], vl.Value)
	}
	return out, nil
}

// GetWritableVariables issues LIST RW <ups>.
func (c *Client) GetWritableVariables(ups string) ([]Variable, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireConnected(); err != nil {
		return nil, err
	}

	body, err := c.readBlockLocked(wire.ListRW(ups), "LIST RW "+ups)
	if err != nil {
		return nil, err
	}

	out := make([]Variable, 0, len(body))
	for _, line := range body {
		vl, err := wire.ParseVarListing(line)
		if err != nil {
			return nil, classify(err)
		}
		out = append(out, Variable{Name: vl.Var, Values: []string{vl.Value}, Writable: true})
	}
	return out, nil
}

// GetCommands issues LIST CMD <ups>.
func (c *Client) GetCommands(ups string) ([]Command, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireConnected(); err != nil {
		return nil, err
	}

	body, err := c.readBlockLocked(wire.ListCmd(ups), "LIST CMD "+ups)
	if err != nil {
		return nil, err
	}

	out := make([]Command, 0, len(body))
	for _, line := range body {
		cl, err := wire.ParseCmdListing(line)
		if err != nil {
			return nil, classify(err)
		}
		out = append(out, Command{Name: cl.Cmd})
	}
	return out, nil
}

// GetClients issues LIST CLIENT <ups>, returning the addresses of every
// connected client of the device.
func (c *Client) GetClients(ups string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireConnected(); err != nil {
		return nil, err
	}

	body, err := c.readBlockLocked(wire.ListClient(ups), "LIST CLIENT "+ups)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(body))
	for _, line := range body {
		cl, err := wire.ParseClientListing(line)
		if err != nil {
			return nil, classify(err)
		}
		out = append(out, cl.Address)
	}
	return out, nil
}

// readBlockLocked writes req and reads its BEGIN/END-bracketed reply.
// Caller must hold c.mu.
func (c *Client) readBlockLocked(req wire.Request, header string) ([]string, error) {
	if err := c.setDeadlineLocked(); err != nil {
		return nil, classify(err)
	}
	c.metrics.requests.Inc()

	if err := wire.WriteRequests(c.conn, req); err != nil {
		return nil, c.ioFailureLocked(err)
	}

	body, err := wire.ReadBlock(c.readLineLocked, header)
	if err != nil {
		if pe, ok := wire.AsProtocolError(err); ok {
			c.metrics.errors(pe.Code).Inc()
			return nil, &Error{Kind: Protocol, Code: pe.Code}
		}
		return nil, c.ioFailureLocked(err)
	}
	return body, nil
}

// SetVariableValue issues SET VAR <ups> <var> "<value>"... and returns
// the TrackingID, empty if tracking was not requested.
func (c *Client) SetVariableValue(ups, name string, values ...string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireConnected(); err != nil {
		return "", err
	}

	line, err := c.roundTripLocked(wire.SetVar(ups, name, values...))
	if err != nil {
		return "", err
	}
	id, err := wire.ParseOK(line)
	if err != nil {
		return "", classify(err)
	}
	return id, nil
}

// ExecuteCommand issues INSTCMD <ups> <cmd> [<param>] and returns the
// TrackingID, empty if tracking was not requested.
func (c *Client) ExecuteCommand(ups, cmd string, param ...string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireConnected(); err != nil {
		return "", err
	}

	line, err := c.roundTripLocked(wire.InstCmd(ups, cmd, param...))
	if err != nil {
		return "", err
	}
	id, err := wire.ParseOK(line)
	if err != nil {
		return "", classify(err)
	}
	return id, nil
}

// Login issues LOGIN <ups>, registering this session as a monitor of
// the named device.
func (c *Client) Login(ups string) error {
	return c.simpleOK(wire.Login(ups))
}

// Primary issues PRIMARY <ups>.
func (c *Client) Primary(ups string) error {
	return c.simpleOK(wire.Primary(ups))
}

// Master issues the deprecated MASTER <ups> alias of Primary.
func (c *Client) Master(ups string) error {
	return c.simpleOK(wire.Master(ups))
}

// FSD issues FSD <ups>, forwarding a forced-shutdown notification to the
// server for this device.
func (c *Client) FSD(ups string) error {
	return c.simpleOK(wire.FSD(ups))
}

func (c *Client) simpleOK(req wire.Request) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireConnected(); err != nil {
		return err
	}

	line, err := c.roundTripLocked(req)
	if err != nil {
		return err
	}
	if _, err := wire.ParseOK(line); err != nil {
		return classify(err)
	}
	return nil
}

// HasFeature attempts GET <name> and reports whether the server
// recognized it: true iff the server neither errors nor returns a reply
// outside the `<feature> ON|OFF` shape.
func (c *Client) HasFeature(name string) bool {
	_, err := c.IsFeatureEnabled(name)
	return err == nil
}

// IsFeatureEnabled issues GET <name> and parses its ON/OFF reply.
func (c *Client) IsFeatureEnabled(name string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireConnected(); err != nil {
		return false, err
	}

	line, err := c.roundTripLocked(wire.GetFeature(name))
	if err != nil {
		return false, err
	}
	on, err := wire.ParseFeatureReply(name, line)
	if err != nil {
		return false, classify(err)
	}
	return on, nil
}

// SetFeature issues SET <feature> ON|OFF.
func (c *Client) SetFeature(name string, on bool) error {
	return c.simpleOK(wire.SetFeature(name, on))
}
