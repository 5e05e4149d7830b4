// Copyright 2015-2023 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package upsclient

import "github.com/nutmon/nutmon/pkg/wire"

// GetDevicesVariableValues fetches LIST VAR for every device in devices
// in one pipelined round trip: all requests are written back-to-back,
// then replies are drained in the same order. A per-device parse or
// protocol failure is swallowed as long as at least one device
// succeeds; the overall call only fails if every device failed. Empty
// input yields an empty, non-nil result.
func (c *Client) GetDevicesVariableValues(devices []string) (map[string]map[string][]string, error) {
	if len(devices) == 0 {
		return map[string]map[string][]string{}, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireConnected(); err != nil {
		return nil, err
	}

	if err := c.setDeadlineLocked(); err != nil {
		return nil, classify(err)
	}

	reqs := make([]wire.Request, len(devices))
	for i, ups := range devices {
		reqs[i] = wire.ListVar(ups)
	}
	c.metrics.requests.Add(len(reqs))

	if err := wire.WriteRequests(c.conn, reqs...); err != nil {
		return nil, c.ioFailureLocked(err)
	}

	type deviceVars struct {
		ups  string
		vars map[string][]string
	}

	i := 0
	results, errs := wire.ReadReplies(c.readLineLocked, len(devices), func(rl wire.LineReader) (deviceVars, error) {
		ups := devices[i]
		i++

		body, err := wire.ReadBlock(rl, "LIST VAR "+ups)
		if err != nil {
			return deviceVars{}, err
		}

		vars := make(map[string][]string)
		for _, line := range body {
			vl, err := wire.ParseVarListing(line)
			if err != nil {
				return deviceVars{}, err
			}
			vars[vl.Var] = append(vars[vl.Var], vl.Value)
		}
		return deviceVars{ups: ups, vars: vars}, nil
	})

	for _, err := range errs {
		if pe, ok := wire.AsProtocolError(err); ok {
			c.metrics.errors(pe.Code).Inc()
		}
	}

	// A transport failure mid-drain corrupts the reply stream even when
	// earlier devices parsed cleanly; disconnect, but keep whatever
	// results were already drained.
	for _, err := range errs {
		if ce := classify(err); ce.Kind == IOError {
			c.ioFailureLocked(err)
			break
		}
	}

	if len(results) == 0 {
		if len(errs) > 0 {
			if ce := classify(errs[len(errs)-1]); ce.Kind == IOError || ce.Kind == Timeout {
				return nil, ce
			}
		}
		return nil, &Error{Kind: Protocol, Code: "ALL-DEVICES-FAILED"}
	}

	out := make(map[string]map[string][]string, len(results))
	for _, r := range results {
		out[r.ups] = r.vars
	}
	return out, nil
}
