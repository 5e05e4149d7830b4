// Copyright 2015-2023 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package upsclient

import (
	log "github.com/nutmon/nutmon/pkg/nutlog"
	"github.com/nutmon/nutmon/pkg/wire"
)

// GetTrackingResult issues GET TRACKING <id> and classifies the reply
// into the terminal lattice PENDING → {SUCCESS, FAILURE,
// INVALID_ARGUMENT, UNKNOWN}. An empty id short-circuits to
// Success: tracking was never requested for that mutation, so there is
// nothing to poll.
//
// Every poll is logged at DEBUG as a "GET TRACKING <id>" message, which
// a caller can silence on a logger with nutlog.QuietTrackingPolls once it
// has confirmed polling works, since a long-pending mutation can generate
// many identical lines.
func (c *Client) GetTrackingResult(id string) (TrackingResult, error) {
	if id == "" {
		return Success, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireConnected(); err != nil {
		return Unknown, err
	}

	c.metrics.trackingPolls.Inc()
	log.Debug("GET TRACKING %s", id)

	line, err := c.roundTripLocked(wire.GetTracking(id))
	if err != nil {
		if ce, ok := err.(*Error); ok && ce.Kind == Protocol {
			result := classifyTrackingErr(ce.Code)
			if result != Success {
				log.WarnFields(log.Fields{"id": id, "code": ce.Code}, "tracked mutation did not succeed")
			}
			return result, nil
		}
		return Unknown, err
	}

	switch line {
	case "PENDING":
		return Pending, nil
	case "SUCCESS":
		return Success, nil
	default:
		log.ErrorFields(log.Fields{"id": id, "line": line}, "unexpected GET TRACKING reply")
		return Unknown, &Error{Kind: InvalidResponse}
	}
}

func classifyTrackingErr(code string) TrackingResult {
	switch code {
	case "UNKNOWN":
		return Unknown
	case "INVALID-ARGUMENT":
		return InvalidArgument
	default:
		return Failure
	}
}
