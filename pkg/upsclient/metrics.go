// Copyright 2015-2023 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package upsclient

import (
	"fmt"
	"io"

	"github.com/VictoriaMetrics/metrics"
)

// clientMetrics holds one Client's counters and histograms, registered
// in a private metrics.Set so that many Clients in the same process
// don't collide on metric identity and so tests never pollute the
// global default set.
type clientMetrics struct {
	set *metrics.Set

	connects      *metrics.Counter
	requests      *metrics.Counter
	trackingPolls *metrics.Counter
	readTimeouts  *metrics.Histogram
}

func newClientMetrics() *clientMetrics {
	set := metrics.NewSet()
	return &clientMetrics{
		set:           set,
		connects:      set.NewCounter("ups_connects_total"),
		requests:      set.NewCounter("ups_requests_total"),
		trackingPolls: set.NewCounter("ups_tracking_polls_total"),
		readTimeouts:  set.NewHistogram("ups_read_timeout_seconds"),
	}
}

// errors returns the counter for a given server error code, creating it
// on first use.
func (m *clientMetrics) errors(code string) *metrics.Counter {
	return m.set.GetOrCreateCounter(fmt.Sprintf(`ups_errors_total{code=%q}`, code))
}

// WritePrometheus renders this client's metrics in Prometheus text
// exposition format.
func (c *Client) WritePrometheus(w io.Writer) {
	c.metrics.set.WritePrometheus(w)
}
