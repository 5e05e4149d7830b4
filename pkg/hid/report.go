// Copyright 2015-2023 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package hid

import "time"

// Report is one cached raw report buffer together with the time it was
// last refreshed from (or written to) the device.
type Report struct {
	Data  []byte
	Stamp time.Time
}

// ReportBuffer caches raw report buffers by report ID for a single driver
// instance. It holds no transport of its own — callers populate it after
// reading a report and consult Stamp to decide whether a cached value is
// still fresh enough to decode rather than re-fetching.
type ReportBuffer struct {
	reports map[uint8]*Report
}

// NewReportBuffer returns an empty cache.
func NewReportBuffer() *ReportBuffer {
	return &ReportBuffer{reports: make(map[uint8]*Report)}
}

// Get returns the cached report for id, or nil if none has been stored.
func (b *ReportBuffer) Get(id uint8) *Report {
	return b.reports[id]
}

// Put stores data as the current report for id, stamped at t.
func (b *ReportBuffer) Put(id uint8, data []byte, t time.Time) {
	b.reports[id] = &Report{Data: data, Stamp: t}
}

// Invalidate zeroes every cached report's Stamp, forcing the next Get-based
// staleness check to miss. Any SetValue-derived write to the device
// invalidates the whole buffer, since a single report may back more than
// one Item and a write to one no longer guarantees the others are current.
func (b *ReportBuffer) Invalidate() {
	for _, r := range b.reports {
		r.Stamp = time.Time{}
	}
}

// Fresh reports whether id has a cached report stamped at or after since.
func (b *ReportBuffer) Fresh(id uint8, since time.Time) bool {
	r := b.reports[id]
	if r == nil {
		return false
	}
	return !r.Stamp.Before(since)
}
