// Copyright 2015-2023 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package hid

import (
	"testing"
	"time"
)

func TestReportBufferInvalidate(t *testing.T) {
	b := NewReportBuffer()
	now := time.Now()
	b.Put(1, []byte{1, 2, 3}, now)

	if !b.Fresh(1, now.Add(-time.Second)) {
		t.Fatal("expected report to be fresh")
	}

	b.Invalidate()

	if b.Fresh(1, now.Add(-time.Second)) {
		t.Fatal("expected report to be stale after Invalidate")
	}
	if b.Get(1) == nil {
		t.Fatal("Invalidate must not drop the cached report, only its staleness")
	}
}

func TestReportBufferMissing(t *testing.T) {
	b := NewReportBuffer()
	if b.Get(5) != nil {
		t.Fatal("expected nil for uncached report ID")
	}
	if b.Fresh(5, time.Now()) {
		t.Fatal("expected Fresh false for uncached report ID")
	}
}
