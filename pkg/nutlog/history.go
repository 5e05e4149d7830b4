// Copyright 2015-2023 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package nutlog

import (
	"container/ring"
	"fmt"
	"sync"
)

// History is a bounded, in-memory record of the most recent log lines,
// independent of whatever files or syslog sinks are also registered.
// Register one with AddHistory under a name of its own and every other
// logger's messages also land here, giving a long-running monitor
// something to hand back over a diagnostics request without re-reading
// a log file that may have rotated out from under it.
type History struct {
	size int

	mu sync.Mutex
	r  *ring.Ring
}

// NewHistory allocates a History that retains the most recent size
// lines; older lines are overwritten once it fills.
func NewHistory(size int) *History {
	return &History{
		r:    ring.New(size),
		size: size,
	}
}

// Println satisfies the logger interface: it stores msg as the next
// entry, unlike the plain-line sinks it doesn't reformat or timestamp
// the message, since the lines it receives through AddHistory already
// carry the timestamp of the log.Logger AddLogger wraps around it and
// the level label of the dispatching nutlogger's prologue.
func (h *History) Println(v ...interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.r = h.r.Next()
	h.r.Value = fmt.Sprint(v...)
}

// Dump returns the retained lines, oldest first.
func (h *History) Dump() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	res := make([]string, 0, h.size)
	h.r.Next().Do(func(v interface{}) {
		if v == nil {
			return
		}
		res = append(res, v.(string))
	})
	return res
}

// AddHistory registers a History as a named logger at level, the same
// way AddLogFile registers a file. A caller holds onto the returned
// *History to later call Dump, since Loggers only exposes names.
func AddHistory(name string, size int, level Level) *History {
	h := NewHistory(size)
	AddLogger(name, histWriter{h}, level, false)
	return h
}

// histWriter adapts a *History (a logger, taking ...interface{}) to
// the io.Writer AddLogger expects, so AddHistory can reuse it directly
// instead of duplicating AddLogger's locking and map bookkeeping.
type histWriter struct{ h *History }

func (w histWriter) Write(p []byte) (int, error) {
	line := string(p)
	for len(line) > 0 && line[len(line)-1] == '\n' {
		line = line[:len(line)-1]
	}
	w.h.Println(line)
	return len(p), nil
}
