// Copyright 2015-2023 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package wire

import (
	"bufio"
	"io"
	"strings"
)

// WriteRequests writes each request to w, newline-terminated, in order.
// Pipelining several requests before draining their replies is the
// engine's supported way to fan a batch of per-device queries out over a
// single connection without a round trip per device.
func WriteRequests(w io.Writer, reqs ...Request) error {
	for _, r := range reqs {
		if _, err := io.WriteString(w, string(r)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// NewLineReader adapts a bufio.Reader into a LineReader, stripping the
// trailing newline (and a trailing \r, for CRLF-terminated peers).
func NewLineReader(r *bufio.Reader) LineReader {
	return func() (string, error) {
		line, err := r.ReadString('\n')
		if err != nil {
			if len(line) == 0 {
				return "", err
			}
			if err != io.EOF {
				return "", err
			}
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
}

// ReadReplies drains exactly n reply units from readLine in order, each
// produced by one call to parse. Replies are strictly positional: the
// i'th call to parse corresponds to the i'th request written earlier by
// WriteRequests, never matched by content. A parse error for one unit
// does not stop the drain — every error is returned alongside whatever
// results did parse, so the caller (e.g. a partial-failure batch fetch)
// decides how many failures are tolerable.
func ReadReplies[T any](readLine LineReader, n int, parse func(LineReader) (T, error)) ([]T, []error) {
	results := make([]T, 0, n)
	var errs []error

	for i := 0; i < n; i++ {
		v, err := parse(readLine)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		results = append(results, v)
	}

	return results, errs
}
