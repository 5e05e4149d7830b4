// Copyright 2015-2023 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package wire

import "strings"

// Quote wraps s in double quotes for transmission, escaping every
// embedded '\' as "\\" and every '"' as "\"". Outgoing string arguments
// are always quoted this way, even when s contains no special
// characters — the server tolerates unnecessary quoting but never its
// absence where a value is expected.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\', '"':
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	b.WriteByte('"')
	return b.String()
}
