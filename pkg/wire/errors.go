// Copyright 2015-2023 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package wire

import "fmt"

// ProtocolError is a classified `ERR <code>` reply from the server.
// Its Code is the bare token following ERR, e.g. "UNKNOWN-UPS" or
// "ACCESS-DENIED"; callers that care about a specific code compare
// against it directly.
type ProtocolError struct {
	Code string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("wire: ERR %s", e.Code)
}

// InvalidResponseError reports a reply line that does not match the
// grammar a request shape expects.
type InvalidResponseError struct {
	Expected string
	Got      string
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("wire: invalid response: expected %s, got %q", e.Expected, e.Got)
}

// AsProtocolError reports whether err is a *ProtocolError and returns it.
func AsProtocolError(err error) (*ProtocolError, bool) {
	pe, ok := err.(*ProtocolError)
	return pe, ok
}
