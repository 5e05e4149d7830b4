// Copyright 2015-2023 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package upsclient

import (
	"fmt"

	"github.com/nutmon/nutmon/pkg/wire"
)

// Kind classifies the failure behind an *Error, matching the error
// taxonomy every caller distinguishes on.
type Kind int

const (
	UnknownHost Kind = iota
	NotConnected
	IOError
	Timeout
	InvalidResponse
	Protocol
	OutOfMemory
	NotImplemented
)

func (k Kind) String() string {
	switch k {
	case UnknownHost:
		return "UnknownHost"
	case NotConnected:
		return "NotConnected"
	case IOError:
		return "IOError"
	case Timeout:
		return "Timeout"
	case InvalidResponse:
		return "InvalidResponse"
	case Protocol:
		return "Protocol"
	case OutOfMemory:
		return "OutOfMemory"
	case NotImplemented:
		return "NotImplemented"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the single error type this package returns. Code is only
// meaningful for Kind == Protocol, carrying the server's ERR token.
type Error struct {
	Kind Kind
	Code string
	Err  error
}

func (e *Error) Error() string {
	if e.Kind == Protocol {
		return fmt.Sprintf("upsclient: %s: %s", e.Kind, e.Code)
	}
	if e.Err != nil {
		return fmt.Sprintf("upsclient: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("upsclient: %s", e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// classify wraps a wire/transport error into the *Error taxonomy. A
// *wire.ProtocolError becomes Protocol with its code preserved; anything
// else already classified (an *Error) passes through unchanged.
func classify(err error) *Error {
	if err == nil {
		return nil
	}
	if ue, ok := err.(*Error); ok {
		return ue
	}
	if pe, ok := wire.AsProtocolError(err); ok {
		return &Error{Kind: Protocol, Code: pe.Code, Err: err}
	}
	if _, ok := err.(*wire.InvalidResponseError); ok {
		return &Error{Kind: InvalidResponse, Err: err}
	}
	return &Error{Kind: IOError, Err: err}
}
