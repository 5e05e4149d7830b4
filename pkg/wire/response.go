// Copyright 2015-2023 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package wire

import "strings"

// IsErr reports whether line is a server error reply (`ERR <code>`) and,
// if so, returns it classified as a *ProtocolError.
func IsErr(line string) (*ProtocolError, bool) {
	if line == "ERR" {
		return &ProtocolError{Code: ""}, true
	}
	if !strings.HasPrefix(line, "ERR ") {
		return nil, false
	}
	return &ProtocolError{Code: strings.TrimPrefix(line, "ERR ")}, true
}

// ParseOK parses a mutation reply: bare `OK` or `OK TRACKING <id>`. The
// returned id is empty for an untracked mutation.
func ParseOK(line string) (id string, err error) {
	if pe, ok := IsErr(line); ok {
		return "", pe
	}
	if line == "OK" {
		return "", nil
	}
	if rest := strings.TrimPrefix(line, "OK TRACKING "); rest != line && rest != "" {
		return rest, nil
	}
	return "", &InvalidResponseError{Expected: "OK or OK TRACKING <id>", Got: line}
}

// ParseFeatureReply parses a `GET <feature>` reply of the form
// `<feature> ON|OFF`.
func ParseFeatureReply(feature, line string) (bool, error) {
	if pe, ok := IsErr(line); ok {
		return false, pe
	}
	tokens, err := Tokenize(line)
	if err != nil {
		return false, err
	}
	if len(tokens) != 2 || tokens[0] != feature {
		return false, &InvalidResponseError{Expected: feature + " ON|OFF", Got: line}
	}
	switch tokens[1] {
	case "ON":
		return true, nil
	case "OFF":
		return false, nil
	default:
		return false, &InvalidResponseError{Expected: feature + " ON|OFF", Got: line}
	}
}

// ParseScalar parses a `<VERB> <args...> <value>` reply, returning just
// the trailing value token (the server echoes the request tokens back
// ahead of the value).
func ParseScalar(line string) (string, error) {
	if pe, ok := IsErr(line); ok {
		return "", pe
	}
	tokens, err := Tokenize(line)
	if err != nil {
		return "", err
	}
	if len(tokens) == 0 {
		return "", &InvalidResponseError{Expected: "<verb> ... <value>", Got: line}
	}
	return tokens[len(tokens)-1], nil
}

// LineReader is the minimal contract response parsers need from a
// connection: one line at a time, newline stripped.
type LineReader func() (string, error)

// ReadBlock reads a `BEGIN <header>` / `END <header>` bracketed list,
// returning the body lines in between. The caller supplies header
// exactly as it appears after BEGIN, e.g. "LIST UPS".
func ReadBlock(readLine LineReader, header string) ([]string, error) {
	first, err := readLine()
	if err != nil {
		return nil, err
	}
	if pe, ok := IsErr(first); ok {
		return nil, pe
	}
	want := "BEGIN " + header
	if first != want {
		return nil, &InvalidResponseError{Expected: want, Got: first}
	}

	end := "END " + header
	var body []string
	for {
		l, err := readLine()
		if err != nil {
			return nil, err
		}
		if l == end {
			return body, nil
		}
		body = append(body, l)
	}
}

// DeviceListing is one `UPS <name> "<description>"` body line of a
// `LIST UPS` reply.
type DeviceListing struct {
	Name        string
	Description string
}

// ParseDeviceListing parses one LIST UPS body line.
func ParseDeviceListing(line string) (DeviceListing, error) {
	tokens, err := Tokenize(line)
	if err != nil {
		return DeviceListing{}, err
	}
	if len(tokens) != 3 || tokens[0] != "UPS" {
		return DeviceListing{}, &InvalidResponseError{Expected: `UPS <name> "<description>"`, Got: line}
	}
	return DeviceListing{Name: tokens[1], Description: tokens[2]}, nil
}

// VarListing is one `VAR <ups> <var> "<value>"` body line of a
// `LIST VAR`/`LIST RW` reply.
type VarListing struct {
	UPS, Var, Value string
}

// ParseVarListing parses one LIST VAR or LIST RW body line.
func ParseVarListing(line string) (VarListing, error) {
	tokens, err := Tokenize(line)
	if err != nil {
		return VarListing{}, err
	}
	if len(tokens) != 4 || tokens[0] != "VAR" {
		return VarListing{}, &InvalidResponseError{Expected: `VAR <ups> <var> "<value>"`, Got: line}
	}
	return VarListing{UPS: tokens[1], Var: tokens[2], Value: tokens[3]}, nil
}

// CmdListing is one `CMD <ups> <cmd>` body line of a `LIST CMD` reply.
type CmdListing struct {
	UPS, Cmd string
}

// ParseCmdListing parses one LIST CMD body line.
func ParseCmdListing(line string) (CmdListing, error) {
	tokens, err := Tokenize(line)
	if err != nil {
		return CmdListing{}, err
	}
	if len(tokens) != 3 || tokens[0] != "CMD" {
		return CmdListing{}, &InvalidResponseError{Expected: "CMD <ups> <cmd>", Got: line}
	}
	return CmdListing{UPS: tokens[1], Cmd: tokens[2]}, nil
}

// ClientListing is one `CLIENT <ups> <address>` body line of a
// `LIST CLIENT` reply.
type ClientListing struct {
	UPS, Address string
}

// ParseClientListing parses one LIST CLIENT body line.
func ParseClientListing(line string) (ClientListing, error) {
	tokens, err := Tokenize(line)
	if err != nil {
		return ClientListing{}, err
	}
	if len(tokens) != 3 || tokens[0] != "CLIENT" {
		return ClientListing{}, &InvalidResponseError{Expected: "CLIENT <ups> <address>", Got: line}
	}
	return ClientListing{UPS: tokens[1], Address: tokens[2]}, nil
}
