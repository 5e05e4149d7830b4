// Copyright 2015-2023 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package wire

import "strings"

// Request is a single outgoing protocol line, already rendered in wire
// form (quoted arguments, no trailing newline).
type Request string

func line(tokens ...string) Request {
	return Request(strings.Join(tokens, " "))
}

// Username builds `USERNAME <name>`.
func Username(name string) Request { return line("USERNAME", Quote(name)) }

// Password builds `PASSWORD <secret>`.
func Password(secret string) Request { return line("PASSWORD", Quote(secret)) }

// Logout builds `LOGOUT`.
func Logout() Request { return Request("LOGOUT") }

// ListUPS builds `LIST UPS`.
func ListUPS() Request { return Request("LIST UPS") }

// ListVar builds `LIST VAR <ups>`.
func ListVar(ups string) Request { return line("LIST", "VAR", Quote(ups)) }

// ListRW builds `LIST RW <ups>`.
func ListRW(ups string) Request { return line("LIST", "RW", Quote(ups)) }

// ListCmd builds `LIST CMD <ups>`.
func ListCmd(ups string) Request { return line("LIST", "CMD", Quote(ups)) }

// ListClient builds `LIST CLIENT <ups>`.
func ListClient(ups string) Request { return line("LIST", "CLIENT", Quote(ups)) }

// GetUPSDesc builds `GET UPSDESC <ups>`.
func GetUPSDesc(ups string) Request { return line("GET", "UPSDESC", Quote(ups)) }

// GetDesc builds `GET DESC <ups> <var>`.
func GetDesc(ups, v string) Request { return line("GET", "DESC", Quote(ups), Quote(v)) }

// GetCmdDesc builds `GET CMDDESC <ups> <cmd>`.
func GetCmdDesc(ups, cmd string) Request { return line("GET", "CMDDESC", Quote(ups), Quote(cmd)) }

// GetVar builds `GET VAR <ups> <var>`.
func GetVar(ups, v string) Request { return line("GET", "VAR", Quote(ups), Quote(v)) }

// GetNumLogins builds `GET NUMLOGINS <ups>`.
func GetNumLogins(ups string) Request { return line("GET", "NUMLOGINS", Quote(ups)) }

// GetTracking builds `GET TRACKING <id>`.
func GetTracking(id string) Request { return line("GET", "TRACKING", Quote(id)) }

// FeatureTracking is the one feature name this protocol defines itself:
// the session capability that makes SET/INSTCMD replies carry a pollable
// tracking id rather than a bare OK. Other feature names are data-driven
// and pass through unchanged.
const FeatureTracking = "TRACKING"

// GetFeature builds `GET <feature>`.
func GetFeature(feature string) Request { return line("GET", feature) }

// SetFeature builds `SET <feature> ON|OFF`.
func SetFeature(feature string, on bool) Request {
	state := "OFF"
	if on {
		state = "ON"
	}
	return line("SET", feature, state)
}

// SetVar builds `SET VAR <ups> <var> "<value>"[ "<value>"...]`.
func SetVar(ups, v string, values ...string) Request {
	tokens := []string{"SET", "VAR", Quote(ups), Quote(v)}
	for _, val := range values {
		tokens = append(tokens, Quote(val))
	}
	return line(tokens...)
}

// InstCmd builds `INSTCMD <ups> <cmd> [<param>]`.
func InstCmd(ups, cmd string, param ...string) Request {
	tokens := []string{"INSTCMD", Quote(ups), Quote(cmd)}
	if len(param) > 0 {
		tokens = append(tokens, Quote(param[0]))
	}
	return line(tokens...)
}

// Login builds `LOGIN <ups>`.
func Login(ups string) Request { return line("LOGIN", Quote(ups)) }

// Primary builds `PRIMARY <ups>`.
func Primary(ups string) Request { return line("PRIMARY", Quote(ups)) }

// Master builds the deprecated `MASTER <ups>` alias of Primary.
func Master(ups string) Request { return line("MASTER", Quote(ups)) }

// FSD builds `FSD <ups>`.
func FSD(ups string) Request { return line("FSD", Quote(ups)) }
