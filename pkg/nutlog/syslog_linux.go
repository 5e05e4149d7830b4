// Copyright 2015-2023 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

//go:build linux

package nutlog

import "log/syslog"

// syslogPriority maps a Level to a LOG_DAEMON syslog priority, from
// LOG_DEBUG for DEBUG up to LOG_CRIT for FATAL. AddSyslog uses it once,
// for the level a sink is registered at.
func syslogPriority(level Level) syslog.Priority {
	switch level {
	case DEBUG:
		return syslog.LOG_DEBUG | syslog.LOG_DAEMON
	case INFO:
		return syslog.LOG_INFO | syslog.LOG_DAEMON
	case WARN:
		return syslog.LOG_WARNING | syslog.LOG_DAEMON
	case ERROR:
		return syslog.LOG_ERR | syslog.LOG_DAEMON
	case FATAL:
		return syslog.LOG_CRIT | syslog.LOG_DAEMON
	default:
		return syslog.LOG_INFO | syslog.LOG_DAEMON
	}
}

// AddSyslog registers a syslog sink at severity level. If network is
// "local", it connects to the local syslog daemon; otherwise
// network/raddr are passed to syslog.Dial (e.g. "udp", "loghost:514").
// Events are tagged with tag and filed under the one syslog priority
// that syslogPriority derives from the sink's registered level; every
// record the sink writes gets that priority, whatever the record's own
// level.
func AddSyslog(network, raddr, tag string, level Level) error {
	var w *syslog.Writer
	var err error

	priority := syslogPriority(level)

	if network == "local" {
		w, err = syslog.New(priority, tag)
	} else {
		w, err = syslog.Dial(network, raddr, priority, tag)
	}
	if err != nil {
		return err
	}

	AddLogger("syslog", w, level, false)
	return nil
}
