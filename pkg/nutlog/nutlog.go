// Copyright 2015-2023 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

// Package nutlog extends the standard library's logging with multiple
// independent, named loggers, each with its own severity threshold. Call
// AddLogger for each sink (stderr, a file, syslog) and then use the
// package-level Debug/Info/Warn/Error/Fatal functions; every registered
// logger whose Level is at or below the call's level receives the message.
//
// The session client (pkg/upsclient) logs dialing, I/O-failure
// disconnects, and tracked command polling through here instead of
// fmt.Println or the stdlib log package, so a caller embedding this client
// can route them to wherever they already send their own logs. The HID
// and wire packages do not log.
//
// Unlike a plain message logger, session and tracking failures carry
// structured context worth keeping out of the format string: a device
// name, a server error code, a TrackingID. ErrorFields/WarnFields accept
// a Fields map that is rendered as trailing `key=value` pairs, the same
// way the wire protocol itself appends a code to an ERR line rather than
// folding it into prose.
package nutlog

import (
	"bufio"
	"fmt"
	"io"
	golog "log"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
)

var (
	loggers = make(map[string]*nutlogger)
	logLock sync.RWMutex
)

// Fields is structured context attached to a single log line, e.g. the
// UPS name and error code a session operation failed against:
//
//	nutlog.ErrorFields(nutlog.Fields{"ups": "ups1", "code": "UNKNOWN-UPS"}, "GET VAR failed")
type Fields map[string]interface{}

// render returns Fields as a sorted, space-separated `key=value` suffix,
// or the empty string for nil/empty Fields. Keys are sorted so the same
// Fields value always renders identically, which matters when a caller
// greps a log file for a particular key=value pair.
func (f Fields) render() string {
	if len(f) == 0 {
		return ""
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteByte('=')
		fmt.Fprint(&b, f[k])
	}
	return b.String()
}

// Level is a logging severity. Levels are ordered DEBUG < INFO < WARN <
// ERROR < FATAL; a logger registered at a given level emits that level
// and everything above it.
type Level int

const (
	_ Level = iota
	DEBUG
	INFO
	WARN
	ERROR
	FATAL
)

// levelNames is the canonical spelling of each Level. String, ParseLevel,
// and the prologue's label rendering all consult it, so the three can
// never drift apart.
var levelNames = map[Level]string{
	DEBUG: "debug",
	INFO:  "info",
	WARN:  "warn",
	ERROR: "error",
	FATAL: "fatal",
}

// ParseLevel returns the Level named by s. Matching is case-insensitive
// and accepts "warning" for WARN, since that is how syslog and most
// other tooling spell it.
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(s)
	if name == "warning" {
		name = "warn"
	}
	for l, n := range levelNames {
		if n == name {
			return l, nil
		}
	}
	return 0, fmt.Errorf("invalid log level: %q", s)
}

// Set implements flag.Value so Level can be used directly as a CLI flag.
func (l *Level) Set(s string) (err error) {
	*l, err = ParseLevel(s)
	return
}

func (l Level) String() string {
	if n, ok := levelNames[l]; ok {
		return n
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// colorLine tints the "LEVEL name:" prologue; levelColor then tints the
// message body itself, keyed by Level so adding a level only means
// extending the tables above, not another switch statement.
var (
	colorLine  = fgYellow
	levelColor = map[Level]string{
		DEBUG: fgBlue,
		INFO:  fgGreen,
		WARN:  fgYellow,
		ERROR: fgRed,
		FATAL: fgRed,
	}
)

// AddLogger registers a named sink that logs events at level or higher.
// output is typically os.Stderr, os.Stdout, or an opened file.
func AddLogger(name string, output io.Writer, level Level, color bool) {
	logLock.Lock()
	defer logLock.Unlock()

	loggers[name] = &nutlogger{
		logger: golog.New(output, "", golog.LstdFlags),
		Level:  level,
		Color:  color,
	}
}

// DelLogger removes a named logger previously added with AddLogger.
func DelLogger(name string) {
	logLock.Lock()
	defer logLock.Unlock()

	delete(loggers, name)
}

// Loggers returns the names of all registered loggers.
func Loggers() []string {
	logLock.RLock()
	defer logLock.RUnlock()

	ret := make([]string, 0, len(loggers))
	for k := range loggers {
		ret = append(ret, k)
	}
	return ret
}

// WillLog reports whether logging at level would reach at least one
// registered logger. Useful when the message itself is expensive to build.
func WillLog(level Level) bool {
	logLock.RLock()
	defer logLock.RUnlock()

	for _, v := range loggers {
		if v.Level <= level {
			return true
		}
	}
	return false
}

// SetLevel changes the threshold of a named logger.
func SetLevel(name string, level Level) error {
	logLock.Lock()
	defer logLock.Unlock()

	if loggers[name] == nil {
		return fmt.Errorf("no such logger %v", name)
	}
	loggers[name].Level = level
	return nil
}

// GetLevel returns the threshold of a named logger.
func GetLevel(name string) (Level, error) {
	logLock.RLock()
	defer logLock.RUnlock()

	if loggers[name] == nil {
		return 0, fmt.Errorf("no such logger %v", name)
	}
	return loggers[name].Level, nil
}

// AddFilter suppresses any message containing the substring filter on the
// named logger. Used to quiet noisy, expected chatter (e.g. repeated
// PENDING polls) without lowering the logger's level.
func AddFilter(name, filter string) error {
	logLock.Lock()
	defer logLock.Unlock()

	l, ok := loggers[name]
	if !ok {
		return fmt.Errorf("no such logger %v", name)
	}
	for _, f := range l.filters {
		if f == filter {
			return nil
		}
	}
	l.filters = append(l.filters, filter)
	return nil
}

// QuietTrackingPolls suppresses the repeated `GET TRACKING <id>` debug
// chatter a caller generates while polling a pending mutation to
// completion, without lowering the logger's level for anything else.
func QuietTrackingPolls(name string) error {
	return AddFilter(name, "GET TRACKING")
}

// DelFilter removes a filter previously added with AddFilter.
func DelFilter(name, filter string) error {
	logLock.Lock()
	defer logLock.Unlock()

	l, ok := loggers[name]
	if !ok {
		return fmt.Errorf("no such logger %v", name)
	}
	for i, f := range l.filters {
		if f == filter {
			l.filters = append(l.filters[:i], l.filters[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("filter %v does not exist", filter)
}

// AddLogFile opens (creating if necessary) the file at path and registers
// it as a named logger at level. The parent directory is created if
// missing.
func AddLogFile(name, path string, level Level) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0640)
	if err != nil {
		return err
	}

	AddLogger(name, f, level, false)
	return nil
}

// LogAll reads lines from r until EOF and logs each one at level under
// name. It starts a goroutine and returns immediately; useful for piping a
// subprocess's stderr into the logger set.
func LogAll(r io.Reader, level Level, name string) {
	go func() {
		scanner := bufio.NewReader(r)
		for {
			line, err := scanner.ReadString('\n')
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				dispatch(level, name, trimmed)
			}
			if level == FATAL {
				os.Exit(1)
			}
			if err != nil {
				return
			}
		}
	}()
}

func dispatch(level Level, name, format string, arg ...interface{}) {
	logLock.RLock()
	defer logLock.RUnlock()

	for _, l := range loggers {
		if l.Level <= level {
			l.log(level, name, format, arg...)
		}
	}
}

// dispatchFields is dispatch's structured-context counterpart: every
// logger renders format/arg exactly as Debug/Info/Warn/Error would, then
// appends fields as a literal suffix (not reparsed as a format string,
// so a field value containing '%' can never corrupt the message).
func dispatchFields(level Level, name string, fields Fields, format string, arg ...interface{}) {
	logLock.RLock()
	defer logLock.RUnlock()

	for _, l := range loggers {
		if l.Level <= level {
			l.logFields(level, name, fields, format, arg...)
		}
	}
}

func dispatchln(level Level, name string, arg ...interface{}) {
	logLock.RLock()
	defer logLock.RUnlock()

	for _, l := range loggers {
		if l.Level <= level {
			l.logln(level, name, arg...)
		}
	}
}

func Debug(format string, arg ...interface{}) { dispatch(DEBUG, "", format, arg...) }
func Info(format string, arg ...interface{})  { dispatch(INFO, "", format, arg...) }
func Warn(format string, arg ...interface{})  { dispatch(WARN, "", format, arg...) }
func Error(format string, arg ...interface{}) { dispatch(ERROR, "", format, arg...) }

func Fatal(format string, arg ...interface{}) {
	dispatch(FATAL, "", format, arg...)
	os.Exit(1)
}

// WarnFields and ErrorFields log like Warn/Error but accept structured
// Fields instead of folding a device name, server error code, or
// TrackingID into the format string by hand.
func WarnFields(fields Fields, format string, arg ...interface{}) {
	dispatchFields(WARN, "", fields, format, arg...)
}

func ErrorFields(fields Fields, format string, arg ...interface{}) {
	dispatchFields(ERROR, "", fields, format, arg...)
}

func Debugln(arg ...interface{}) { dispatchln(DEBUG, "", arg...) }
func Infoln(arg ...interface{})  { dispatchln(INFO, "", arg...) }
func Warnln(arg ...interface{})  { dispatchln(WARN, "", arg...) }
func Errorln(arg ...interface{}) { dispatchln(ERROR, "", arg...) }

func Fatalln(arg ...interface{}) {
	dispatchln(FATAL, "", arg...)
	os.Exit(1)
}

type logger interface {
	Println(...interface{})
}

type nutlogger struct {
	logger

	Level   Level
	Color   bool
	filters []string
}

// prologue renders the "LEVEL name: " (or "LEVEL file:line: ") prefix
// for a log line, consulting the shared levelNames/levelColor tables
// rather than re-switching on level for every line.
func (l *nutlogger) prologue(level Level, name string) (msg string) {
	msg = strings.ToUpper(level.String()) + " "

	if name == "" {
		_, file, line, _ := runtime.Caller(4)
		short := file
		for i := len(file) - 1; i > 0; i-- {
			if file[i] == '/' {
				short = file[i+1:]
				break
			}
		}
		msg += short + ":" + fmt.Sprint(line) + ": "
	} else {
		msg += name + ": "
	}

	if l.Color {
		msg = colorLine + msg + levelColor[level]
	}
	return
}

func (l *nutlogger) epilogue() string {
	if l.Color {
		return ansiReset
	}
	return ""
}

// suppressed reports whether msg matches one of this logger's filters,
// e.g. the repeated "GET TRACKING" polling chatter QuietTrackingPolls
// quiets without touching the logger's Level.
func (l *nutlogger) suppressed(msg string) bool {
	for _, f := range l.filters {
		if strings.Contains(msg, f) {
			return true
		}
	}
	return false
}

func (l *nutlogger) log(level Level, name, format string, arg ...interface{}) {
	msg := l.prologue(level, name) + fmt.Sprintf(format, arg...) + l.epilogue()
	if l.suppressed(msg) {
		return
	}
	l.Println(msg)
}

// logFields is log plus a literal Fields suffix, appended after
// formatting so a field value can never be misread as a format verb.
func (l *nutlogger) logFields(level Level, name string, fields Fields, format string, arg ...interface{}) {
	msg := l.prologue(level, name) + fmt.Sprintf(format, arg...) + fields.render() + l.epilogue()
	if l.suppressed(msg) {
		return
	}
	l.Println(msg)
}

func (l *nutlogger) logln(level Level, name string, arg ...interface{}) {
	msg := l.prologue(level, name) + fmt.Sprint(arg...) + l.epilogue()
	if l.suppressed(msg) {
		return
	}
	l.Println(msg)
}

const (
	ansiReset = "\x1b[0m"
	fgBlue    = "\x1b[34m"
	fgGreen   = "\x1b[32m"
	fgYellow  = "\x1b[33m"
	fgRed     = "\x1b[31m"
)
