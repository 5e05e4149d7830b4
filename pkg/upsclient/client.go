// Copyright 2015-2023 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package upsclient

import (
	"bufio"
	"context"
	"errors"
	"net"
	"strconv"
	"sync"
	"time"

	log "github.com/nutmon/nutmon/pkg/nutlog"
	"github.com/nutmon/nutmon/pkg/wire"
)

// State is the client's connection/authentication state.
type State int

const (
	Disconnected State = iota
	Connecting
	Connected
	Authenticated
)

func (s State) String() string {
	switch s {
	case Disconnected:
		return "Disconnected"
	case Connecting:
		return "Connecting"
	case Connected:
		return "Connected"
	case Authenticated:
		return "Authenticated"
	default:
		return "Disconnected"
	}
}

// Options configures a Dial. A zero value dials with no connect timeout
// and sets no read/write deadline, so reads block.
type Options struct {
	// ConnectTimeout bounds the TCP handshake. Zero means block
	// indefinitely, matching a plain net.Dial.
	ConnectTimeout time.Duration

	// ReadTimeout bounds every subsequent read and write. Negative
	// means block indefinitely.
	ReadTimeout time.Duration
}

// Client drives the protocol over a single net.Conn. Only one request
// may be in flight at a time; Client is not a multiplexer. The mutex
// serializes callers so request N's reply is always read before request
// N+1 is written.
type Client struct {
	mu sync.Mutex

	conn  net.Conn
	state State

	r *bufio.Reader

	ReadTimeout time.Duration

	metrics *clientMetrics
}

// Dial connects to addr ("host:port") and returns a Client in the
// Connected state. Host "" is rejected as UnknownHost without attempting
// a connection. A positive opts.ConnectTimeout bounds the
// handshake via ctx; the caller may also supply its own deadline on ctx.
func Dial(ctx context.Context, addr string, opts Options) (*Client, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, &Error{Kind: UnknownHost, Err: err}
	}
	if host == "" {
		return nil, &Error{Kind: UnknownHost, Err: errors.New("empty host")}
	}

	if opts.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.ConnectTimeout)
		defer cancel()
	}

	var d net.Dialer
	log.Debug("upsclient: dialing %s", addr)

	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &Error{Kind: Timeout, Err: err}
		}
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return nil, &Error{Kind: UnknownHost, Err: err}
		}
		return nil, &Error{Kind: IOError, Err: err}
	}

	c := &Client{
		conn:        conn,
		state:       Connected,
		r:           bufio.NewReader(conn),
		ReadTimeout: opts.ReadTimeout,
		metrics:     newClientMetrics(),
	}
	c.metrics.connects.Inc()

	return c, nil
}

// NewClient wraps an already-established connection (e.g. one accepted
// by a test harness, or TLS-wrapped by the caller) as a Connected Client.
func NewClient(conn net.Conn, readTimeout time.Duration) *Client {
	return &Client{
		conn:        conn,
		state:       Connected,
		r:           bufio.NewReader(conn),
		ReadTimeout: readTimeout,
		metrics:     newClientMetrics(),
	}
}

// IsConnected reports whether the client holds a live, non-Disconnected
// session.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state != Disconnected
}

// requireConnected fails fast with NotConnected instead of attempting
// I/O on a disconnected socket.
func (c *Client) requireConnected() error {
	if c.state == Disconnected {
		return &Error{Kind: NotConnected}
	}
	return nil
}

// Authenticate sends USERNAME then PASSWORD and moves to Authenticated
// only if both are accepted; any ERR leaves the state at Connected.
func (c *Client) Authenticate(user, pass string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireConnected(); err != nil {
		return err
	}

	if _, err := c.roundTripLocked(wire.Username(user)); err != nil {
		return err
	}
	if _, err := c.roundTripLocked(wire.Password(pass)); err != nil {
		return err
	}

	c.state = Authenticated
	return nil
}

// Disconnect issues a best-effort LOGOUT and returns to Disconnected
// regardless of whether the write succeeds.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disconnectLocked(nil)
}

func (c *Client) disconnectLocked(cause error) error {
	if c.state == Disconnected {
		return nil
	}
	if c.conn != nil {
		wire.WriteRequests(c.conn, wire.Logout())
		c.conn.Close()
	}
	c.state = Disconnected
	if cause != nil {
		return cause
	}
	return nil
}

// roundTripLocked writes req, applies the configured read/write
// deadline, reads one reply line, and forces a disconnect on any I/O
// failure other than a timeout. Caller must hold c.mu.
func (c *Client) roundTripLocked(req wire.Request) (string, error) {
	if err := c.setDeadlineLocked(); err != nil {
		return "", classify(err)
	}

	c.metrics.requests.Inc()

	if err := wire.WriteRequests(c.conn, req); err != nil {
		return "", c.ioFailureLocked(err)
	}

	line, err := c.readLineLocked()
	if err != nil {
		return "", c.ioFailureLocked(err)
	}

	if pe, ok := wire.IsErr(line); ok {
		c.metrics.errors(pe.Code).Inc()
		return "", &Error{Kind: Protocol, Code: pe.Code}
	}

	return line, nil
}

func (c *Client) readLineLocked() (string, error) {
	line, err := c.r.ReadString('\n')
	if err != nil {
		return "", mapNetError(err)
	}
	return trimNewline(line), nil
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}

func mapNetError(err error) error {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &Error{Kind: Timeout, Err: err}
	}
	return &Error{Kind: IOError, Err: err}
}

// ioFailureLocked classifies err, forces the connection to Disconnected
// unless it was merely a Timeout (timeout expiry does not itself
// disconnect), and returns the classified error.
func (c *Client) ioFailureLocked(err error) error {
	ce := classify(err)
	if ce.Kind == Timeout {
		c.metrics.readTimeouts.Update(c.ReadTimeout.Seconds())
		return ce
	}
	log.WarnFields(log.Fields{"kind": ce.Kind, "code": ce.Code}, "upsclient: disconnecting after I/O failure")
	c.disconnectLocked(nil)
	return ce
}

func (c *Client) setDeadlineLocked() error {
	if c.ReadTimeout < 0 {
		return c.conn.SetDeadline(time.Time{})
	}
	if c.ReadTimeout == 0 {
		return nil
	}
	return c.conn.SetDeadline(time.Now().Add(c.ReadTimeout))
}

// addr formats host:port for Dial callers that build it from parts.
func addr(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
