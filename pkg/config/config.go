// Copyright 2015-2023 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

// Package config loads connection defaults for a upsclient session from
// a small KEY=VALUE environment file: host, port, timeouts, and whether
// tracked mutations should be requested by default. A loaded Options is
// applied with Dial, which hands the address and timeouts to upsclient
// and requests the TRACKING feature when configured.
package config

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/hashicorp/go-envparse"

	"github.com/nutmon/nutmon/pkg/upsclient"
	"github.com/nutmon/nutmon/pkg/wire"
)

// Options are the connection defaults a monitoring process reads once
// at startup.
type Options struct {
	Host string
	Port int

	ConnectTimeout time.Duration
	ReadTimeout    time.Duration

	// DefaultTracking is whether Dial requests the TRACKING feature right
	// after connecting, before any authentication.
	DefaultTracking bool
}

// Default returns the zero-config defaults: localhost:3493, a 5s connect
// timeout, a blocking read timeout, tracking off.
func Default() Options {
	return Options{
		Host:           "localhost",
		Port:           3493,
		ConnectTimeout: 5 * time.Second,
		ReadTimeout:    -1,
	}
}

// Parse reads a KEY=VALUE environment file (HOST, PORT, CONNECT_TIMEOUT,
// READ_TIMEOUT, TRACKING — all optional) over Default, returning the
// merged result.
func Parse(r io.Reader) (Options, error) {
	opts := Default()

	env, err := envparse.Parse(r)
	if err != nil {
		return Options{}, fmt.Errorf("config: %w", err)
	}

	if v, ok := env["HOST"]; ok && v != "" {
		opts.Host = v
	}
	if v, ok := env["PORT"]; ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Options{}, fmt.Errorf("config: PORT: %w", err)
		}
		opts.Port = port
	}
	if v, ok := env["CONNECT_TIMEOUT"]; ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Options{}, fmt.Errorf("config: CONNECT_TIMEOUT: %w", err)
		}
		opts.ConnectTimeout = d
	}
	if v, ok := env["READ_TIMEOUT"]; ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Options{}, fmt.Errorf("config: READ_TIMEOUT: %w", err)
		}
		opts.ReadTimeout = d
	}
	if v, ok := env["TRACKING"]; ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Options{}, fmt.Errorf("config: TRACKING: %w", err)
		}
		opts.DefaultTracking = b
	}

	return opts, nil
}

// Addr formats Host:Port for Dial.
func (o Options) Addr() string {
	return fmt.Sprintf("%s:%d", o.Host, o.Port)
}

// DialOptions converts the loaded timeouts into upsclient dial options.
func (o Options) DialOptions() upsclient.Options {
	return upsclient.Options{
		ConnectTimeout: o.ConnectTimeout,
		ReadTimeout:    o.ReadTimeout,
	}
}

// Dial connects to the configured server, applying the loaded address and
// timeouts, and requests the TRACKING feature when DefaultTracking is
// set. The returned client is Connected but not authenticated.
func (o Options) Dial(ctx context.Context) (*upsclient.Client, error) {
	c, err := upsclient.Dial(ctx, o.Addr(), o.DialOptions())
	if err != nil {
		return nil, err
	}

	if o.DefaultTracking {
		if err := c.SetFeature(wire.FeatureTracking, true); err != nil {
			c.Disconnect()
			return nil, err
		}
	}

	return c, nil
}
