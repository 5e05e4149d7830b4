// Copyright 2015-2023 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package upsclient

import "context"

// Role is a client's position in a shared UPS's shutdown coordination:
// the primary decides when to shut down, secondaries wait on it.
type Role int

const (
	Secondary Role = iota
	Primary
)

func (r Role) String() string {
	if r == Primary {
		return "primary"
	}
	return "secondary"
}

// MonitorBinding names one UPS session a monitoring process should
// maintain. Establishing and re-establishing the session is all this
// package does with it; deciding when to shut down on FSD is an external
// collaborator's job.
type MonitorBinding struct {
	UPS        string
	Host       string
	Port       int
	PowerValue int
	Username   string
	Password   string
	Role       Role
}

// Dial establishes a Client for this binding, authenticates it when
// Username is set, then issues LOGIN and, if Role is Primary, PRIMARY for
// its UPS.
func (b MonitorBinding) Dial(ctx context.Context, opts Options) (*Client, error) {
	c, err := Dial(ctx, addr(b.Host, b.Port), opts)
	if err != nil {
		return nil, err
	}

	if b.Username != "" {
		if err := c.Authenticate(b.Username, b.Password); err != nil {
			c.Disconnect()
			return nil, err
		}
	}

	if err := c.Login(b.UPS); err != nil {
		c.Disconnect()
		return nil, err
	}

	if b.Role == Primary {
		if err := c.Primary(b.UPS); err != nil {
			c.Disconnect()
			return nil, err
		}
	}

	return c, nil
}
