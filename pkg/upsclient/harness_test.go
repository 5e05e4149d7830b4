// Copyright 2015-2023 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

package upsclient

import (
	"bufio"
	"net"
)

// goScriptedServer runs a fake server over one end of a net.Pipe: it
// reads readN request lines, then writes reply verbatim (already
// newline-joined), repeating for each step. It reports any I/O error, or
// nil when the script completes, on the returned channel.
type step struct {
	readN int
	reply string
}

func goScriptedServer(conn net.Conn, steps []step) chan error {
	errc := make(chan error, 1)
	go func() {
		defer conn.Close()
		r := bufio.NewReader(conn)
		for _, s := range steps {
			for i := 0; i < s.readN; i++ {
				if _, err := r.ReadString('\n'); err != nil {
					errc <- err
					return
				}
			}
			if s.reply != "" {
				if _, err := conn.Write([]byte(s.reply)); err != nil {
					errc <- err
					return
				}
			}
		}
		errc <- nil
	}()
	return errc
}
