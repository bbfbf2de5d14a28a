package jobs

import (
	"context"
	"net"
	"time"
)

const dialTimeout = 5 * time.Second

// NetworkReachable is satisfied while a TCP connection to hostport can be opened.
func NetworkReachable(hostport string) Constraint {
	return Constraint{
		Name: "network reachable (" + hostport + ")",
		Satisfied: func(ctx context.Context) bool {
			ctx, cancel := context.WithTimeout(ctx, dialTimeout)
			defer cancel()
			var d net.Dialer
			conn, err := d.DialContext(ctx, "tcp", hostport)
			if err != nil {
				return false
			}
			conn.Close()
			return true
		},
	}
}
