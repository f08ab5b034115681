package model

import (
	"context"
	"net"
)

// SecurityLayer opens listeners for a transport, plain or TLS.
type SecurityLayer interface {
	Listen(protocol, addr string) (net.Listener, error)
}

// Server is a transport endpoint whose lifecycle is owned by main.
type Server interface {
	Start(securityLayer SecurityLayer) error
	Stop(ctx context.Context) error
	Address() string
}
