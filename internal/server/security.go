// Package server provides the listeners transports serve on.
package server

import (
	"crypto/tls"
	"fmt"
	"net"

	"github.com/dtroode/identity-server/internal/config"
	"github.com/dtroode/identity-server/internal/model"
)

var (
	_ model.SecurityLayer = (*TLSListener)(nil)
	_ model.SecurityLayer = (*PlainListener)(nil)
)

// NewSecurityLayer picks a TLS or plain listener from the listener config.
func NewSecurityLayer(cfg config.Listener) (model.SecurityLayer, error) {
	if !cfg.EnableHTTPS {
		return NewPlainListener(), nil
	}
	return NewTLSListener(cfg.CertFileName, cfg.PrivateKeyFileName)
}

// TLSListener opens TLS listeners with a certificate loaded once at start-up.
type TLSListener struct {
	config *tls.Config
}

// NewTLSListener loads the key pair so a bad certificate fails start-up
// instead of the first Listen call.
//
// Parameters:
//   - certFileName: Path to the TLS certificate file
//   - privateKeyFileName: Path to the private key file
func NewTLSListener(certFileName, privateKeyFileName string) (*TLSListener, error) {
	cert, err := tls.LoadX509KeyPair(certFileName, privateKeyFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
	}
	return &TLSListener{
		config: &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		},
	}, nil
}

// Listen creates a TLS listener on addr.
func (l *TLSListener) Listen(protocol, addr string) (net.Listener, error) {
	ln, err := tls.Listen(protocol, addr, l.config.Clone())
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return ln, nil
}

// PlainListener opens unencrypted listeners.
type PlainListener struct{}

// NewPlainListener creates a new PlainListener instance.
func NewPlainListener() *PlainListener {
	return &PlainListener{}
}

// Listen creates a plain listener on addr.
func (l *PlainListener) Listen(protocol, addr string) (net.Listener, error) {
	ln, err := net.Listen(protocol, addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return ln, nil
}
