package options

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

// TLS holds declarative options for the secure transports. Config resolves
// them into a crypto/tls configuration; the handshake itself is left to
// crypto/tls.
type TLS struct {
	// CAFile is a PEM file of root CAs to trust (empty = system pool).
	CAFile string

	// CertFile and KeyFile are the client certificate pair for mutual TLS.
	CertFile string
	KeyFile  string

	// ServerName overrides the hostname used for certificate verification.
	ServerName string

	// InsecureSkipVerify disables certificate chain verification.
	InsecureSkipVerify bool

	// MinVersion is the minimum TLS version (0 = TLS 1.2).
	MinVersion uint16

	// ALPNProtocols advertises application protocols during the handshake.
	ALPNProtocols []string
}

// Validate checks the options for structural consistency. It does not
// read the referenced files; Config reports those errors.
func (t *TLS) Validate() error {
	if (t.CertFile == "") != (t.KeyFile == "") {
		return fmt.Errorf("%w: client certificate needs both cert and key files", ErrInvalidTLS)
	}
	return nil
}

// Config builds a *tls.Config from the declarative options.
func (t *TLS) Config() (*tls.Config, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	cfg := &tls.Config{
		ServerName:         t.ServerName,
		InsecureSkipVerify: t.InsecureSkipVerify,
		MinVersion:         t.MinVersion,
		NextProtos:         t.ALPNProtocols,
	}
	if cfg.MinVersion == 0 {
		cfg.MinVersion = tls.VersionTLS12
	}

	if t.CAFile != "" {
		pem, err := os.ReadFile(t.CAFile)
		if err != nil {
			return nil, fmt.Errorf("read CA file: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates found in %s", t.CAFile)
		}
		cfg.RootCAs = pool
	}

	if t.CertFile != "" || t.KeyFile != "" {
		cert, err := tls.LoadX509KeyPair(t.CertFile, t.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("load client certificate: %w", err)
		}
		cfg.Certificates = []tls.Certificate{cert}
	}

	return cfg, nil
}
