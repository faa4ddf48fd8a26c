// Package transport dials MQTT broker URIs over TCP, TLS and WebSocket,
// returning net.Conn values ready for packet traffic.
package transport

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"github.com/bromq-dev/mqttkit/pkg/options"
)

var (
	// ErrUnsupportedScheme is returned for URIs with an unrecognized scheme.
	ErrUnsupportedScheme = errors.New("unsupported URI scheme")

	// ErrNoServers is returned by DialAny when the URI list is empty.
	ErrNoServers = errors.New("no server URIs")
)

// Dialer opens broker connections from URIs.
type Dialer struct {
	// TLS is used for the secure schemes (ssl, tls, mqtts, wss).
	// If nil, a default config with a TLS 1.2 floor is used.
	TLS *tls.Config

	// Timeout bounds each connection attempt including handshakes
	// (0 = no limit beyond the context).
	Timeout time.Duration

	// Headers are sent with the WebSocket handshake request.
	Headers http.Header

	// Proxy is the proxy URL for WebSocket connections
	// (empty = environment settings).
	Proxy string

	// Log for logging. If nil, uses slog.Default().
	Log *slog.Logger
}

// NewDialer derives a dialer from connection options: TLS config, connect
// timeout, WebSocket handshake headers and proxy.
func NewDialer(opts *options.Connect) (*Dialer, error) {
	d := &Dialer{Log: slog.Default()}
	if opts == nil {
		return d, nil
	}

	d.Timeout = opts.ConnectTimeout
	d.Headers = opts.HTTPHeaders
	d.Proxy = opts.HTTPSProxy
	if d.Proxy == "" {
		d.Proxy = opts.HTTPProxy
	}

	if opts.TLS != nil {
		cfg, err := opts.TLS.Config()
		if err != nil {
			return nil, fmt.Errorf("tls options: %w", err)
		}
		d.TLS = cfg
	}
	return d, nil
}

// Dial connects to a single broker URI. The scheme selects the transport:
// tcp and mqtt are plain TCP (default port 1883), ssl, tls and mqtts are
// TLS (default port 8883), ws and wss are WebSocket with subprotocol
// "mqtt" (default ports 80 and 443).
func (d *Dialer) Dial(ctx context.Context, uri string) (net.Conn, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("parse URI: %w", err)
	}

	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	switch u.Scheme {
	case "tcp", "mqtt":
		return d.dialTCP(ctx, hostPort(u, "1883"))
	case "ssl", "tls", "mqtts":
		return d.dialTLS(ctx, hostPort(u, "8883"))
	case "ws", "wss":
		return d.dialWS(ctx, u)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}

// DialAny tries each URI in order and returns the first connection that
// succeeds. When every URI fails, the attempt errors are joined.
func (d *Dialer) DialAny(ctx context.Context, uris []string) (net.Conn, error) {
	if len(uris) == 0 {
		return nil, ErrNoServers
	}

	var errs []error
	for _, uri := range uris {
		conn, err := d.Dial(ctx, uri)
		if err == nil {
			return conn, nil
		}
		d.log().Debug("dial failed", "uri", uri, "error", err)
		errs = append(errs, fmt.Errorf("%s: %w", uri, err))
		if ctx.Err() != nil {
			break
		}
	}
	return nil, errors.Join(errs...)
}

func (d *Dialer) dialTCP(ctx context.Context, addr string) (net.Conn, error) {
	var nd net.Dialer
	conn, err := nd.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	d.log().Debug("connected", "transport", "tcp", "addr", addr)
	return conn, nil
}

func (d *Dialer) dialTLS(ctx context.Context, addr string) (net.Conn, error) {
	cfg := d.TLS
	if cfg == nil {
		cfg = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	td := &tls.Dialer{Config: cfg}
	conn, err := td.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	d.log().Debug("connected", "transport", "tls", "addr", addr)
	return conn, nil
}

func (d *Dialer) dialWS(ctx context.Context, u *url.URL) (net.Conn, error) {
	wd := websocket.Dialer{
		Subprotocols:     []string{"mqtt"},
		TLSClientConfig:  d.TLS,
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: d.Timeout,
	}
	if d.Proxy != "" {
		proxyURL, err := url.Parse(d.Proxy)
		if err != nil {
			return nil, fmt.Errorf("parse proxy URL: %w", err)
		}
		wd.Proxy = http.ProxyURL(proxyURL)
	}

	ws, resp, err := wd.DialContext(ctx, u.String(), d.Headers)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
			return nil, fmt.Errorf("websocket handshake: %w (status %s)", err, resp.Status)
		}
		return nil, fmt.Errorf("websocket handshake: %w", err)
	}
	d.log().Debug("connected", "transport", "websocket", "url", u.String())
	return &wsConn{Conn: ws}, nil
}

func (d *Dialer) log() *slog.Logger {
	if d.Log != nil {
		return d.Log
	}
	return slog.Default()
}

// hostPort fills in the scheme's default port when the URI omits one.
func hostPort(u *url.URL, defaultPort string) string {
	if u.Port() == "" {
		return net.JoinHostPort(u.Hostname(), defaultPort)
	}
	return u.Host
}
