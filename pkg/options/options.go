package options

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/bromq-dev/mqttkit/pkg/property"
)

// Defaults applied by the preset constructors.
const (
	// DefaultKeepAlive is the keep alive used by the TCP presets.
	DefaultKeepAlive = 60 * time.Second

	// DefaultWSKeepAlive is the keep alive used by the WebSocket presets.
	// It sits below the 60s idle timeout common on web servers and proxies.
	DefaultWSKeepAlive = 45 * time.Second

	// DefaultConnectTimeout is the time allowed for the broker to complete
	// the connect handshake.
	DefaultConnectTimeout = 30 * time.Second

	// DefaultMaxInflight is the default receive maximum.
	DefaultMaxInflight = 65535

	// DefaultMinRetryInterval is the initial reconnect backoff.
	DefaultMinRetryInterval = 1 * time.Second

	// DefaultMaxRetryInterval caps the reconnect backoff.
	DefaultMaxRetryInterval = 60 * time.Second
)

// Connect holds the options for establishing an MQTT connection.
type Connect struct {
	// Servers lists broker URIs tried in order. Recognized schemes are
	// tcp, mqtt, ssl, tls, mqtts, ws and wss.
	Servers []string

	// ClientID identifies this client to the broker (empty = broker assigned).
	ClientID string

	// Username is sent in CONNECT when non-empty.
	Username string

	// Password is sent in CONNECT when non-nil.
	Password []byte

	// Version selects the protocol level.
	Version Version

	// KeepAlive is the interval between client pings. Must be whole
	// seconds fitting the 16-bit wire field; 0 disables keep alive.
	KeepAlive time.Duration

	// ConnectTimeout bounds the connect handshake (0 = no limit).
	ConnectTimeout time.Duration

	// MaxInflight limits unacknowledged QoS 1/2 messages (receive maximum).
	MaxInflight int

	// CleanSession requests a clean session (MQTT 3.x only).
	CleanSession bool

	// CleanStart requests a clean start (MQTT 5.0 only).
	CleanStart bool

	// SessionExpiry is the MQTT 5.0 session expiry interval in seconds
	// (0 = expire on disconnect, 0xFFFFFFFF = never).
	SessionExpiry uint32

	// AutoReconnect enables automatic reconnection after a lost connection.
	AutoReconnect bool

	// MinRetryInterval is the initial reconnect backoff interval.
	MinRetryInterval time.Duration

	// MaxRetryInterval caps the doubling reconnect backoff (0 = no cap).
	MaxRetryInterval time.Duration

	// Properties are the MQTT 5.0 CONNECT properties.
	Properties property.List

	// Will configures the last will and testament message.
	Will *Will

	// TLS configures the secure transports (ssl, tls, mqtts, wss).
	TLS *TLS

	// HTTPHeaders are sent with the WebSocket handshake request.
	HTTPHeaders http.Header

	// HTTPProxy and HTTPSProxy override the proxy used for WebSocket
	// connections (empty = environment settings).
	HTTPProxy  string
	HTTPSProxy string
}

// NewConnect returns MQTT 3.1.1 connection options with defaults applied:
// clean session, 60s keep alive, 30s connect timeout, receive maximum
// 65535, reconnect backoff bounds 1s to 60s.
func NewConnect() *Connect {
	return &Connect{
		Version:          Version311,
		CleanSession:     true,
		KeepAlive:        DefaultKeepAlive,
		ConnectTimeout:   DefaultConnectTimeout,
		MaxInflight:      DefaultMaxInflight,
		MinRetryInterval: DefaultMinRetryInterval,
		MaxRetryInterval: DefaultMaxRetryInterval,
	}
}

// V3 returns MQTT 3.1.1 connection options. Alias for NewConnect.
func V3() *Connect {
	return NewConnect()
}

// V5 returns MQTT 5.0 connection options: clean start instead of clean
// session, otherwise the NewConnect defaults.
func V5() *Connect {
	c := NewConnect()
	c.Version = Version5
	c.CleanSession = false
	c.CleanStart = true
	return c
}

// WS returns MQTT 3.1.1 options tuned for WebSocket transport.
func WS() *Connect {
	c := NewConnect()
	c.KeepAlive = DefaultWSKeepAlive
	return c
}

// V5WS returns MQTT 5.0 options tuned for WebSocket transport.
func V5WS() *Connect {
	c := V5()
	c.KeepAlive = DefaultWSKeepAlive
	return c
}

// Validate checks the options for internal consistency and wire-field
// limits. It does not touch the network or filesystem.
func (c *Connect) Validate() error {
	switch c.Version {
	case Version31, Version311:
		if c.CleanStart {
			return fmt.Errorf("%w: clean start requires MQTT 5.0", ErrVersionMismatch)
		}
		if c.Properties.Len() > 0 {
			return fmt.Errorf("%w: CONNECT properties require MQTT 5.0", ErrVersionMismatch)
		}
		if c.SessionExpiry != 0 {
			return fmt.Errorf("%w: session expiry requires MQTT 5.0", ErrVersionMismatch)
		}
		if c.Will != nil && c.Will.Properties.Len() > 0 {
			return fmt.Errorf("%w: will properties require MQTT 5.0", ErrVersionMismatch)
		}
	case Version5:
		if c.CleanSession {
			return fmt.Errorf("%w: clean session is the MQTT 3.x flag, use CleanStart", ErrVersionMismatch)
		}
	default:
		return fmt.Errorf("%w: %d", ErrUnknownVersion, byte(c.Version))
	}

	if c.KeepAlive < 0 {
		return fmt.Errorf("%w: negative %v", ErrInvalidKeepAlive, c.KeepAlive)
	}
	if c.KeepAlive%time.Second != 0 {
		return fmt.Errorf("%w: %v is not whole seconds", ErrInvalidKeepAlive, c.KeepAlive)
	}
	if c.KeepAlive/time.Second > 65535 {
		return fmt.Errorf("%w: %v exceeds 65535 seconds", ErrInvalidKeepAlive, c.KeepAlive)
	}

	if c.ConnectTimeout < 0 {
		return fmt.Errorf("%w: connect timeout %v", ErrInvalidTimeout, c.ConnectTimeout)
	}

	if c.MinRetryInterval < 0 || c.MaxRetryInterval < 0 {
		return fmt.Errorf("%w: negative interval", ErrInvalidRetryBounds)
	}
	if c.MaxRetryInterval > 0 && c.MinRetryInterval > c.MaxRetryInterval {
		return fmt.Errorf("%w: min %v exceeds max %v", ErrInvalidRetryBounds, c.MinRetryInterval, c.MaxRetryInterval)
	}

	if c.MaxInflight < 0 || c.MaxInflight > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidInflight, c.MaxInflight)
	}

	for _, server := range c.Servers {
		u, err := url.Parse(server)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidServerURI, server, err)
		}
		if !validScheme(u.Scheme) {
			return fmt.Errorf("%w: %q: unknown scheme %q", ErrInvalidServerURI, server, u.Scheme)
		}
		if u.Host == "" {
			return fmt.Errorf("%w: %q: missing host", ErrInvalidServerURI, server)
		}
	}

	if c.Will != nil {
		if err := c.Will.Validate(); err != nil {
			return fmt.Errorf("will: %w", err)
		}
	}

	if c.TLS != nil {
		if err := c.TLS.Validate(); err != nil {
			return fmt.Errorf("tls: %w", err)
		}
	}

	return nil
}

func validScheme(scheme string) bool {
	switch scheme {
	case "tcp", "mqtt", "ssl", "tls", "mqtts", "ws", "wss":
		return true
	}
	return false
}
