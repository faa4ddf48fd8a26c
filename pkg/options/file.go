package options

import (
	"fmt"
	"sort"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/bromq-dev/mqttkit/pkg/property"
)

// duration decodes TOML duration strings like "45s" or "2m30s".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// fileConfig mirrors the TOML schema accepted by LoadFile.
type fileConfig struct {
	Servers          []string          `toml:"servers"`
	ClientID         string            `toml:"client_id"`
	Username         string            `toml:"username"`
	Password         string            `toml:"password"`
	Version          int               `toml:"version"`
	KeepAlive        duration          `toml:"keep_alive"`
	ConnectTimeout   duration          `toml:"connect_timeout"`
	MaxInflight      int               `toml:"max_inflight"`
	CleanSession     bool              `toml:"clean_session"`
	CleanStart       bool              `toml:"clean_start"`
	SessionExpiry    uint32            `toml:"session_expiry"`
	AutoReconnect    bool              `toml:"auto_reconnect"`
	MinRetryInterval duration          `toml:"min_retry_interval"`
	MaxRetryInterval duration          `toml:"max_retry_interval"`
	UserProperties   map[string]string `toml:"user_properties"`
	Will             *willFileConfig   `toml:"will"`
	TLS              *tlsFileConfig    `toml:"tls"`
}

type willFileConfig struct {
	Topic    string `toml:"topic"`
	Payload  string `toml:"payload"`
	QoS      int    `toml:"qos"`
	Retained bool   `toml:"retained"`
}

type tlsFileConfig struct {
	CAFile             string   `toml:"ca_file"`
	CertFile           string   `toml:"cert_file"`
	KeyFile            string   `toml:"key_file"`
	ServerName         string   `toml:"server_name"`
	InsecureSkipVerify bool     `toml:"insecure_skip_verify"`
	ALPNProtocols      []string `toml:"alpn_protocols"`
}

// LoadFile reads connection options from a TOML file, overlaying defined
// keys onto the version-appropriate preset. Absent keys keep their preset
// defaults. Durations are strings ("30s"), user_properties is a
// string-to-string table appended to Properties, and [will] and [tls]
// sub-tables populate the corresponding sub-options.
func LoadFile(path string) (*Connect, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("load options: %w", err)
	}

	c := NewConnect()
	if meta.IsDefined("version") {
		// Check the raw int before narrowing so 260 cannot alias 4.
		switch raw.Version {
		case int(Version31), int(Version311), int(Version5):
		default:
			return nil, fmt.Errorf("load options: %w: %d", ErrUnknownVersion, raw.Version)
		}
		if Version(raw.Version) == Version5 {
			c = V5()
		}
		c.Version = Version(raw.Version)
	}
	if meta.IsDefined("servers") {
		c.Servers = raw.Servers
	}
	if meta.IsDefined("client_id") {
		c.ClientID = raw.ClientID
	}
	if meta.IsDefined("username") {
		c.Username = raw.Username
	}
	if meta.IsDefined("password") {
		c.Password = []byte(raw.Password)
	}
	if meta.IsDefined("keep_alive") {
		c.KeepAlive = raw.KeepAlive.Duration
	}
	if meta.IsDefined("connect_timeout") {
		c.ConnectTimeout = raw.ConnectTimeout.Duration
	}
	if meta.IsDefined("max_inflight") {
		c.MaxInflight = raw.MaxInflight
	}
	if meta.IsDefined("clean_session") {
		c.CleanSession = raw.CleanSession
	}
	if meta.IsDefined("clean_start") {
		c.CleanStart = raw.CleanStart
	}
	if meta.IsDefined("session_expiry") {
		c.SessionExpiry = raw.SessionExpiry
	}
	if meta.IsDefined("auto_reconnect") {
		c.AutoReconnect = raw.AutoReconnect
	}
	if meta.IsDefined("min_retry_interval") {
		c.MinRetryInterval = raw.MinRetryInterval.Duration
	}
	if meta.IsDefined("max_retry_interval") {
		c.MaxRetryInterval = raw.MaxRetryInterval.Duration
	}

	if len(raw.UserProperties) > 0 {
		// Deterministic order for a map-sourced table.
		keys := make([]string, 0, len(raw.UserProperties))
		for k := range raw.UserProperties {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := c.Properties.AddPair(property.CodeUserProperty, k, raw.UserProperties[k]); err != nil {
				return nil, fmt.Errorf("load options: user property %q: %w", k, err)
			}
		}
	}

	if raw.Will != nil {
		if raw.Will.QoS < 0 || raw.Will.QoS > int(QoS2) {
			return nil, fmt.Errorf("load options: %w: qos %d", ErrInvalidWill, raw.Will.QoS)
		}
		c.Will = &Will{
			Topic:    raw.Will.Topic,
			Payload:  []byte(raw.Will.Payload),
			QoS:      QoS(raw.Will.QoS),
			Retained: raw.Will.Retained,
		}
	}

	if raw.TLS != nil {
		c.TLS = &TLS{
			CAFile:             raw.TLS.CAFile,
			CertFile:           raw.TLS.CertFile,
			KeyFile:            raw.TLS.KeyFile,
			ServerName:         raw.TLS.ServerName,
			InsecureSkipVerify: raw.TLS.InsecureSkipVerify,
			ALPNProtocols:      raw.TLS.ALPNProtocols,
		}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("load options: %w", err)
	}
	return c, nil
}
