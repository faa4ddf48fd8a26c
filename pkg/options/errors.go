package options

import "errors"

var (
	// ErrUnknownVersion indicates an unrecognized protocol version.
	ErrUnknownVersion = errors.New("unknown protocol version")

	// ErrVersionMismatch indicates an option that requires a different protocol version.
	ErrVersionMismatch = errors.New("option not valid for protocol version")

	// ErrInvalidKeepAlive indicates a keep alive outside the 16-bit seconds wire field.
	ErrInvalidKeepAlive = errors.New("invalid keep alive")

	// ErrInvalidTimeout indicates a negative timeout.
	ErrInvalidTimeout = errors.New("invalid timeout")

	// ErrInvalidRetryBounds indicates misordered or negative reconnect retry intervals.
	ErrInvalidRetryBounds = errors.New("invalid retry bounds")

	// ErrInvalidInflight indicates a max inflight outside the 16-bit receive maximum.
	ErrInvalidInflight = errors.New("invalid max inflight")

	// ErrInvalidServerURI indicates a server URI that cannot be parsed or uses an unknown scheme.
	ErrInvalidServerURI = errors.New("invalid server URI")

	// ErrInvalidWill indicates unusable last will options.
	ErrInvalidWill = errors.New("invalid will options")

	// ErrInvalidTLS indicates structurally unusable TLS options.
	ErrInvalidTLS = errors.New("invalid TLS options")
)
