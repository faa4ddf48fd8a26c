// Package options defines connection options for MQTT 3.1, 3.1.1 and 5.0
// clients: protocol version and QoS types, the Connect options struct with
// preset constructors, last-will and TLS sub-options, and TOML file loading.
package options

// Version represents an MQTT protocol version.
type Version byte

const (
	Version31  Version = 3 // MQTT 3.1
	Version311 Version = 4 // MQTT 3.1.1
	Version5   Version = 5 // MQTT 5.0
)

// String returns the string representation of the MQTT version.
func (v Version) String() string {
	switch v {
	case Version31:
		return "3.1"
	case Version311:
		return "3.1.1"
	case Version5:
		return "5.0"
	default:
		return "unknown"
	}
}

// Valid returns true if the version is a recognized protocol level.
func (v Version) Valid() bool {
	return v >= Version31 && v <= Version5
}

// QoS represents MQTT Quality of Service level.
type QoS byte

const (
	QoS0 QoS = 0 // At most once delivery
	QoS1 QoS = 1 // At least once delivery
	QoS2 QoS = 2 // Exactly once delivery
)

// Valid returns true if the QoS level is valid.
func (q QoS) Valid() bool {
	return q <= QoS2
}

// String returns the string representation of the QoS level.
func (q QoS) String() string {
	switch q {
	case QoS0:
		return "QoS0"
	case QoS1:
		return "QoS1"
	case QoS2:
		return "QoS2"
	default:
		return "invalid"
	}
}
