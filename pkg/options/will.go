package options

import (
	"fmt"

	"github.com/bromq-dev/mqttkit/pkg/property"
	"github.com/bromq-dev/mqttkit/pkg/topic"
)

// Will holds the last will and testament message published by the broker
// when the client disconnects ungracefully.
type Will struct {
	// Topic is where the will message is published.
	Topic string

	// Payload is the will message body.
	Payload []byte

	// QoS is the delivery guarantee for the will message.
	QoS QoS

	// Retained marks the will message as retained.
	Retained bool

	// Properties are the MQTT 5.0 will properties.
	Properties property.List
}

// Validate checks that the will message can go on the wire.
func (w *Will) Validate() error {
	if err := topic.ValidateName(w.Topic); err != nil {
		return fmt.Errorf("%w: topic: %v", ErrInvalidWill, err)
	}
	if !w.QoS.Valid() {
		return fmt.Errorf("%w: QoS %d", ErrInvalidWill, byte(w.QoS))
	}
	if len(w.Payload) > property.MaxBytes {
		return fmt.Errorf("%w: payload exceeds %d bytes", ErrInvalidWill, property.MaxBytes)
	}
	return nil
}
