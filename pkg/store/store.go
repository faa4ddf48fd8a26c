// Package store defines persisted client session state and the Store
// interface implemented by the memory, file, bolt and redis backends.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/bromq-dev/mqttkit/pkg/property"
)

var (
	// ErrNotFound is returned when no record exists for a client ID.
	ErrNotFound = errors.New("session record not found")

	// ErrInvalidClientID is returned for client IDs a backend cannot use as a key.
	ErrInvalidClientID = errors.New("invalid client ID")
)

// Record is the persisted session state for one client.
type Record struct {
	// ClientID identifies the session.
	ClientID string `msgpack:"id"`

	// Username used on the last connect.
	Username string `msgpack:"u,omitempty"`

	// Password used on the last connect.
	Password []byte `msgpack:"pw,omitempty"`

	// CleanStart records whether the session was started clean.
	CleanStart bool `msgpack:"cs"`

	// SessionExpiry is the session expiry interval in seconds
	// (0xFFFFFFFF = never expires).
	SessionExpiry uint32 `msgpack:"se,omitempty"`

	// Servers lists the broker URIs the session was established against.
	Servers []string `msgpack:"srv,omitempty"`

	// Properties is the encoded CONNECT property block.
	Properties []byte `msgpack:"p,omitempty"`

	// UpdatedAt is when the record was last written. Callers set it;
	// backends store it as given.
	UpdatedAt time.Time `msgpack:"ts"`
}

// SetPropertyList encodes the list into the record's property block.
func (r *Record) SetPropertyList(l property.List) error {
	if l.Empty() {
		r.Properties = nil
		return nil
	}
	buf := make([]byte, l.EncodedSize())
	if l.Encode(buf) == 0 {
		return fmt.Errorf("encode properties: block exceeds protocol limits")
	}
	r.Properties = buf
	return nil
}

// PropertyList decodes the record's property block. An empty block decodes
// to an empty list.
func (r *Record) PropertyList() (property.List, error) {
	if len(r.Properties) == 0 {
		return property.List{}, nil
	}
	l, _, err := property.DecodeList(r.Properties)
	if err != nil {
		return property.List{}, fmt.Errorf("decode properties: %w", err)
	}
	return l, nil
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	c := *r
	if r.Password != nil {
		c.Password = make([]byte, len(r.Password))
		copy(c.Password, r.Password)
	}
	if r.Servers != nil {
		c.Servers = make([]string, len(r.Servers))
		copy(c.Servers, r.Servers)
	}
	if r.Properties != nil {
		c.Properties = make([]byte, len(r.Properties))
		copy(c.Properties, r.Properties)
	}
	return &c
}

// Store persists session records keyed by client ID.
type Store interface {
	// Start initializes the store.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the store.
	Stop() error

	// Put writes the record, replacing any existing record for the client.
	Put(ctx context.Context, rec *Record) error

	// Get returns the record for a client, or ErrNotFound.
	Get(ctx context.Context, clientID string) (*Record, error)

	// Delete removes the record for a client. Deleting an absent record
	// is not an error.
	Delete(ctx context.Context, clientID string) error

	// Clients lists the client IDs with stored records.
	Clients(ctx context.Context) ([]string, error)
}

// EncodeRecord serializes a record for storage.
func EncodeRecord(rec *Record) ([]byte, error) {
	data, err := msgpack.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return data, nil
}

// DecodeRecord deserializes a stored record.
func DecodeRecord(data []byte) (*Record, error) {
	var rec Record
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return &rec, nil
}
