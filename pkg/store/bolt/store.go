// Package bolt provides a bbolt-backed Store in a single database file.
package bolt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.etcd.io/bbolt"

	"github.com/bromq-dev/mqttkit/pkg/store"
)

// bucketSessions holds one record per client ID.
var bucketSessions = []byte("sessions")

var errNotStarted = errors.New("bolt store not started")

// Store implements store.Store on a bbolt database file.
type Store struct {
	path    string
	mode    os.FileMode
	timeout time.Duration
	log     *slog.Logger

	db *bbolt.DB
}

// Config configures the bolt store.
type Config struct {
	// Path is the database file (default: "sessions.db").
	Path string

	// FileMode for the database file (default: 0600).
	FileMode os.FileMode

	// Timeout bounds the wait for the file lock (default: 1s).
	Timeout time.Duration

	// Logger for logging. If nil, uses slog.Default().
	Logger *slog.Logger
}

// NewStore creates a new bolt-backed store. The database file is opened by
// Start and closed by Stop.
func NewStore(cfg *Config) *Store {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Path == "" {
		cfg.Path = "sessions.db"
	}
	if cfg.FileMode == 0 {
		cfg.FileMode = 0o600
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Store{
		path:    cfg.Path,
		mode:    cfg.FileMode,
		timeout: cfg.Timeout,
		log:     cfg.Logger,
	}
}

func (s *Store) Start(ctx context.Context) error {
	db, err := bbolt.Open(s.path, s.mode, &bbolt.Options{Timeout: s.timeout})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSessions)
		return err
	})
	if err != nil {
		db.Close()
		return fmt.Errorf("create sessions bucket: %w", err)
	}

	s.db = db
	s.log.Info("bolt store started", "path", s.path)
	return nil
}

func (s *Store) Stop() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) Put(ctx context.Context, rec *store.Record) error {
	if s.db == nil {
		return errNotStarted
	}
	if rec == nil || rec.ClientID == "" {
		return store.ErrInvalidClientID
	}

	data, err := store.EncodeRecord(rec)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSessions).Put([]byte(rec.ClientID), data)
	})
}

func (s *Store) Get(ctx context.Context, clientID string) (*store.Record, error) {
	if s.db == nil {
		return nil, errNotStarted
	}

	var rec *store.Record
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketSessions).Get([]byte(clientID))
		if data == nil {
			return store.ErrNotFound
		}
		var err error
		rec, err = store.DecodeRecord(data)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Store) Delete(ctx context.Context, clientID string) error {
	if s.db == nil {
		return errNotStarted
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSessions).Delete([]byte(clientID))
	})
}

func (s *Store) Clients(ctx context.Context) ([]string, error) {
	if s.db == nil {
		return nil, errNotStarted
	}

	var ids []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketSessions).ForEach(func(k, v []byte) error {
			ids = append(ids, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Verify interface implementation
var _ store.Store = (*Store)(nil)
