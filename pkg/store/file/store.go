// Package file provides a file-backed Store with one session file per client.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bromq-dev/mqttkit/pkg/store"
)

// ext is appended to client IDs to form session file names.
const ext = ".msgpack"

// Store implements store.Store with one msgpack file per client under a
// base directory. Writes go through a temp file and rename so a crash
// never leaves a half-written record.
type Store struct {
	dir string
	log *slog.Logger
}

// Config configures the file store.
type Config struct {
	// Dir is the base directory for session files (default: "sessions").
	Dir string

	// Logger for logging. If nil, uses slog.Default().
	Logger *slog.Logger
}

// NewStore creates a new file-backed store.
func NewStore(cfg *Config) *Store {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Dir == "" {
		cfg.Dir = "sessions"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Store{
		dir: cfg.Dir,
		log: cfg.Logger,
	}
}

func (s *Store) Start(ctx context.Context) error {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}
	s.log.Info("file store started", "dir", s.dir)
	return nil
}

func (s *Store) Stop() error {
	return nil
}

// path maps a client ID to its session file, rejecting IDs that could
// escape the base directory.
func (s *Store) path(clientID string) (string, error) {
	if clientID == "" ||
		strings.Contains(clientID, "..") ||
		strings.Contains(clientID, "/") ||
		strings.Contains(clientID, string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", store.ErrInvalidClientID, clientID)
	}
	return filepath.Join(s.dir, clientID+ext), nil
}

func (s *Store) Put(ctx context.Context, rec *store.Record) error {
	if rec == nil {
		return store.ErrInvalidClientID
	}
	path, err := s.path(rec.ClientID)
	if err != nil {
		return err
	}

	data, err := store.EncodeRecord(rec)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".session-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename session file: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, clientID string) (*store.Record, error) {
	path, err := s.path(clientID)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	return store.DecodeRecord(data)
}

func (s *Store) Delete(ctx context.Context, clientID string) error {
	path, err := s.path(clientID)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (s *Store) Clients(ctx context.Context) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*"+ext))
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, strings.TrimSuffix(filepath.Base(m), ext))
	}
	return ids, nil
}

// Verify interface implementation
var _ store.Store = (*Store)(nil)
