package bolt

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bromq-dev/mqttkit/pkg/store"
)

func newTestStore(t *testing.T, path string) *Store {
	t.Helper()
	s := NewStore(&Config{Path: path})
	require.NoError(t, s.Start(context.Background()))
	return s
}

func TestBoltStore(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, filepath.Join(t.TempDir(), "sessions.db"))
	defer s.Stop()

	rec := &store.Record{
		ClientID:      "c1",
		Username:      "alice",
		SessionExpiry: 60,
	}
	require.NoError(t, s.Put(ctx, rec))

	got, err := s.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, uint32(60), got.SessionExpiry)

	_, err = s.Get(ctx, "absent")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Put(ctx, &store.Record{ClientID: "c2"}))
	ids, err := s.Clients(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"c1", "c2"}, ids)

	require.NoError(t, s.Delete(ctx, "c1"))
	_, err = s.Get(ctx, "c1")
	assert.ErrorIs(t, err, store.ErrNotFound)
	require.NoError(t, s.Delete(ctx, "c1"), "deleting an absent record")

	assert.ErrorIs(t, s.Put(ctx, &store.Record{}), store.ErrInvalidClientID)
}

func TestBoltStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sessions.db")

	s := newTestStore(t, path)
	require.NoError(t, s.Put(ctx, &store.Record{ClientID: "c1", Username: "alice"}))
	require.NoError(t, s.Stop())

	reopened := newTestStore(t, path)
	defer reopened.Stop()

	got, err := reopened.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
}

func TestBoltStoreRequiresStart(t *testing.T) {
	s := NewStore(&Config{Path: filepath.Join(t.TempDir(), "sessions.db")})

	assert.Error(t, s.Put(context.Background(), &store.Record{ClientID: "c1"}))
	_, err := s.Get(context.Background(), "c1")
	assert.Error(t, err)
	assert.NoError(t, s.Stop(), "stopping an unstarted store")
}
