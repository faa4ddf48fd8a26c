package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bromq-dev/mqttkit/pkg/store"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Start(ctx))
	defer s.Stop()

	rec := &store.Record{
		ClientID:      "c1",
		Username:      "alice",
		Password:      []byte("pw"),
		SessionExpiry: 60,
		UpdatedAt:     time.Now(),
	}
	require.NoError(t, s.Put(ctx, rec))

	got, err := s.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	_, err = s.Get(ctx, "absent")
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Put(ctx, &store.Record{ClientID: "c2"}))
	ids, err := s.Clients(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"c1", "c2"}, ids)

	require.NoError(t, s.Delete(ctx, "c1"))
	_, err = s.Get(ctx, "c1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Deleting an absent record is not an error.
	require.NoError(t, s.Delete(ctx, "c1"))
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	rec := &store.Record{ClientID: "c1", Password: []byte("pw")}
	require.NoError(t, s.Put(ctx, rec))

	// Mutating the caller's record must not reach the stored copy.
	rec.Password[0] = 'x'
	got, err := s.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, []byte("pw"), got.Password)

	// Mutating a returned record must not reach the stored copy either.
	got.Password[1] = 'x'
	again, err := s.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, []byte("pw"), again.Password)
}

func TestMemoryStorePutValidation(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	assert.ErrorIs(t, s.Put(ctx, nil), store.ErrInvalidClientID)
	assert.ErrorIs(t, s.Put(ctx, &store.Record{}), store.ErrInvalidClientID)
}

func TestMemoryStoreOverwrite(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	require.NoError(t, s.Put(ctx, &store.Record{ClientID: "c1", Username: "old"}))
	require.NoError(t, s.Put(ctx, &store.Record{ClientID: "c1", Username: "new"}))

	got, err := s.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Username)

	ids, err := s.Clients(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, ids)
}
