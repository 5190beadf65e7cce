package handoff

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStashRedeemRoundTrip(t *testing.T) {
	svc := NewService(NewMemoryRepository(time.Minute), nil)
	ctx := context.Background()

	payload := json.RawMessage(`[{"product_id":1,"name":"Panadol","price":100,"quantity":5}]`)
	key, err := svc.Stash(ctx, "restockProducts", payload)
	require.NoError(t, err)
	require.NotEmpty(t, key)

	entry, err := svc.Redeem(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "restockProducts", entry.Kind)
	assert.JSONEq(t, string(payload), string(entry.Payload))
}

func TestRedeemIsReadOnce(t *testing.T) {
	svc := NewService(NewMemoryRepository(time.Minute), nil)
	ctx := context.Background()

	key, err := svc.Stash(ctx, "pendingOrder", json.RawMessage(`{}`))
	require.NoError(t, err)

	_, err = svc.Redeem(ctx, key)
	require.NoError(t, err)

	_, err = svc.Redeem(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedeemUnknownKey(t *testing.T) {
	svc := NewService(NewMemoryRepository(time.Minute), nil)

	_, err := svc.Redeem(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepositoryExpiresEntries(t *testing.T) {
	repo := NewMemoryRepository(time.Minute)
	current := time.Now()
	repo.now = func() time.Time { return current }

	err := repo.Put(context.Background(), Entry{Key: "k", Kind: "x", CreatedAt: current})
	require.NoError(t, err)

	current = current.Add(2 * time.Minute)
	_, err = repo.Take(context.Background(), "k")
	assert.ErrorIs(t, err, ErrNotFound)
}
