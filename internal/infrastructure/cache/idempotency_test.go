package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*IdempotencyStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewIdempotencyStore(client, time.Hour), mr
}

func TestIdempotency_PrimeraReservaLuegoReplay(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	e, reserved, err := s.Begin(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, reserved)
	assert.Nil(t, e)

	e, reserved, err = s.Begin(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, reserved)
	assert.True(t, e.Pending)

	require.NoError(t, s.Complete(ctx, "k1", 200, []byte(`{"isSuccess":true}`)))
	e, reserved, err = s.Begin(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, reserved)
	assert.False(t, e.Pending)
	assert.Equal(t, 200, e.Status)
	assert.JSONEq(t, `{"isSuccess":true}`, string(e.Body))
}

func TestIdempotency_ReleasePermiteReintento(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	_, reserved, err := s.Begin(ctx, "k2")
	require.NoError(t, err)
	require.True(t, reserved)
	require.NoError(t, s.Release(ctx, "k2"))

	_, reserved, err = s.Begin(ctx, "k2")
	require.NoError(t, err)
	assert.True(t, reserved)
}

func TestIdempotency_ExpiraConTTL(t *testing.T) {
	s, mr := newStore(t)
	ctx := context.Background()

	_, _, err := s.Begin(ctx, "k3")
	require.NoError(t, err)
	require.NoError(t, s.Complete(ctx, "k3", 200, []byte("{}")))
	mr.FastForward(2 * time.Hour)

	_, reserved, err := s.Begin(ctx, "k3")
	require.NoError(t, err)
	assert.True(t, reserved)
}
