package session

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetpulse/internal/fleet"
)

func TestStore_PutGetDelete(t *testing.T) {
	store := NewStore(time.Hour, slog.Default())
	wb := &fleet.Workbook{}

	id := store.Put(wb)
	require.NotEmpty(t, id)
	assert.Equal(t, 1, store.Len())

	got, ok := store.Get(id)
	require.True(t, ok)
	assert.Same(t, wb, got)

	_, ok = store.Get("unknown")
	assert.False(t, ok)

	store.Delete(id)
	_, ok = store.Get(id)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestStore_DistinctIDs(t *testing.T) {
	store := NewStore(time.Hour, slog.Default())
	a := store.Put(&fleet.Workbook{})
	b := store.Put(&fleet.Workbook{})
	assert.NotEqual(t, a, b)
}

func TestStore_PurgeExpired(t *testing.T) {
	store := NewStore(time.Minute, slog.Default())

	now := time.Now()
	store.now = func() time.Time { return now }

	stale := store.Put(&fleet.Workbook{})

	// Advance the clock past the TTL, then touch a second entry so only
	// the first is idle.
	now = now.Add(2 * time.Minute)
	fresh := store.Put(&fleet.Workbook{})

	removed := store.PurgeExpired()
	assert.Equal(t, 1, removed)

	_, ok := store.Get(stale)
	assert.False(t, ok)
	_, ok = store.Get(fresh)
	assert.True(t, ok)
}

func TestStore_PurgeDisabledWithoutTTL(t *testing.T) {
	store := NewStore(0, slog.Default())
	store.Put(&fleet.Workbook{})
	assert.Equal(t, 0, store.PurgeExpired())
	assert.Equal(t, 1, store.Len())
}
