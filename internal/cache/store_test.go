package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(DefaultConfig(filepath.Join(t.TempDir(), "cache.db")), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_SetGetRoundTrip(t *testing.T) {
	store := newTestStore(t)

	store.Set(NamespaceSearch, "k1", []byte("payload"), 0)

	got, ok := store.Get(NamespaceSearch, "k1")
	require.True(t, ok)
	assert.Equal(t, []byte("payload"), got)
}

func TestStore_MissOnAbsentKey(t *testing.T) {
	store := newTestStore(t)

	_, ok := store.Get(NamespaceSearch, "nope")
	assert.False(t, ok)

	stats := store.Stats()
	assert.Equal(t, int64(1), stats.Namespaces[NamespaceSearch].Misses)
}

func TestStore_NamespacesAreIsolated(t *testing.T) {
	store := newTestStore(t)

	store.Set(NamespaceSearch, "shared-key", []byte("search"), 0)
	store.Set(NamespaceAnalysis, "shared-key", []byte("analysis"), 0)

	got, ok := store.Get(NamespaceSearch, "shared-key")
	require.True(t, ok)
	assert.Equal(t, []byte("search"), got)

	got, ok = store.Get(NamespaceAnalysis, "shared-key")
	require.True(t, ok)
	assert.Equal(t, []byte("analysis"), got)
}

func TestStore_ExpiryIsLazy(t *testing.T) {
	store := newTestStore(t)

	base := time.Now()
	store.now = func() time.Time { return base }
	store.Set(NamespaceSearch, "k", []byte("v"), time.Minute)

	// Just before the TTL boundary: still a hit.
	store.now = func() time.Time { return base.Add(59 * time.Second) }
	_, ok := store.Get(NamespaceSearch, "k")
	assert.True(t, ok)

	// Past the boundary: a miss, and the stale row is purged.
	store.now = func() time.Time { return base.Add(61 * time.Second) }
	_, ok = store.Get(NamespaceSearch, "k")
	assert.False(t, ok)

	stats := store.Stats()
	assert.Equal(t, int64(0), stats.Namespaces[NamespaceSearch].Entries)
}

func TestStore_SetResetsExpirationClock(t *testing.T) {
	store := newTestStore(t)

	base := time.Now()
	store.now = func() time.Time { return base }
	store.Set(NamespaceAnalysis, "k", []byte("old"), time.Minute)

	// Overwrite halfway through the original TTL.
	store.now = func() time.Time { return base.Add(30 * time.Second) }
	store.Set(NamespaceAnalysis, "k", []byte("new"), time.Minute)

	// 80s after the first write the original entry would be dead, but the
	// overwrite restarted the clock.
	store.now = func() time.Time { return base.Add(80 * time.Second) }
	got, ok := store.Get(NamespaceAnalysis, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("new"), got)
}

func TestStore_NamespaceTTLPolicy(t *testing.T) {
	store, err := New(Config{
		Path:        filepath.Join(t.TempDir(), "cache.db"),
		SearchTTL:   time.Minute,
		AnalysisTTL: time.Hour,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	base := time.Now()
	store.now = func() time.Time { return base }
	store.Set(NamespaceSearch, "k", []byte("s"), 0)
	store.Set(NamespaceAnalysis, "k", []byte("a"), 0)

	store.now = func() time.Time { return base.Add(10 * time.Minute) }
	_, ok := store.Get(NamespaceSearch, "k")
	assert.False(t, ok, "search entries expire quickly")
	_, ok = store.Get(NamespaceAnalysis, "k")
	assert.True(t, ok, "analysis entries live for hours")
}

func TestStore_ClearNamespace(t *testing.T) {
	store := newTestStore(t)

	store.Set(NamespaceSearch, "k", []byte("s"), 0)
	store.Set(NamespaceAnalysis, "k", []byte("a"), 0)

	require.NoError(t, store.Clear(NamespaceSearch))

	_, ok := store.Get(NamespaceSearch, "k")
	assert.False(t, ok)
	_, ok = store.Get(NamespaceAnalysis, "k")
	assert.True(t, ok)
}

func TestStore_ClearAllResetsCounters(t *testing.T) {
	store := newTestStore(t)

	store.Set(NamespaceSearch, "k", []byte("s"), 0)
	_, _ = store.Get(NamespaceSearch, "k")
	_, _ = store.Get(NamespaceSearch, "absent")

	require.NoError(t, store.ClearAll())

	stats := store.Stats()
	hits, misses := stats.Total()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
	assert.Zero(t, stats.Namespaces[NamespaceSearch].Entries)
}

func TestStore_StatsCountsHitsAndMisses(t *testing.T) {
	store := newTestStore(t)

	store.Set(NamespaceAnalysis, "k", []byte("v"), 0)
	_, _ = store.Get(NamespaceAnalysis, "k")
	_, _ = store.Get(NamespaceAnalysis, "k")
	_, _ = store.Get(NamespaceAnalysis, "missing")

	stats := store.Stats()
	ns := stats.Namespaces[NamespaceAnalysis]
	assert.Equal(t, int64(2), ns.Hits)
	assert.Equal(t, int64(1), ns.Misses)
	assert.Equal(t, int64(1), ns.Entries)
}

func TestStore_JSONHelpers(t *testing.T) {
	store := newTestStore(t)

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	store.SetJSON(NamespaceSearch, "k", payload{Name: "x", Count: 3}, 0)

	var got payload
	require.True(t, store.GetJSON(NamespaceSearch, "k", &got))
	assert.Equal(t, payload{Name: "x", Count: 3}, got)
}

func TestStore_CorruptJSONEntryIsDropped(t *testing.T) {
	store := newTestStore(t)

	store.Set(NamespaceSearch, "k", []byte("{not json"), 0)

	var got map[string]string
	assert.False(t, store.GetJSON(NamespaceSearch, "k", &got))

	// The corrupt row must be gone entirely.
	_, ok := store.Get(NamespaceSearch, "k")
	assert.False(t, ok)
}

func TestStore_DisabledStoreAlwaysMisses(t *testing.T) {
	store := NewDisabled(nil)

	store.Set(NamespaceSearch, "k", []byte("v"), 0)
	_, ok := store.Get(NamespaceSearch, "k")
	assert.False(t, ok)

	require.NoError(t, store.Clear(NamespaceSearch))
	require.NoError(t, store.ClearAll())
	assert.NoError(t, store.Close())
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	store, err := New(DefaultConfig(path), nil)
	require.NoError(t, err)
	store.Set(NamespaceAnalysis, "k", []byte("durable"), 0)
	require.NoError(t, store.Close())

	reopened, err := New(DefaultConfig(path), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	got, ok := reopened.Get(NamespaceAnalysis, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("durable"), got)
}
