package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Namespace is a logical cache category with its own TTL policy.
type Namespace string

// Cache namespaces.
const (
	// NamespaceSearch holds GitHub search results. Short TTL: remote issue
	// state changes frequently.
	NamespaceSearch Namespace = "search"
	// NamespaceAnalysis holds AI-derived analyses. Long TTL: they are stable
	// relative to the issue content and cost money to recompute.
	NamespaceAnalysis Namespace = "analysis"
)

// Default TTL policy per namespace.
const (
	DefaultSearchTTL   = 15 * time.Minute
	DefaultAnalysisTTL = 24 * time.Hour
)

// Config holds construction parameters for the Store. All fields are
// explicit so tests can run with deterministic inputs.
type Config struct {
	// Path is the SQLite database file. Use ":memory:" for an ephemeral store.
	Path        string
	SearchTTL   time.Duration
	AnalysisTTL time.Duration
}

// DefaultConfig returns the shipped TTL policy backed by the given file.
func DefaultConfig(path string) Config {
	return Config{
		Path:        path,
		SearchTTL:   DefaultSearchTTL,
		AnalysisTTL: DefaultAnalysisTTL,
	}
}

// NamespaceStats holds hit/miss counters and the live entry count for one
// namespace.
type NamespaceStats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Entries int64 `json:"entries"`
}

// Stats aggregates counters across namespaces.
type Stats struct {
	Namespaces map[Namespace]NamespaceStats `json:"namespaces"`
}

// Total returns summed hits and misses across all namespaces.
func (s Stats) Total() (hits, misses int64) {
	for _, ns := range s.Namespaces {
		hits += ns.Hits
		misses += ns.Misses
	}
	return hits, misses
}

// Store is a disk-backed key/value cache with per-entry expiration.
// It is purely an optimization: every storage failure degrades to a miss
// (or a no-op on write) and is logged, never returned to the caller.
// Safe for concurrent use; same-key races resolve last-write-wins.
type Store struct {
	db   *sql.DB
	ttls map[Namespace]time.Duration
	log  *zap.Logger

	mu     sync.Mutex
	hits   map[Namespace]int64
	misses map[Namespace]int64

	// now is swapped in tests to drive expiry deterministically.
	now func() time.Time
}

// New opens (creating if necessary) the cache database and prepares the
// schema. Unlike reads and writes, a failure to open is returned: it means
// the configured path is unusable and the caller should fall back to
// NewDisabled or surface the problem.
func New(cfg Config, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.SearchTTL == 0 {
		cfg.SearchTTL = DefaultSearchTTL
	}
	if cfg.AnalysisTTL == 0 {
		cfg.AnalysisTTL = DefaultAnalysisTTL
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cfg.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database %s: %w", cfg.Path, err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping cache database %s: %w", cfg.Path, err)
	}

	const schema = `CREATE TABLE IF NOT EXISTS cache_entries (
		namespace  TEXT NOT NULL,
		key        TEXT NOT NULL,
		value      BLOB NOT NULL,
		created_at INTEGER NOT NULL,
		ttl_ns     INTEGER NOT NULL,
		PRIMARY KEY (namespace, key)
	);`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate cache schema: %w", err)
	}

	return &Store{
		db: db,
		ttls: map[Namespace]time.Duration{
			NamespaceSearch:   cfg.SearchTTL,
			NamespaceAnalysis: cfg.AnalysisTTL,
		},
		log:    log,
		hits:   make(map[Namespace]int64),
		misses: make(map[Namespace]int64),
		now:    time.Now,
	}, nil
}

// NewDisabled returns a store whose every lookup is a miss and every write a
// no-op. Used when the cache directory is unavailable, preserving the
// "cache never affects correctness" invariant.
func NewDisabled(log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		ttls:   map[Namespace]time.Duration{},
		log:    log,
		hits:   make(map[Namespace]int64),
		misses: make(map[Namespace]int64),
		now:    time.Now,
	}
}

// Close releases the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get returns the payload stored under (namespace, key). Expired entries
// behave identically to absent ones and are purged as a side effect.
func (s *Store) Get(ns Namespace, key string) ([]byte, bool) {
	if s.db == nil {
		s.count(ns, false)
		return nil, false
	}

	var value []byte
	var createdNano, ttlNano int64
	row := s.db.QueryRow(
		`SELECT value, created_at, ttl_ns FROM cache_entries WHERE namespace = ? AND key = ?`,
		string(ns), key,
	)
	switch err := row.Scan(&value, &createdNano, &ttlNano); err {
	case nil:
	case sql.ErrNoRows:
		s.count(ns, false)
		return nil, false
	default:
		s.log.Warn("cache read failed, treating as miss",
			zap.String("namespace", string(ns)), zap.Error(err))
		s.count(ns, false)
		return nil, false
	}

	expiresAt := time.Unix(0, createdNano).Add(time.Duration(ttlNano))
	if !s.now().Before(expiresAt) {
		if _, err := s.db.Exec(
			`DELETE FROM cache_entries WHERE namespace = ? AND key = ?`,
			string(ns), key,
		); err != nil {
			s.log.Warn("failed to purge expired cache entry",
				zap.String("namespace", string(ns)), zap.Error(err))
		}
		s.count(ns, false)
		return nil, false
	}

	s.count(ns, true)
	return value, true
}

// Set stores the payload under (namespace, key), unconditionally replacing
// any existing entry and resetting its expiration clock. A zero ttl applies
// the namespace policy TTL.
func (s *Store) Set(ns Namespace, key string, value []byte, ttl time.Duration) {
	if s.db == nil {
		return
	}
	if ttl <= 0 {
		ttl = s.ttls[ns]
	}
	if ttl <= 0 {
		ttl = DefaultSearchTTL
	}

	_, err := s.db.Exec(
		`INSERT INTO cache_entries (namespace, key, value, created_at, ttl_ns)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (namespace, key) DO UPDATE SET
		   value = excluded.value,
		   created_at = excluded.created_at,
		   ttl_ns = excluded.ttl_ns`,
		string(ns), key, value, s.now().UnixNano(), int64(ttl),
	)
	if err != nil {
		s.log.Warn("cache write failed, continuing without caching",
			zap.String("namespace", string(ns)), zap.Error(err))
	}
}

// GetJSON unmarshals a cached payload into v. A decode failure is treated
// as a miss and the corrupt entry is dropped.
func (s *Store) GetJSON(ns Namespace, key string, v any) bool {
	data, ok := s.Get(ns, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.log.Warn("corrupt cache entry dropped",
			zap.String("namespace", string(ns)), zap.Error(err))
		s.Delete(ns, key)
		return false
	}
	return true
}

// SetJSON marshals v and stores it under (namespace, key).
func (s *Store) SetJSON(ns Namespace, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		s.log.Warn("failed to encode cache payload",
			zap.String("namespace", string(ns)), zap.Error(err))
		return
	}
	s.Set(ns, key, data, ttl)
}

// Delete removes a single entry if present.
func (s *Store) Delete(ns Namespace, key string) {
	if s.db == nil {
		return
	}
	if _, err := s.db.Exec(
		`DELETE FROM cache_entries WHERE namespace = ? AND key = ?`,
		string(ns), key,
	); err != nil {
		s.log.Warn("failed to delete cache entry",
			zap.String("namespace", string(ns)), zap.Error(err))
	}
}

// Clear removes every entry in one namespace.
func (s *Store) Clear(ns Namespace) error {
	if s.db == nil {
		return nil
	}
	if _, err := s.db.Exec(`DELETE FROM cache_entries WHERE namespace = ?`, string(ns)); err != nil {
		return fmt.Errorf("failed to clear cache namespace %s: %w", ns, err)
	}
	return nil
}

// ClearAll removes every entry in every namespace and resets the counters.
func (s *Store) ClearAll() error {
	if s.db == nil {
		return nil
	}
	if _, err := s.db.Exec(`DELETE FROM cache_entries`); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	s.mu.Lock()
	s.hits = make(map[Namespace]int64)
	s.misses = make(map[Namespace]int64)
	s.mu.Unlock()
	return nil
}

// Stats returns hit/miss counters and live entry counts per namespace.
// Enumeration purges expired rows first so counts only reflect valid entries.
func (s *Store) Stats() Stats {
	stats := Stats{Namespaces: make(map[Namespace]NamespaceStats)}

	s.mu.Lock()
	for ns, hits := range s.hits {
		entry := stats.Namespaces[ns]
		entry.Hits = hits
		stats.Namespaces[ns] = entry
	}
	for ns, misses := range s.misses {
		entry := stats.Namespaces[ns]
		entry.Misses = misses
		stats.Namespaces[ns] = entry
	}
	s.mu.Unlock()

	if s.db == nil {
		return stats
	}

	cutoff := s.now().UnixNano()
	if _, err := s.db.Exec(
		`DELETE FROM cache_entries WHERE created_at + ttl_ns <= ?`, cutoff,
	); err != nil {
		s.log.Warn("failed to purge expired cache entries", zap.Error(err))
	}

	rows, err := s.db.Query(`SELECT namespace, COUNT(*) FROM cache_entries GROUP BY namespace`)
	if err != nil {
		s.log.Warn("failed to enumerate cache entries", zap.Error(err))
		return stats
	}
	defer rows.Close()
	for rows.Next() {
		var ns string
		var count int64
		if err := rows.Scan(&ns, &count); err != nil {
			s.log.Warn("failed to scan cache stats row", zap.Error(err))
			break
		}
		entry := stats.Namespaces[Namespace(ns)]
		entry.Entries = count
		stats.Namespaces[Namespace(ns)] = entry
	}
	return stats
}

func (s *Store) count(ns Namespace, hit bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if hit {
		s.hits[ns]++
	} else {
		s.misses[ns]++
	}
}
