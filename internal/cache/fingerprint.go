// Package cache provides a namespaced TTL cache that deduplicates expensive
// remote calls (GitHub searches and AI analyses) behind normalized request
// fingerprints.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// Fingerprint derives a deterministic cache key from semantic request
// parameters. Entries are sorted by key and free-text values are lower-cased
// and trimmed, so insertion order, casing, and stray whitespace never change
// the result. The namespace is deliberately not part of the fingerprint; the
// caller pairs the returned key with a namespace at lookup time.
func Fingerprint(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, normalizeField(k))
	}
	sort.Strings(keys)

	normalized := make(map[string]string, len(params))
	for k, v := range params {
		normalized[normalizeField(k)] = normalizeField(v)
	}

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(normalized[k])
	}

	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}

func normalizeField(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
