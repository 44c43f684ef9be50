// Package history tracks which issues the user has already seen and what
// happened with them. Entries are lightweight: enough to filter repeat
// results and compute activity stats; full snapshots live in favorites.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jonathan/issue-scout/internal/types"
)

// Status is the progression of an issue through the user's attention.
type Status string

// History statuses (closed set).
const (
	StatusViewed     Status = "viewed"     // shown in results
	StatusInterested Status = "interested" // user opened the link
	StatusAttempted  Status = "attempted"  // user started working on it
	StatusCompleted  Status = "completed"  // PR submitted or merged
	StatusAbandoned  Status = "abandoned"  // user gave up
	StatusSkipped    Status = "skipped"    // user dismissed it
)

// Statuses lists all valid history statuses.
var Statuses = []Status{
	StatusViewed, StatusInterested, StatusAttempted,
	StatusCompleted, StatusAbandoned, StatusSkipped,
}

// Valid reports whether the value is a member of the closed set.
func (s Status) Valid() bool {
	for _, status := range Statuses {
		if status == s {
			return true
		}
	}
	return false
}

// ErrNotFound is returned when the referenced entry does not exist.
var ErrNotFound = errors.New("history entry not found")

// Entry is one issue's viewing record.
type Entry struct {
	IssueRef   types.IssueRef   `json:"issue_ref"`
	Title      string           `json:"title"`
	URL        string           `json:"url,omitempty"`
	Difficulty types.SkillLevel `json:"difficulty,omitempty"`
	FirstSeen  time.Time        `json:"first_seen"`
	LastSeen   time.Time        `json:"last_seen"`
	ViewCount  int              `json:"view_count"`
	Status     Status           `json:"status"`
}

// Stats summarizes the history.
type Stats struct {
	Total          int                      `json:"total"`
	ByStatus       map[Status]int           `json:"by_status"`
	ByDifficulty   map[types.SkillLevel]int `json:"by_difficulty"`
	RecentWeek     int                      `json:"recent_week"`
	RecentMonth    int                      `json:"recent_month"`
	CompletionRate float64                  `json:"completion_rate"`
	MostViewed     []*Entry                 `json:"most_viewed"`
}

// Manager stores history in dataDir/history.json. Not safe for concurrent
// mutation; the CLI runs a single command per process.
type Manager struct {
	path    string
	entries map[string]*Entry
	now     func() time.Time
}

// NewManager loads history from dataDir/history.json, creating the directory
// if needed.
func NewManager(dataDir string) (*Manager, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}

	m := &Manager{
		path:    filepath.Join(dataDir, "history.json"),
		entries: make(map[string]*Entry),
		now:     time.Now,
	}

	data, err := os.ReadFile(m.path)
	if errors.Is(err, os.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history %s: %w", m.path, err)
	}
	if err := json.Unmarshal(data, &m.entries); err != nil {
		return nil, fmt.Errorf("failed to parse history %s: %w", m.path, err)
	}
	return m, nil
}

func (m *Manager) save() error {
	data, err := json.MarshalIndent(m.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write history %s: %w", m.path, err)
	}
	return nil
}

// RecordView marks an issue as seen. A repeat view bumps last_seen and the
// view count; a first view creates the entry with status viewed.
func (m *Manager) RecordView(issue *types.IssueRecord, difficulty types.SkillLevel) (*Entry, error) {
	key := issue.Ref().String()
	now := m.now().UTC()

	if entry, ok := m.entries[key]; ok {
		entry.LastSeen = now
		entry.ViewCount++
		if issue.Title != "" {
			entry.Title = issue.Title
		}
		if difficulty != "" {
			entry.Difficulty = difficulty
		}
		if issue.URL != "" {
			entry.URL = issue.URL
		}
		return entry, m.save()
	}

	entry := &Entry{
		IssueRef:   issue.Ref(),
		Title:      issue.Title,
		URL:        issue.URL,
		Difficulty: difficulty,
		FirstSeen:  now,
		LastSeen:   now,
		ViewCount:  1,
		Status:     StatusViewed,
	}
	m.entries[key] = entry
	return entry, m.save()
}

// RecordBatch marks a result page of issues as viewed.
func (m *Manager) RecordBatch(issues []*types.IssueRecord, difficulties map[types.IssueRef]types.SkillLevel) error {
	for _, issue := range issues {
		if _, err := m.RecordView(issue, difficulties[issue.Ref()]); err != nil {
			return err
		}
	}
	return nil
}

// UpdateStatus moves an entry to a new status and bumps last_seen.
func (m *Manager) UpdateStatus(ref types.IssueRef, status Status) error {
	if !status.Valid() {
		return fmt.Errorf("invalid status %q (valid: viewed, interested, attempted, completed, abandoned, skipped)", status)
	}
	entry, ok := m.entries[ref.String()]
	if !ok {
		return ErrNotFound
	}
	entry.Status = status
	entry.LastSeen = m.now().UTC()
	return m.save()
}

// IsSeen reports whether the issue appears in history.
func (m *Manager) IsSeen(ref types.IssueRef) bool {
	_, ok := m.entries[ref.String()]
	return ok
}

// Get returns one entry.
func (m *Manager) Get(ref types.IssueRef) (*Entry, error) {
	entry, ok := m.entries[ref.String()]
	if !ok {
		return nil, ErrNotFound
	}
	return entry, nil
}

// SeenRefs returns the set of all seen issues, for filtering search results.
func (m *Manager) SeenRefs() map[types.IssueRef]bool {
	out := make(map[types.IssueRef]bool, len(m.entries))
	for _, entry := range m.entries {
		out[entry.IssueRef] = true
	}
	return out
}

// ListAll returns entries newest-seen first. A non-positive limit means all.
func (m *Manager) ListAll(limit int) []*Entry {
	out := make([]*Entry, 0, len(m.entries))
	for _, entry := range m.entries {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].LastSeen.Equal(out[j].LastSeen) {
			return out[i].LastSeen.After(out[j].LastSeen)
		}
		return out[i].IssueRef.String() < out[j].IssueRef.String()
	})
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}

// ListByStatus returns entries with the given status, newest-seen first.
func (m *Manager) ListByStatus(status Status) []*Entry {
	var out []*Entry
	for _, entry := range m.ListAll(0) {
		if entry.Status == status {
			out = append(out, entry)
		}
	}
	return out
}

// ListRecent returns entries seen within the last N days.
func (m *Manager) ListRecent(days int) []*Entry {
	cutoff := m.now().UTC().AddDate(0, 0, -days)
	var out []*Entry
	for _, entry := range m.ListAll(0) {
		if !entry.LastSeen.Before(cutoff) {
			out = append(out, entry)
		}
	}
	return out
}

// GetStats summarizes activity. Completion rate is completed over
// completed+attempted; zero when nothing was attempted.
func (m *Manager) GetStats() Stats {
	stats := Stats{
		Total:        len(m.entries),
		ByStatus:     make(map[Status]int),
		ByDifficulty: make(map[types.SkillLevel]int),
	}

	now := m.now().UTC()
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, 0, -30)

	all := make([]*Entry, 0, len(m.entries))
	for _, entry := range m.entries {
		all = append(all, entry)
		stats.ByStatus[entry.Status]++
		if entry.Difficulty != "" {
			stats.ByDifficulty[entry.Difficulty]++
		}
		if !entry.LastSeen.Before(weekAgo) {
			stats.RecentWeek++
		}
		if !entry.LastSeen.Before(monthAgo) {
			stats.RecentMonth++
		}
	}

	attempted := stats.ByStatus[StatusAttempted]
	completed := stats.ByStatus[StatusCompleted]
	if attempted+completed > 0 {
		stats.CompletionRate = float64(completed) / float64(attempted+completed)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].ViewCount != all[j].ViewCount {
			return all[i].ViewCount > all[j].ViewCount
		}
		return all[i].IssueRef.String() < all[j].IssueRef.String()
	})
	if len(all) > 5 {
		all = all[:5]
	}
	stats.MostViewed = all

	return stats
}

// Count returns the number of entries.
func (m *Manager) Count() int {
	return len(m.entries)
}

// RemoveEntry deletes one entry.
func (m *Manager) RemoveEntry(ref types.IssueRef) error {
	if _, ok := m.entries[ref.String()]; !ok {
		return ErrNotFound
	}
	delete(m.entries, ref.String())
	return m.save()
}

// ClearOld removes entries last seen more than N days ago, keeping attempted
// and completed ones as a permanent record. Returns how many were removed.
func (m *Manager) ClearOld(days int) (int, error) {
	cutoff := m.now().UTC().AddDate(0, 0, -days)

	removed := 0
	for key, entry := range m.entries {
		if entry.Status == StatusAttempted || entry.Status == StatusCompleted {
			continue
		}
		if entry.LastSeen.Before(cutoff) {
			delete(m.entries, key)
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, m.save()
}

// ClearAll wipes the history. Returns how many entries were removed.
func (m *Manager) ClearAll() (int, error) {
	count := len(m.entries)
	m.entries = make(map[string]*Entry)
	return count, m.save()
}
