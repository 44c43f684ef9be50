// Package favorites persists bookmarked issues to a JSON file. Each favorite
// snapshots the analysis at save time so the list can be browsed without API
// calls.
package favorites

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/issue-scout/internal/types"
)

// Status tracks what the user is doing with a saved issue.
type Status string

// Favorite statuses (closed set).
const (
	StatusSaved      Status = "saved"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusAbandoned  Status = "abandoned"
)

// Statuses lists all valid favorite statuses.
var Statuses = []Status{StatusSaved, StatusInProgress, StatusCompleted, StatusAbandoned}

// Valid reports whether the value is a member of the closed set.
func (s Status) Valid() bool {
	for _, status := range Statuses {
		if status == s {
			return true
		}
	}
	return false
}

// ErrNotFound is returned when the referenced favorite does not exist.
var ErrNotFound = errors.New("favorite not found")

// Favorite is a saved issue with its analysis snapshot and user additions.
type Favorite struct {
	IssueRef       types.IssueRef   `json:"issue_ref"`
	Title          string           `json:"title"`
	URL            string           `json:"url"`
	Difficulty     types.SkillLevel `json:"difficulty"`
	EstimatedHours types.HourRange  `json:"estimated_hours"`
	Summary        string           `json:"summary"`
	SavedAt        time.Time        `json:"saved_at"`
	Notes          string           `json:"notes,omitempty"`
	Tags           []string         `json:"tags,omitempty"`
	Status         Status           `json:"status"`
}

// Stats summarizes the favorites collection.
type Stats struct {
	Total        int                      `json:"total"`
	ByStatus     map[Status]int           `json:"by_status"`
	ByDifficulty map[types.SkillLevel]int `json:"by_difficulty"`
	Tags         []string                 `json:"tags"`
}

// Manager stores favorites in dataDir/favorites.json. Not safe for
// concurrent mutation; the CLI runs a single command per process.
type Manager struct {
	path      string
	favorites map[string]*Favorite
	now       func() time.Time
}

// NewManager loads favorites from dataDir/favorites.json, creating the
// directory if needed. A corrupt file is an error rather than a silent
// reset: favorites are user-curated state.
func NewManager(dataDir string) (*Manager, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}

	m := &Manager{
		path:      filepath.Join(dataDir, "favorites.json"),
		favorites: make(map[string]*Favorite),
		now:       time.Now,
	}

	data, err := os.ReadFile(m.path)
	if errors.Is(err, os.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read favorites %s: %w", m.path, err)
	}
	if err := json.Unmarshal(data, &m.favorites); err != nil {
		return nil, fmt.Errorf("failed to parse favorites %s: %w", m.path, err)
	}
	return m, nil
}

func (m *Manager) save() error {
	data, err := json.MarshalIndent(m.favorites, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write favorites %s: %w", m.path, err)
	}
	return nil
}

// Add saves an issue with a snapshot of its analysis. Saving an already
// saved issue overwrites the snapshot but keeps nothing from the old entry.
func (m *Manager) Add(issue *types.IssueRecord, analysis *types.AnalysisResult, notes string, tags []string) (*Favorite, error) {
	fav := &Favorite{
		IssueRef: issue.Ref(),
		Title:    issue.Title,
		URL:      issue.URL,
		SavedAt:  m.now().UTC(),
		Notes:    notes,
		Tags:     normalizeTags(tags),
		Status:   StatusSaved,
	}
	if analysis != nil {
		fav.Difficulty = analysis.Difficulty
		fav.EstimatedHours = analysis.EstimatedHours
		fav.Summary = analysis.Summary
	}

	m.favorites[fav.IssueRef.String()] = fav
	if err := m.save(); err != nil {
		return nil, err
	}
	return fav, nil
}

// Remove deletes a favorite.
func (m *Manager) Remove(ref types.IssueRef) error {
	if _, ok := m.favorites[ref.String()]; !ok {
		return ErrNotFound
	}
	delete(m.favorites, ref.String())
	return m.save()
}

// Get returns one favorite.
func (m *Manager) Get(ref types.IssueRef) (*Favorite, error) {
	fav, ok := m.favorites[ref.String()]
	if !ok {
		return nil, ErrNotFound
	}
	return fav, nil
}

// IsFavorite reports whether the issue is saved.
func (m *Manager) IsFavorite(ref types.IssueRef) bool {
	_, ok := m.favorites[ref.String()]
	return ok
}

// ListAll returns all favorites, newest first.
func (m *Manager) ListAll() []*Favorite {
	out := make([]*Favorite, 0, len(m.favorites))
	for _, fav := range m.favorites {
		out = append(out, fav)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SavedAt.Equal(out[j].SavedAt) {
			return out[i].SavedAt.After(out[j].SavedAt)
		}
		return out[i].IssueRef.String() < out[j].IssueRef.String()
	})
	return out
}

// ListByStatus returns favorites with the given status, newest first.
func (m *Manager) ListByStatus(status Status) []*Favorite {
	var out []*Favorite
	for _, fav := range m.ListAll() {
		if fav.Status == status {
			out = append(out, fav)
		}
	}
	return out
}

// ListByTag returns favorites carrying the tag, newest first.
func (m *Manager) ListByTag(tag string) []*Favorite {
	tag = strings.ToLower(strings.TrimSpace(tag))
	var out []*Favorite
	for _, fav := range m.ListAll() {
		for _, t := range fav.Tags {
			if t == tag {
				out = append(out, fav)
				break
			}
		}
	}
	return out
}

// UpdateNotes replaces the notes on a favorite.
func (m *Manager) UpdateNotes(ref types.IssueRef, notes string) error {
	fav, ok := m.favorites[ref.String()]
	if !ok {
		return ErrNotFound
	}
	fav.Notes = notes
	return m.save()
}

// UpdateStatus moves a favorite to a new status. The status set is closed.
func (m *Manager) UpdateStatus(ref types.IssueRef, status Status) error {
	if !status.Valid() {
		return fmt.Errorf("invalid status %q (valid: saved, in_progress, completed, abandoned)", status)
	}
	fav, ok := m.favorites[ref.String()]
	if !ok {
		return ErrNotFound
	}
	fav.Status = status
	return m.save()
}

// AddTag adds a tag to a favorite; adding an existing tag is a no-op.
func (m *Manager) AddTag(ref types.IssueRef, tag string) error {
	fav, ok := m.favorites[ref.String()]
	if !ok {
		return ErrNotFound
	}
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return errors.New("tag is empty")
	}
	for _, t := range fav.Tags {
		if t == tag {
			return nil
		}
	}
	fav.Tags = append(fav.Tags, tag)
	return m.save()
}

// RemoveTag removes a tag from a favorite; a missing tag is a no-op.
func (m *Manager) RemoveTag(ref types.IssueRef, tag string) error {
	fav, ok := m.favorites[ref.String()]
	if !ok {
		return ErrNotFound
	}
	tag = strings.ToLower(strings.TrimSpace(tag))
	kept := fav.Tags[:0]
	for _, t := range fav.Tags {
		if t != tag {
			kept = append(kept, t)
		}
	}
	fav.Tags = kept
	return m.save()
}

// Tags returns all distinct tags across favorites, sorted.
func (m *Manager) Tags() []string {
	set := make(map[string]bool)
	for _, fav := range m.favorites {
		for _, t := range fav.Tags {
			set[t] = true
		}
	}
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Count returns the number of favorites.
func (m *Manager) Count() int {
	return len(m.favorites)
}

// GetStats summarizes the collection by status and difficulty.
func (m *Manager) GetStats() Stats {
	stats := Stats{
		Total:        len(m.favorites),
		ByStatus:     make(map[Status]int),
		ByDifficulty: make(map[types.SkillLevel]int),
		Tags:         m.Tags(),
	}
	for _, fav := range m.favorites {
		stats.ByStatus[fav.Status]++
		if fav.Difficulty != "" {
			stats.ByDifficulty[fav.Difficulty]++
		}
	}
	return stats
}

func normalizeTags(tags []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
