// Package labelmap maps repository issue labels to skill levels. A builtin
// read-only seed table is combined at lookup time with a user overlay of
// added and shadow-deleted labels, so the seed data is never mutated.
package labelmap

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jonathan/issue-scout/internal/types"
)

// Sentinel errors callers branch on.
var (
	// ErrBuiltinLabel is returned when deleting a builtin label outright;
	// shadowing is the supported suppression mechanism.
	ErrBuiltinLabel = errors.New("builtin labels cannot be deleted; shadow them instead")
	// ErrBuiltinMapping is returned when deleting a repository whose only
	// mapping data is builtin.
	ErrBuiltinMapping = errors.New("builtin mappings cannot be deleted")
	// ErrNotFound is returned when the named mapping or label does not exist.
	ErrNotFound = errors.New("mapping not found")
	// ErrUnknownRepo is returned when importing a repository with no builtin entry.
	ErrUnknownRepo = errors.New("no builtin mapping for repository")
)

// Mapping is one repository/skill-level row of the effective mapping table,
// the shape exposed to the CLI listing surface.
type Mapping struct {
	RepoFullName string           `json:"repo_full_name"`
	SkillLevel   types.SkillLevel `json:"skill_level"`
	Labels       []string         `json:"labels"`
	IsBuiltin    bool             `json:"is_builtin"`
	Notes        string           `json:"notes,omitempty"`
}

// overlay is the persisted per-repository user customization: labels added
// per level, builtin labels shadow-deleted per level, and whether the entry
// was imported (detached) from the builtin table.
type overlay struct {
	Added    map[types.SkillLevel][]string `json:"added,omitempty"`
	Removed  map[types.SkillLevel][]string `json:"removed,omitempty"`
	Detached bool                          `json:"detached,omitempty"`
	Notes    string                        `json:"notes,omitempty"`
}

// Manager resolves labels to skill levels and persists user customizations
// to a JSON file. Not safe for concurrent mutation; the CLI runs a single
// command per process.
type Manager struct {
	path     string
	overlays map[string]*overlay
}

// NewManager loads user mappings from dataDir/label_mappings.json, creating
// the directory if needed. A corrupt file is an error rather than a silent
// reset: user mappings are hand-curated state.
func NewManager(dataDir string) (*Manager, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}

	m := &Manager{
		path:     filepath.Join(dataDir, "label_mappings.json"),
		overlays: make(map[string]*overlay),
	}

	data, err := os.ReadFile(m.path)
	if errors.Is(err, os.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read label mappings %s: %w", m.path, err)
	}
	if err := json.Unmarshal(data, &m.overlays); err != nil {
		return nil, fmt.Errorf("failed to parse label mappings %s: %w", m.path, err)
	}
	return m, nil
}

func (m *Manager) save() error {
	data, err := json.MarshalIndent(m.overlays, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode label mappings: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write label mappings %s: %w", m.path, err)
	}
	return nil
}

// baseLabels returns the read-only base set for a repo/level: the builtin
// per-repo entry when one exists, the global defaults otherwise, and nothing
// when the user detached the repo via import.
func (m *Manager) baseLabels(repo string, level types.SkillLevel) []string {
	if ov, ok := m.overlays[repo]; ok && ov.Detached {
		return nil
	}
	if entry, ok := builtinMappings[repo]; ok {
		return entry.levels[level]
	}
	return defaultLabels[level]
}

// EffectiveLabels builds the effective set for one repo and level:
// (base ∪ added) − removed, all lower-cased, sorted for stable output.
func (m *Manager) EffectiveLabels(repo string, level types.SkillLevel) []string {
	set := make(map[string]bool)
	for _, l := range m.baseLabels(repo, level) {
		set[strings.ToLower(l)] = true
	}
	if ov, ok := m.overlays[repo]; ok {
		for _, l := range ov.Added[level] {
			set[strings.ToLower(l)] = true
		}
		for _, l := range ov.Removed[level] {
			delete(set, strings.ToLower(l))
		}
	}

	labels := make([]string, 0, len(set))
	for l := range set {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// Resolve infers a skill level from an issue's raw labels. Levels are tested
// hardest first, so an issue carrying both a beginner and an advanced label
// resolves to advanced (erring toward not under-promising difficulty). The
// second return is false when no configured label matches, deferring to the
// AI-derived difficulty.
func (m *Manager) Resolve(repo string, rawLabels []string) (types.SkillLevel, bool) {
	issueLabels := make(map[string]bool, len(rawLabels))
	for _, l := range rawLabels {
		issueLabels[strings.ToLower(strings.TrimSpace(l))] = true
	}

	for i := len(types.SkillLevels) - 1; i >= 0; i-- {
		level := types.SkillLevels[i]
		for _, l := range m.EffectiveLabels(repo, level) {
			if issueLabels[l] {
				return level, true
			}
		}
	}
	return "", false
}

func (m *Manager) overlayFor(repo string) *overlay {
	ov, ok := m.overlays[repo]
	if !ok {
		ov = &overlay{
			Added:   make(map[types.SkillLevel][]string),
			Removed: make(map[types.SkillLevel][]string),
		}
		m.overlays[repo] = ov
	}
	if ov.Added == nil {
		ov.Added = make(map[types.SkillLevel][]string)
	}
	if ov.Removed == nil {
		ov.Removed = make(map[types.SkillLevel][]string)
	}
	return ov
}

// AddLabel adds a user label to a repo/level mapping. Adding a label already
// in the effective set is a no-op, not an error. Adding a previously
// shadow-deleted builtin label resurrects it by clearing the shadow.
func (m *Manager) AddLabel(repo string, level types.SkillLevel, label string) error {
	if !level.Valid() {
		return fmt.Errorf("invalid skill level %q", level)
	}
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return errors.New("label is empty")
	}

	ov := m.overlayFor(repo)
	if removed := ov.Removed[level]; contains(removed, label) {
		ov.Removed[level] = without(removed, label)
		return m.save()
	}
	if contains(m.EffectiveLabels(repo, level), label) {
		return nil
	}
	ov.Added[level] = append(ov.Added[level], label)
	return m.save()
}

// RemoveLabel deletes a user-added label. Builtin labels are not deletable;
// callers get ErrBuiltinLabel and should use ShadowLabel instead.
func (m *Manager) RemoveLabel(repo string, level types.SkillLevel, label string) error {
	if !level.Valid() {
		return fmt.Errorf("invalid skill level %q", level)
	}
	label = strings.ToLower(strings.TrimSpace(label))

	if ov, ok := m.overlays[repo]; ok && contains(ov.Added[level], label) {
		ov.Added[level] = without(ov.Added[level], label)
		return m.save()
	}
	if contains(m.baseLabels(repo, level), label) {
		return ErrBuiltinLabel
	}
	return ErrNotFound
}

// ShadowLabel suppresses a builtin label for one repo/level without touching
// the seed table. Shadowing an already-shadowed label is a no-op.
func (m *Manager) ShadowLabel(repo string, level types.SkillLevel, label string) error {
	if !level.Valid() {
		return fmt.Errorf("invalid skill level %q", level)
	}
	label = strings.ToLower(strings.TrimSpace(label))
	if !contains(m.baseLabels(repo, level), label) {
		return ErrNotFound
	}

	ov := m.overlayFor(repo)
	if contains(ov.Removed[level], label) {
		return nil
	}
	ov.Removed[level] = append(ov.Removed[level], label)
	return m.save()
}

// ImportBuiltin copies a builtin mapping into a fully independent user
// mapping. The copy is detached: later changes to the builtin table (or a
// re-seed on upgrade) do not affect it.
func (m *Manager) ImportBuiltin(repo string) error {
	entry, ok := builtinMappings[repo]
	if !ok {
		return ErrUnknownRepo
	}

	added := make(map[types.SkillLevel][]string, len(entry.levels))
	for level, labels := range entry.levels {
		added[level] = append([]string(nil), labels...)
	}
	m.overlays[repo] = &overlay{
		Added:    added,
		Removed:  make(map[types.SkillLevel][]string),
		Detached: true,
		Notes:    entry.notes,
	}
	return m.save()
}

// DeleteMapping removes a repository's user mapping entirely. Repositories
// with only builtin data cannot be deleted.
func (m *Manager) DeleteMapping(repo string) error {
	if _, ok := m.overlays[repo]; ok {
		delete(m.overlays, repo)
		return m.save()
	}
	if _, ok := builtinMappings[repo]; ok {
		return ErrBuiltinMapping
	}
	return ErrNotFound
}

// HasUserMapping reports whether the repository has user customizations.
func (m *Manager) HasUserMapping(repo string) bool {
	_, ok := m.overlays[repo]
	return ok
}

// HasBuiltinMapping reports whether the repository has a builtin entry.
func HasBuiltinMapping(repo string) bool {
	_, ok := builtinMappings[repo]
	return ok
}

// ListBuiltin returns the builtin seed table as Mapping rows, sorted by
// repository then level for stable CLI output.
func ListBuiltin() []Mapping {
	repos := make([]string, 0, len(builtinMappings))
	for repo := range builtinMappings {
		repos = append(repos, repo)
	}
	sort.Strings(repos)

	var out []Mapping
	for _, repo := range repos {
		entry := builtinMappings[repo]
		for _, level := range types.SkillLevels {
			labels := entry.levels[level]
			if len(labels) == 0 {
				continue
			}
			out = append(out, Mapping{
				RepoFullName: repo,
				SkillLevel:   level,
				Labels:       append([]string(nil), labels...),
				IsBuiltin:    true,
				Notes:        entry.notes,
			})
		}
	}
	return out
}

// ListUser returns the user-customized repositories with their effective
// label sets.
func (m *Manager) ListUser() []Mapping {
	repos := make([]string, 0, len(m.overlays))
	for repo := range m.overlays {
		repos = append(repos, repo)
	}
	sort.Strings(repos)

	var out []Mapping
	for _, repo := range repos {
		for _, level := range types.SkillLevels {
			labels := m.EffectiveLabels(repo, level)
			if len(labels) == 0 {
				continue
			}
			out = append(out, Mapping{
				RepoFullName: repo,
				SkillLevel:   level,
				Labels:       labels,
				IsBuiltin:    false,
				Notes:        m.overlays[repo].Notes,
			})
		}
	}
	return out
}

// EffectiveMapping returns the full effective label table for one repository.
func (m *Manager) EffectiveMapping(repo string) map[types.SkillLevel][]string {
	out := make(map[types.SkillLevel][]string, len(types.SkillLevels))
	for _, level := range types.SkillLevels {
		out[level] = m.EffectiveLabels(repo, level)
	}
	return out
}

func contains(labels []string, label string) bool {
	for _, l := range labels {
		if strings.EqualFold(l, label) {
			return true
		}
	}
	return false
}

func without(labels []string, label string) []string {
	out := labels[:0]
	for _, l := range labels {
		if !strings.EqualFold(l, label) {
			out = append(out, l)
		}
	}
	return out
}
