package labelmap

import (
	"testing"

	"github.com/jonathan/issue-scout/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)
	return m
}

func TestResolve_BuiltinMapping(t *testing.T) {
	m := newTestManager(t)

	level, ok := m.Resolve("rust-lang/rust", []string{"E-easy"})
	require.True(t, ok)
	assert.Equal(t, types.SkillBeginner, level)

	level, ok = m.Resolve("rust-lang/rust", []string{"E-hard"})
	require.True(t, ok)
	assert.Equal(t, types.SkillAdvanced, level)
}

func TestResolve_DefaultFallbackForUnknownRepo(t *testing.T) {
	m := newTestManager(t)

	level, ok := m.Resolve("someone/some-repo", []string{"good first issue"})
	require.True(t, ok)
	assert.Equal(t, types.SkillBeginner, level)
}

func TestResolve_UnknownWhenNoLabelMatches(t *testing.T) {
	m := newTestManager(t)

	_, ok := m.Resolve("someone/some-repo", []string{"bug", "documentation"})
	assert.False(t, ok)
}

func TestResolve_PrecedencePicksHardestLevel(t *testing.T) {
	m := newTestManager(t)

	// "easy" is a beginner label and "hard" an advanced label in the
	// default mapping; the harder level wins.
	level, ok := m.Resolve("someone/some-repo", []string{"easy", "hard"})
	require.True(t, ok)
	assert.Equal(t, types.SkillAdvanced, level)

	level, ok = m.Resolve("someone/some-repo", []string{"easy", "medium"})
	require.True(t, ok)
	assert.Equal(t, types.SkillIntermediate, level)
}

func TestResolve_CaseInsensitive(t *testing.T) {
	m := newTestManager(t)

	level, ok := m.Resolve("neovim/neovim", []string{"Complexity:High"})
	require.True(t, ok)
	assert.Equal(t, types.SkillAdvanced, level)
}

func TestAddLabel_Idempotent(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.AddLabel("me/repo", types.SkillBeginner, "newbie-friendly"))
	require.NoError(t, m.AddLabel("me/repo", types.SkillBeginner, "newbie-friendly"))

	labels := m.EffectiveLabels("me/repo", types.SkillBeginner)
	count := 0
	for _, l := range labels {
		if l == "newbie-friendly" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestAddLabel_InvalidLevel(t *testing.T) {
	m := newTestManager(t)

	err := m.AddLabel("me/repo", "guru", "label")
	assert.Error(t, err)
}

func TestRemoveLabel_UserLabel(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.AddLabel("me/repo", types.SkillAdvanced, "gnarly"))
	require.NoError(t, m.RemoveLabel("me/repo", types.SkillAdvanced, "gnarly"))

	assert.NotContains(t, m.EffectiveLabels("me/repo", types.SkillAdvanced), "gnarly")
}

func TestRemoveLabel_BuiltinNotPermitted(t *testing.T) {
	m := newTestManager(t)

	err := m.RemoveLabel("rust-lang/rust", types.SkillBeginner, "E-easy")
	assert.ErrorIs(t, err, ErrBuiltinLabel)
}

func TestRemoveLabel_NotFound(t *testing.T) {
	m := newTestManager(t)

	err := m.RemoveLabel("me/repo", types.SkillBeginner, "no-such-label")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestShadowLabel_SuppressesBuiltin(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.ShadowLabel("rust-lang/rust", types.SkillBeginner, "E-easy"))

	assert.NotContains(t, m.EffectiveLabels("rust-lang/rust", types.SkillBeginner), "e-easy")

	// Resolution no longer sees the shadowed label.
	_, ok := m.Resolve("rust-lang/rust", []string{"E-easy"})
	assert.False(t, ok)

	// The other builtin beginner label still resolves.
	level, ok := m.Resolve("rust-lang/rust", []string{"E-mentor"})
	require.True(t, ok)
	assert.Equal(t, types.SkillBeginner, level)
}

func TestAddLabel_ResurrectsShadowedBuiltin(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.ShadowLabel("rust-lang/rust", types.SkillBeginner, "E-easy"))
	require.NoError(t, m.AddLabel("rust-lang/rust", types.SkillBeginner, "E-easy"))

	assert.Contains(t, m.EffectiveLabels("rust-lang/rust", types.SkillBeginner), "e-easy")
}

func TestImportBuiltin_CreatesIndependentCopy(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.ImportBuiltin("godotengine/godot"))
	require.True(t, m.HasUserMapping("godotengine/godot"))

	// The imported copy is editable without touching the seed table.
	require.NoError(t, m.RemoveLabel("godotengine/godot", types.SkillBeginner, "junior job"))
	assert.NotContains(t, m.EffectiveLabels("godotengine/godot", types.SkillBeginner), "junior job")
	assert.Contains(t, builtinMappings["godotengine/godot"].levels[types.SkillBeginner], "junior job")
}

func TestImportBuiltin_UnknownRepo(t *testing.T) {
	m := newTestManager(t)

	err := m.ImportBuiltin("nobody/nothing")
	assert.ErrorIs(t, err, ErrUnknownRepo)
}

func TestDeleteMapping_UserOnly(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.AddLabel("me/repo", types.SkillBeginner, "starter-task"))
	require.NoError(t, m.DeleteMapping("me/repo"))
	assert.False(t, m.HasUserMapping("me/repo"))

	err := m.DeleteMapping("rust-lang/rust")
	assert.ErrorIs(t, err, ErrBuiltinMapping)

	err = m.DeleteMapping("nobody/nothing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_PersistsAcrossReload(t *testing.T) {
	dir := t.TempDir()

	m, err := NewManager(dir)
	require.NoError(t, err)
	require.NoError(t, m.AddLabel("me/repo", types.SkillIntermediate, "tricky"))
	require.NoError(t, m.ShadowLabel("rust-lang/rust", types.SkillBeginner, "E-easy"))

	reloaded, err := NewManager(dir)
	require.NoError(t, err)

	assert.Contains(t, reloaded.EffectiveLabels("me/repo", types.SkillIntermediate), "tricky")
	assert.NotContains(t, reloaded.EffectiveLabels("rust-lang/rust", types.SkillBeginner), "e-easy")
}

func TestListBuiltin_SortedAndComplete(t *testing.T) {
	rows := ListBuiltin()
	require.NotEmpty(t, rows)

	for i := 1; i < len(rows); i++ {
		assert.LessOrEqual(t, rows[i-1].RepoFullName, rows[i].RepoFullName)
	}
	for _, row := range rows {
		assert.True(t, row.IsBuiltin)
		assert.NotEmpty(t, row.Labels)
	}
}

func TestEffectiveMapping_UnionOfBuiltinAndUser(t *testing.T) {
	m := newTestManager(t)

	require.NoError(t, m.AddLabel("rust-lang/rust", types.SkillBeginner, "mentored"))

	effective := m.EffectiveMapping("rust-lang/rust")
	assert.Contains(t, effective[types.SkillBeginner], "e-easy")
	assert.Contains(t, effective[types.SkillBeginner], "mentored")
}
