package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/issue-scout/internal/types"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)
	return m
}

func testIssue(number int) *types.IssueRecord {
	return &types.IssueRecord{
		RepoFullName: "acme/tool",
		Number:       number,
		Title:        "Add retry to HTTP fetcher",
		URL:          "https://github.com/acme/tool/issues/1",
	}
}

func TestRecordView_NewAndRepeat(t *testing.T) {
	m := newTestManager(t)
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return base }

	entry, err := m.RecordView(testIssue(1), types.SkillBeginner)
	require.NoError(t, err)
	assert.Equal(t, 1, entry.ViewCount)
	assert.Equal(t, StatusViewed, entry.Status)
	assert.Equal(t, base, entry.FirstSeen)

	m.now = func() time.Time { return base.Add(time.Hour) }
	entry, err = m.RecordView(testIssue(1), "")
	require.NoError(t, err)
	assert.Equal(t, 2, entry.ViewCount)
	assert.Equal(t, base, entry.FirstSeen)
	assert.Equal(t, base.Add(time.Hour), entry.LastSeen)
	// Difficulty from the first view is kept when the repeat has none.
	assert.Equal(t, types.SkillBeginner, entry.Difficulty)
}

func TestUpdateStatus(t *testing.T) {
	m := newTestManager(t)
	_, err := m.RecordView(testIssue(1), "")
	require.NoError(t, err)

	require.NoError(t, m.UpdateStatus(testIssue(1).Ref(), StatusAttempted))
	entry, err := m.Get(testIssue(1).Ref())
	require.NoError(t, err)
	assert.Equal(t, StatusAttempted, entry.Status)

	assert.Error(t, m.UpdateStatus(testIssue(1).Ref(), Status("bogus")))
	assert.ErrorIs(t, m.UpdateStatus(types.IssueRef{RepoFullName: "x/y", Number: 1}, StatusViewed), ErrNotFound)
}

func TestSeenRefs(t *testing.T) {
	m := newTestManager(t)
	_, err := m.RecordView(testIssue(1), "")
	require.NoError(t, err)
	_, err = m.RecordView(testIssue(2), "")
	require.NoError(t, err)

	seen := m.SeenRefs()
	assert.Len(t, seen, 2)
	assert.True(t, seen[testIssue(1).Ref()])
	assert.True(t, m.IsSeen(testIssue(2).Ref()))
	assert.False(t, m.IsSeen(types.IssueRef{RepoFullName: "acme/tool", Number: 3}))
}

func TestListAll_NewestSeenFirstWithLimit(t *testing.T) {
	m := newTestManager(t)
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= 3; i++ {
		i := i
		m.now = func() time.Time { return base.Add(time.Duration(i) * time.Hour) }
		_, err := m.RecordView(testIssue(i), "")
		require.NoError(t, err)
	}

	all := m.ListAll(0)
	require.Len(t, all, 3)
	assert.Equal(t, 3, all[0].IssueRef.Number)

	limited := m.ListAll(2)
	require.Len(t, limited, 2)
	assert.Equal(t, 3, limited[0].IssueRef.Number)
	assert.Equal(t, 2, limited[1].IssueRef.Number)
}

func TestListRecent(t *testing.T) {
	m := newTestManager(t)
	base := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	m.now = func() time.Time { return base.AddDate(0, 0, -10) }
	_, err := m.RecordView(testIssue(1), "")
	require.NoError(t, err)

	m.now = func() time.Time { return base.AddDate(0, 0, -2) }
	_, err = m.RecordView(testIssue(2), "")
	require.NoError(t, err)

	m.now = func() time.Time { return base }
	recent := m.ListRecent(7)
	require.Len(t, recent, 1)
	assert.Equal(t, 2, recent[0].IssueRef.Number)
}

func TestGetStats_CompletionRate(t *testing.T) {
	m := newTestManager(t)
	for i := 1; i <= 4; i++ {
		_, err := m.RecordView(testIssue(i), types.SkillBeginner)
		require.NoError(t, err)
	}
	require.NoError(t, m.UpdateStatus(testIssue(1).Ref(), StatusAttempted))
	require.NoError(t, m.UpdateStatus(testIssue(2).Ref(), StatusCompleted))
	require.NoError(t, m.UpdateStatus(testIssue(3).Ref(), StatusCompleted))

	stats := m.GetStats()
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.ByStatus[StatusAttempted])
	assert.Equal(t, 2, stats.ByStatus[StatusCompleted])
	assert.Equal(t, 1, stats.ByStatus[StatusViewed])
	assert.InDelta(t, 2.0/3.0, stats.CompletionRate, 1e-9)
	assert.Equal(t, 4, stats.ByDifficulty[types.SkillBeginner])
}

func TestGetStats_MostViewedCapped(t *testing.T) {
	m := newTestManager(t)
	for i := 1; i <= 7; i++ {
		_, err := m.RecordView(testIssue(i), "")
		require.NoError(t, err)
	}
	// Issue 7 viewed three times total.
	for range [2]struct{}{} {
		_, err := m.RecordView(testIssue(7), "")
		require.NoError(t, err)
	}

	stats := m.GetStats()
	require.Len(t, stats.MostViewed, 5)
	assert.Equal(t, 7, stats.MostViewed[0].IssueRef.Number)
	assert.Equal(t, 3, stats.MostViewed[0].ViewCount)
}

func TestClearOld_KeepsAttemptedAndCompleted(t *testing.T) {
	m := newTestManager(t)
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	m.now = func() time.Time { return base.AddDate(0, 0, -120) }
	for i := 1; i <= 3; i++ {
		_, err := m.RecordView(testIssue(i), "")
		require.NoError(t, err)
	}
	require.NoError(t, m.UpdateStatus(testIssue(2).Ref(), StatusCompleted))
	require.NoError(t, m.UpdateStatus(testIssue(3).Ref(), StatusAttempted))

	m.now = func() time.Time { return base }
	removed, err := m.ClearOld(90)
	require.NoError(t, err)

	assert.Equal(t, 1, removed)
	assert.False(t, m.IsSeen(testIssue(1).Ref()))
	assert.True(t, m.IsSeen(testIssue(2).Ref()))
	assert.True(t, m.IsSeen(testIssue(3).Ref()))
}

func TestClearAll(t *testing.T) {
	m := newTestManager(t)
	for i := 1; i <= 3; i++ {
		_, err := m.RecordView(testIssue(i), "")
		require.NoError(t, err)
	}

	removed, err := m.ClearAll()
	require.NoError(t, err)
	assert.Equal(t, 3, removed)
	assert.Equal(t, 0, m.Count())
}

func TestPersistence_AcrossReload(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	require.NoError(t, err)
	_, err = m.RecordView(testIssue(1), types.SkillIntermediate)
	require.NoError(t, err)
	require.NoError(t, m.UpdateStatus(testIssue(1).Ref(), StatusInterested))

	reloaded, err := NewManager(dir)
	require.NoError(t, err)
	entry, err := reloaded.Get(testIssue(1).Ref())
	require.NoError(t, err)
	assert.Equal(t, StatusInterested, entry.Status)
	assert.Equal(t, types.SkillIntermediate, entry.Difficulty)
}
