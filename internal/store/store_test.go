package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio-tiles/internal/github"
	"github.com/Zachkp/portfolio-tiles/internal/tile"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "again.db")
	ctx := context.Background()

	s, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	var version int
	require.NoError(t, s.db.QueryRow(`PRAGMA user_version`).Scan(&version))
	assert.Equal(t, len(migrations), version)
}

func TestLoadProjectsNeverSynced(t *testing.T) {
	s := openTestStore(t)

	projects, at, err := s.LoadProjects(context.Background())
	require.NoError(t, err)
	assert.Empty(t, projects)
	assert.True(t, at.IsZero())
}

func TestSaveAndLoadProjects(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	synced := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	in := []github.Project{
		{ID: "mailfuzz", Name: "mailfuzz", Description: "email", URL: "https://github.com/Zachkp/mailfuzz",
			Technologies: []string{"Go"}, CreatedAt: created, UpdatedAt: created},
		{ID: "zach-dev", Name: "zach-dev", ImageURL: "https://img.example/z.png"},
	}
	require.NoError(t, s.SaveProjects(ctx, in, synced))

	out, at, err := s.LoadProjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, synced, at)
	require.Len(t, out, 2)

	assert.Equal(t, "mailfuzz", out[0].Name)
	assert.Equal(t, []string{"Go"}, out[0].Technologies)
	assert.True(t, created.Equal(out[0].CreatedAt))
	assert.Equal(t, tile.Generate("mailfuzz", nil), out[0].SVGURL)

	assert.Equal(t, "zach-dev", out[1].Name)
	assert.Equal(t, []string{}, out[1].Technologies)
	assert.Equal(t, "https://img.example/z.png", out[1].ImageURL)
	assert.True(t, out[1].CreatedAt.IsZero())

	// a new sync replaces the set
	require.NoError(t, s.SaveProjects(ctx, in[1:], synced.Add(time.Hour)))
	out, at, err = s.LoadProjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, synced.Add(time.Hour), at)
	require.Len(t, out, 1)
	assert.Equal(t, "zach-dev", out[0].ID)
}

func TestStoreSatisfiesSyncCache(t *testing.T) {
	var _ github.Cache = (*Store)(nil)
}

func TestHashIP(t *testing.T) {
	a := HashIP("salt", "203.0.113.7")
	assert.Len(t, a, 16)
	assert.Equal(t, a, HashIP("salt", "203.0.113.7"))
	assert.NotEqual(t, a, HashIP("other", "203.0.113.7"))
	assert.NotEqual(t, a, HashIP("salt", "203.0.113.8"))
	assert.NotContains(t, a, "203")
}

func TestVisitorStats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 10, 14, 15, 0, 0, 0, time.UTC)

	visits := []Visit{
		{HashedIP: "aaaa", Path: "/", Timestamp: now.Add(-time.Hour)},
		{HashedIP: "aaaa", Path: "/api/tile", Timestamp: now.Add(-2 * time.Hour)},
		{HashedIP: "bbbb", Path: "/", Timestamp: now.Add(-3 * 24 * time.Hour)},
		{HashedIP: "cccc", Path: "/", Timestamp: now.Add(-30 * 24 * time.Hour)},
	}
	for _, v := range visits {
		require.NoError(t, s.RecordVisit(ctx, v))
	}

	stats, err := s.VisitorStats(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 4, stats.TotalVisitors)
	assert.EqualValues(t, 3, stats.UniqueVisitors)
	assert.EqualValues(t, 2, stats.VisitorsToday)
	assert.EqualValues(t, 3, stats.VisitorsThisWeek)
	require.Len(t, stats.TopPaths, 2)
	assert.Equal(t, PathCount{Path: "/", Views: 3}, stats.TopPaths[0])
	require.Len(t, stats.RecentVisitors, 4)
	assert.Equal(t, "/", stats.RecentVisitors[0].Path)
	assert.Equal(t, now.Add(-time.Hour), stats.RecentVisitors[0].Timestamp)
}

func TestPurgeVisitsBefore(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, 10, 14, 15, 0, 0, 0, time.UTC)

	require.NoError(t, s.RecordVisit(ctx, Visit{HashedIP: "old", Path: "/", Timestamp: now.Add(-2 * RetentionPeriod)}))
	require.NoError(t, s.RecordVisit(ctx, Visit{HashedIP: "new", Path: "/", Timestamp: now}))

	n, err := s.PurgeVisitsBefore(ctx, now.Add(-RetentionPeriod))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	stats, err := s.VisitorStats(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.TotalVisitors)
}
