package github

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	projects []Project
	err      error
	calls    int
}

func (f *fakeFetcher) FetchProjects(context.Context) ([]Project, error) {
	f.calls++
	return f.projects, f.err
}

type memCache struct {
	projects []Project
	syncedAt time.Time
}

func (m *memCache) LoadProjects(context.Context) ([]Project, time.Time, error) {
	return m.projects, m.syncedAt, nil
}

func (m *memCache) SaveProjects(_ context.Context, p []Project, at time.Time) error {
	m.projects, m.syncedAt = p, at
	return nil
}

func newTestSyncer(f Fetcher, c Cache, now time.Time) *Syncer {
	s := NewSyncer(f, c, time.Hour, nil)
	s.now = func() time.Time { return now }
	return s
}

func TestSyncerFetchesWhenEmpty(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	f := &fakeFetcher{projects: []Project{{Name: "a"}}}
	c := &memCache{}

	res, err := newTestSyncer(f, c, now).Projects(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, res.Cached)
	assert.Equal(t, now, res.Timestamp)
	assert.Equal(t, now.Add(time.Hour), res.Expires)
	assert.Len(t, res.Projects, 1)
	assert.Equal(t, now, c.syncedAt)
	assert.Equal(t, 1, f.calls)
}

func TestSyncerServesFreshCache(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	f := &fakeFetcher{}
	c := &memCache{projects: []Project{{Name: "cached"}}, syncedAt: now.Add(-30 * time.Minute)}

	res, err := newTestSyncer(f, c, now).Projects(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, res.Cached)
	assert.Equal(t, "cached", res.Projects[0].Name)
	assert.Zero(t, f.calls)
}

func TestSyncerRefetchesExpiredOrForced(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	f := &fakeFetcher{projects: []Project{{Name: "new"}}}
	c := &memCache{projects: []Project{{Name: "old"}}, syncedAt: now.Add(-2 * time.Hour)}
	res, err := newTestSyncer(f, c, now).Projects(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, res.Cached)
	assert.Equal(t, "new", res.Projects[0].Name)

	c = &memCache{projects: []Project{{Name: "old"}}, syncedAt: now.Add(-time.Minute)}
	res, err = newTestSyncer(f, c, now).Projects(context.Background(), true)
	require.NoError(t, err)
	assert.False(t, res.Cached)
	assert.Equal(t, "new", res.Projects[0].Name)
	assert.Equal(t, 2, f.calls)
}

func TestSyncerFallsBackToStale(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	f := &fakeFetcher{err: errors.New("network down")}
	c := &memCache{projects: []Project{{Name: "old"}}, syncedAt: now.Add(-3 * time.Hour)}

	res, err := newTestSyncer(f, c, now).Projects(context.Background(), false)
	require.NoError(t, err)
	assert.True(t, res.Stale)
	assert.Equal(t, "old", res.Projects[0].Name)
}

func TestSyncerErrorWithoutCache(t *testing.T) {
	f := &fakeFetcher{err: errors.New("network down")}
	_, err := newTestSyncer(f, &memCache{}, time.Now()).Projects(context.Background(), false)
	assert.Error(t, err)
}

func TestSyncerStoresEmptyListAsSynced(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	c := &memCache{}
	res, err := newTestSyncer(&fakeFetcher{}, c, now).Projects(context.Background(), false)
	require.NoError(t, err)
	assert.NotNil(t, res.Projects)
	assert.Empty(t, res.Projects)
	assert.Equal(t, now, c.syncedAt)
}
