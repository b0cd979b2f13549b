package github

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pingcap/errors"
)

// Fetcher loads the current project list from GitHub.
type Fetcher interface {
	FetchProjects(ctx context.Context) ([]Project, error)
}

// Cache persists the last synced project list.
type Cache interface {
	LoadProjects(ctx context.Context) ([]Project, time.Time, error)
	SaveProjects(ctx context.Context, projects []Project, syncedAt time.Time) error
}

// Result is a project list together with its freshness.
type Result struct {
	Projects  []Project
	Cached    bool
	Stale     bool
	Timestamp time.Time
	Expires   time.Time
}

// Syncer serves projects from the cache while it is younger than TTL and
// refetches otherwise.
type Syncer struct {
	fetcher Fetcher
	cache   Cache
	ttl     time.Duration
	log     *slog.Logger

	// now is replaced in tests
	now func() time.Time

	mu sync.Mutex
}

func NewSyncer(f Fetcher, c Cache, ttl time.Duration, log *slog.Logger) *Syncer {
	if log == nil {
		log = slog.Default()
	}
	return &Syncer{
		fetcher: f,
		cache:   c,
		ttl:     ttl,
		log:     log.With("component", "github-sync"),
		now:     time.Now,
	}
}

// TTL reports how long a synced list is served without refetching.
func (s *Syncer) TTL() time.Duration { return s.ttl }

// Projects returns the cached list when fresh, unless refresh is set. When a
// fetch fails and an older list exists, the older list is returned marked
// stale.
func (s *Syncer) Projects(ctx context.Context, refresh bool) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	cached, syncedAt, err := s.cache.LoadProjects(ctx)
	if err != nil {
		return Result{}, errors.Annotate(err, "load cached projects")
	}
	haveCache := !syncedAt.IsZero()

	if !refresh && haveCache && now.Sub(syncedAt) < s.ttl {
		s.log.Debug("returning cached projects", "count", len(cached))
		return Result{
			Projects:  cached,
			Cached:    true,
			Timestamp: syncedAt,
			Expires:   syncedAt.Add(s.ttl),
		}, nil
	}

	s.log.Info("fetching fresh projects from github", "forced", refresh)
	projects, err := s.fetcher.FetchProjects(ctx)
	if err != nil {
		if haveCache {
			s.log.Error("github fetch failed, serving stale projects", "err", err)
			return Result{
				Projects:  cached,
				Cached:    true,
				Stale:     true,
				Timestamp: syncedAt,
				Expires:   syncedAt.Add(s.ttl),
			}, nil
		}
		return Result{}, errors.Trace(err)
	}
	if projects == nil {
		projects = []Project{}
	}

	if err := s.cache.SaveProjects(ctx, projects, now); err != nil {
		return Result{}, errors.Annotate(err, "save projects")
	}
	return Result{
		Projects:  projects,
		Timestamp: now,
		Expires:   now.Add(s.ttl),
	}, nil
}
