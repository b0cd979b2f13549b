// Package server exposes the portfolio HTTP API: generated project tiles,
// the GitHub project sync, static profile content and visit statistics.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio-tiles/internal/content"
	"github.com/Zachkp/portfolio-tiles/internal/github"
	"github.com/Zachkp/portfolio-tiles/internal/store"
)

// ProjectSource serves the project list, cached or fresh.
type ProjectSource interface {
	Projects(ctx context.Context, refresh bool) (github.Result, error)
}

// VisitLog records and aggregates page views.
type VisitLog interface {
	RecordVisit(ctx context.Context, v store.Visit) error
	VisitorStats(ctx context.Context, now time.Time) (*store.Stats, error)
	PurgeVisitsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type Options struct {
	Projects  ProjectSource
	Visits    VisitLog
	Profile   content.Profile
	Salt      string
	StaticDir string
	Logger    *slog.Logger
}

type Server struct {
	opts   Options
	log    *slog.Logger
	engine *gin.Engine

	// tracks in-flight visit recording
	wg sync.WaitGroup
}

func New(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		opts: opts,
		log:  log,
	}

	r := gin.Default()
	r.Use(requestID())
	if opts.Visits != nil {
		r.Use(s.trackVisitors())
	}

	if opts.StaticDir != "" {
		r.Static("/static", opts.StaticDir)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/tile", s.handleTile)
	api.GET("/portfolio", s.handlePortfolio)
	if opts.Projects != nil {
		api.GET("/github-sync", s.handleSync)
		api.POST("/github-sync", s.handleForceSync)
	}
	if opts.Visits != nil {
		api.GET("/stats", s.handleStats)
	}

	s.engine = r
	return s
}

// Handler returns the HTTP handler for all routes.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Wait blocks until background visit recording has finished.
func (s *Server) Wait() {
	s.wg.Wait()
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Wait()
	return err
}

// PurgeOldVisits removes visits older than the retention period.
func (s *Server) PurgeOldVisits(ctx context.Context) {
	if s.opts.Visits == nil {
		return
	}
	n, err := s.opts.Visits.PurgeVisitsBefore(ctx, time.Now().Add(-store.RetentionPeriod))
	if err != nil {
		s.log.Error("cleaning up old visitor data", "err", err)
		return
	}
	if n > 0 {
		s.log.Info("privacy cleanup removed old visitor records", "count", n)
	}
}
