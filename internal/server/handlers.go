package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio-tiles/internal/content"
	"github.com/Zachkp/portfolio-tiles/internal/github"
	"github.com/Zachkp/portfolio-tiles/internal/raster"
	"github.com/Zachkp/portfolio-tiles/internal/tile"
)

// tileETag depends only on format and name since technologies never
// change the artwork.
func tileETag(format, name string) string {
	return fmt.Sprintf(`"%016x"`, xxhash.Sum64String(format+"\x00"+name))
}

// etagMatches applies the weak comparison If-None-Match calls for: any
// listed tag equal to etag once W/ is dropped, or "*".
func etagMatches(header, etag string) bool {
	for _, tag := range strings.Split(header, ",") {
		tag = strings.TrimSpace(tag)
		if tag == "*" || strings.TrimPrefix(tag, "W/") == etag {
			return true
		}
	}
	return false
}

// GET /api/tile?name=...&tech=...&format=svg|png|uri
func (s *Server) handleTile(c *gin.Context) {
	name := c.Query("name")
	techs := c.QueryArray("tech")
	format := c.DefaultQuery("format", "svg")

	switch format {
	case "svg", "png", "uri":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be svg, png or uri"})
		return
	}

	etag := tileETag(format, name)
	c.Header("ETag", etag)
	c.Header("Cache-Control", "public, max-age=86400")
	if etagMatches(c.GetHeader("If-None-Match"), etag) {
		c.Status(http.StatusNotModified)
		return
	}

	switch format {
	case "svg":
		c.Data(http.StatusOK, "image/svg+xml", tile.SVG(name, techs))
	case "png":
		var buf bytes.Buffer
		if err := raster.EncodePNG(&buf, tile.New(name)); err != nil {
			s.log.Error("rendering tile png", "name", name, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render tile"})
			return
		}
		c.Data(http.StatusOK, "image/png", buf.Bytes())
	case "uri":
		c.JSON(http.StatusOK, gin.H{
			"name":   name,
			"svgUrl": tile.Generate(name, techs),
		})
	}
}

type projectView struct {
	github.Project
	DisplayImage string          `json:"displayImage"`
	Badges       []content.Badge `json:"badges"`
}

func projectViews(ps []github.Project) []projectView {
	out := make([]projectView, 0, len(ps))
	for _, p := range ps {
		out = append(out, projectView{
			Project:      p,
			DisplayImage: p.DisplayImage(),
			Badges:       content.Badges(p.Technologies),
		})
	}
	return out
}

func millis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// GET /api/github-sync[?refresh=true]
func (s *Server) handleSync(c *gin.Context) {
	refresh := c.Query("refresh") == "true"

	res, err := s.opts.Projects.Projects(c.Request.Context(), refresh)
	if err != nil {
		s.log.Error("github sync failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to sync GitHub projects",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"data":        projectViews(res.Projects),
		"cached":      res.Cached,
		"stale":       res.Stale,
		"timestamp":   millis(res.Timestamp),
		"cacheExpire": millis(res.Expires),
	})
}

// POST /api/github-sync forces a refetch.
func (s *Server) handleForceSync(c *gin.Context) {
	res, err := s.opts.Projects.Projects(c.Request.Context(), true)
	if err != nil {
		s.log.Error("forced github sync failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to force refresh GitHub projects",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"data":      projectViews(res.Projects),
		"forced":    true,
		"stale":     res.Stale,
		"timestamp": millis(res.Timestamp),
	})
}

// GET /api/portfolio
func (s *Server) handlePortfolio(c *gin.Context) {
	p := s.opts.Profile

	names := make([]string, len(p.Skills))
	for i, sk := range p.Skills {
		names[i] = sk.Name
	}
	c.JSON(http.StatusOK, gin.H{
		"profile":     p,
		"skillGroups": p.SkillsByCategory(),
		"skillBadges": content.Badges(names),
	})
}

// GET /api/stats
func (s *Server) handleStats(c *gin.Context) {
	stats, err := s.opts.Visits.VisitorStats(c.Request.Context(), time.Now())
	if err != nil {
		s.log.Error("loading visitor stats", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load statistics"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
