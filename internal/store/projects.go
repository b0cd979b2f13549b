package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/pingcap/errors"

	"github.com/Zachkp/portfolio-tiles/internal/github"
	"github.com/Zachkp/portfolio-tiles/internal/tile"
)

const projectsSyncKey = "github-projects"

// SaveProjects replaces the cached project set and records when it was
// synced.
func (s *Store) SaveProjects(ctx context.Context, projects []github.Project, syncedAt time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Trace(err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM projects`); err != nil {
		return errors.Annotate(err, "clear projects")
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO projects (id, position, name, description, url, image_url, technologies, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Trace(err)
	}
	defer stmt.Close()

	for i, p := range projects {
		techs, err := json.Marshal(orEmpty(p.Technologies))
		if err != nil {
			return errors.Trace(err)
		}
		_, err = stmt.ExecContext(ctx, p.ID, i, p.Name, p.Description, p.URL, p.ImageURL,
			string(techs), formatTime(p.CreatedAt), formatTime(p.UpdatedAt))
		if err != nil {
			return errors.Annotatef(err, "insert project %s", p.ID)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sync_state (name, synced_at) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET synced_at = excluded.synced_at`,
		projectsSyncKey, syncedAt.UnixNano())
	if err != nil {
		return errors.Annotate(err, "record sync time")
	}
	return errors.Trace(tx.Commit())
}

// LoadProjects returns the cached projects in their synced order and the
// sync time. The time is zero when no sync has been recorded.
func (s *Store) LoadProjects(ctx context.Context) ([]github.Project, time.Time, error) {
	var syncedAt time.Time
	var nanos int64
	err := s.db.QueryRowContext(ctx, `SELECT synced_at FROM sync_state WHERE name = ?`, projectsSyncKey).Scan(&nanos)
	switch {
	case err == sql.ErrNoRows:
		return nil, time.Time{}, nil
	case err != nil:
		return nil, time.Time{}, errors.Annotate(err, "read sync time")
	}
	syncedAt = time.Unix(0, nanos).UTC()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(description, ''), COALESCE(url, ''), COALESCE(image_url, ''),
			technologies, COALESCE(created_at, ''), COALESCE(updated_at, '')
		FROM projects
		ORDER BY position`)
	if err != nil {
		return nil, time.Time{}, errors.Annotate(err, "query projects")
	}
	defer rows.Close()

	projects := []github.Project{}
	for rows.Next() {
		var (
			p                    github.Project
			techs                string
			createdAt, updatedAt string
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.URL, &p.ImageURL, &techs, &createdAt, &updatedAt); err != nil {
			return nil, time.Time{}, errors.Trace(err)
		}
		if err := json.Unmarshal([]byte(techs), &p.Technologies); err != nil {
			return nil, time.Time{}, errors.Annotatef(err, "technologies of %s", p.ID)
		}
		p.CreatedAt = parseTime(createdAt)
		p.UpdatedAt = parseTime(updatedAt)
		p.SVGURL = tile.Generate(p.Name, p.Technologies)
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, errors.Trace(err)
	}
	return projects, syncedAt, nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
