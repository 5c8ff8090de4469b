package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/landingkit/internal/db"
)

// Store persists builds.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Record inserts a build. If b.ID is empty a UUID is generated; the
// stored ID is returned.
func (s *Store) Record(ctx context.Context, b Build) (string, error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.StartedAt.IsZero() {
		b.StartedAt = time.Now()
	}
	if b.Status == "" {
		b.Status = StatusFor(nil, len(b.Errors))
	}
	if b.Errors == nil {
		b.Errors = []string{}
	}

	errs, err := json.Marshal(b.Errors)
	if err != nil {
		return "", fmt.Errorf("marshalling errors: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO builds (
			id, started_at, duration_ms, output_dir, content_file,
			sections, assets, error_count, errors, status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID,
		b.StartedAt.UnixMilli(),
		b.Duration.Milliseconds(),
		b.OutputDir,
		b.ContentFile,
		b.Sections,
		b.Assets,
		len(b.Errors),
		string(errs),
		string(b.Status),
	)
	if err != nil {
		return "", fmt.Errorf("inserting build: %w", err)
	}
	return b.ID, nil
}

// List returns the most recent builds, newest first. A limit of zero or
// less returns every build.
func (s *Store) List(ctx context.Context, limit int) ([]Build, error) {
	query := `
		SELECT id, started_at, duration_ms, output_dir, content_file,
			   sections, assets, errors, status
		FROM builds
		ORDER BY started_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing builds: %w", err)
	}
	defer rows.Close()

	var builds []Build
	for rows.Next() {
		var (
			b          Build
			startedMs  int64
			durationMs int64
			errs       string
			status     string
		)
		if err := rows.Scan(&b.ID, &startedMs, &durationMs, &b.OutputDir, &b.ContentFile,
			&b.Sections, &b.Assets, &errs, &status); err != nil {
			return nil, fmt.Errorf("scanning build: %w", err)
		}
		b.StartedAt = time.UnixMilli(startedMs)
		b.Duration = time.Duration(durationMs) * time.Millisecond
		b.Status = Status(status)
		if err := json.Unmarshal([]byte(errs), &b.Errors); err != nil {
			return nil, fmt.Errorf("decoding errors for build %s: %w", b.ID, err)
		}
		builds = append(builds, b)
	}
	return builds, rows.Err()
}
