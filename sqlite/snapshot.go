package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoskal/makersnap"
)

// Compile-time interface verification.
var _ makersnap.SnapshotService = (*SnapshotService)(nil)

// SnapshotService implements makersnap.SnapshotService using SQLite.
type SnapshotService struct {
	db *DB
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(db *DB) *SnapshotService {
	return &SnapshotService{db: db}
}

// CreateSnapshot stores a snapshot with its model rows in one transaction.
func (s *SnapshotService) CreateSnapshot(ctx context.Context, snap *makersnap.Snapshot, models []*makersnap.SnapshotModel) error {
	if err := snap.Validate(); err != nil {
		return err
	}

	snap.ID = uuid.New().String()
	snap.CapturedAt = time.Now().UTC()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshots (id, source_url, account_name, points, model_count, html_size_bytes, content_hash, captured_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, snap.ID, snap.SourceURL, snap.AccountName, snap.Points, snap.ModelCount,
		snap.HTMLSizeBytes, snap.ContentHash, snap.CapturedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	for i, m := range models {
		m.SnapshotID = snap.ID
		m.Position = i

		metrics, err := json.Marshal(m.Metrics)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO snapshot_models (snapshot_id, model_id, title, position, metrics)
			VALUES (?, ?, ?, ?, ?)
		`, m.SnapshotID, m.ModelID, m.Title, m.Position, string(metrics))
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindSnapshotByID retrieves a snapshot by ID.
func (s *SnapshotService) FindSnapshotByID(ctx context.Context, id string) (*makersnap.Snapshot, error) {
	var snap makersnap.Snapshot
	var capturedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, source_url, account_name, points, model_count, html_size_bytes, content_hash, captured_at
		FROM snapshots
		WHERE id = ?
	`, id).Scan(&snap.ID, &snap.SourceURL, &snap.AccountName, &snap.Points,
		&snap.ModelCount, &snap.HTMLSizeBytes, &snap.ContentHash, &capturedAt)

	if err == sql.ErrNoRows {
		return nil, makersnap.Errorf(makersnap.ENOTFOUND, "snapshot not found")
	}
	if err != nil {
		return nil, err
	}

	if snap.CapturedAt, err = time.Parse(time.RFC3339, capturedAt); err != nil {
		return nil, fmt.Errorf("failed to parse captured_at: %w", err)
	}

	return &snap, nil
}

// FindSnapshots retrieves snapshots matching the filter, newest first.
func (s *SnapshotService) FindSnapshots(ctx context.Context, filter makersnap.SnapshotFilter) ([]*makersnap.Snapshot, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source_url, account_name, points, model_count, html_size_bytes, content_hash, captured_at FROM snapshots WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY captured_at DESC, id")

	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []*makersnap.Snapshot
	for rows.Next() {
		var snap makersnap.Snapshot
		var capturedAt string

		if err := rows.Scan(&snap.ID, &snap.SourceURL, &snap.AccountName, &snap.Points,
			&snap.ModelCount, &snap.HTMLSizeBytes, &snap.ContentHash, &capturedAt); err != nil {
			return nil, err
		}
		if snap.CapturedAt, err = time.Parse(time.RFC3339, capturedAt); err != nil {
			return nil, fmt.Errorf("failed to parse captured_at: %w", err)
		}

		snapshots = append(snapshots, &snap)
	}

	return snapshots, rows.Err()
}

// FindSnapshotModels retrieves a snapshot's model rows in position order.
func (s *SnapshotService) FindSnapshotModels(ctx context.Context, snapshotID string) ([]*makersnap.SnapshotModel, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT snapshot_id, model_id, title, position, metrics
		FROM snapshot_models
		WHERE snapshot_id = ?
		ORDER BY position ASC
	`, snapshotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var models []*makersnap.SnapshotModel
	for rows.Next() {
		var m makersnap.SnapshotModel
		var metrics string

		if err := rows.Scan(&m.SnapshotID, &m.ModelID, &m.Title, &m.Position, &metrics); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(metrics), &m.Metrics); err != nil {
			return nil, fmt.Errorf("failed to parse metrics: %w", err)
		}

		models = append(models, &m)
	}

	return models, rows.Err()
}

// DeleteSnapshot permanently removes a snapshot; its model rows cascade.
func (s *SnapshotService) DeleteSnapshot(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return makersnap.Errorf(makersnap.ENOTFOUND, "snapshot not found")
	}

	return nil
}
