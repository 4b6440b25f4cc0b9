package makersnap

import (
	"context"
	"time"
)

// Snapshot is a persisted summary of one capture run, kept so point totals
// and model counts can be compared across time.
type Snapshot struct {
	ID            string    `json:"id"`
	SourceURL     string    `json:"sourceUrl"`
	AccountName   string    `json:"accountName"`
	Points        int       `json:"points"`
	ModelCount    int       `json:"modelCount"`
	HTMLSizeBytes int       `json:"htmlSizeBytes"`
	ContentHash   string    `json:"contentHash"`
	CapturedAt    time.Time `json:"capturedAt"`
}

// Validate returns an error if the snapshot contains invalid fields.
func (s *Snapshot) Validate() error {
	if s.SourceURL == "" {
		return Errorf(EINVALID, "snapshot source URL required")
	}
	return nil
}

// SnapshotModel is a per-model row attached to a snapshot, preserving the
// document-order position the card had on the page.
type SnapshotModel struct {
	SnapshotID string   `json:"snapshotId"`
	ModelID    string   `json:"modelId"`
	Title      string   `json:"title"`
	Position   int      `json:"position"`
	Metrics    []string `json:"metrics"`
}

// SnapshotFilter represents a filter for FindSnapshots.
type SnapshotFilter struct {
	ID        *string `json:"id"`
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// SnapshotService represents a service for managing the capture history.
type SnapshotService interface {
	// CreateSnapshot stores a snapshot with its model rows.
	CreateSnapshot(ctx context.Context, snap *Snapshot, models []*SnapshotModel) error

	// FindSnapshotByID retrieves a snapshot by ID.
	// Returns ENOTFOUND if the snapshot does not exist.
	FindSnapshotByID(ctx context.Context, id string) (*Snapshot, error)

	// FindSnapshots retrieves snapshots matching the filter, newest first.
	FindSnapshots(ctx context.Context, filter SnapshotFilter) ([]*Snapshot, error)

	// FindSnapshotModels retrieves a snapshot's model rows in position order.
	FindSnapshotModels(ctx context.Context, snapshotID string) ([]*SnapshotModel, error)

	// DeleteSnapshot permanently removes a snapshot and its model rows.
	// Returns ENOTFOUND if the snapshot does not exist.
	DeleteSnapshot(ctx context.Context, id string) error
}
