package mock

import (
	"context"

	"github.com/jmoskal/makersnap"
)

var _ makersnap.SnapshotService = (*SnapshotService)(nil)

// SnapshotService is a mock implementation of makersnap.SnapshotService.
type SnapshotService struct {
	CreateSnapshotFn     func(ctx context.Context, snap *makersnap.Snapshot, models []*makersnap.SnapshotModel) error
	FindSnapshotByIDFn   func(ctx context.Context, id string) (*makersnap.Snapshot, error)
	FindSnapshotsFn      func(ctx context.Context, filter makersnap.SnapshotFilter) ([]*makersnap.Snapshot, error)
	FindSnapshotModelsFn func(ctx context.Context, snapshotID string) ([]*makersnap.SnapshotModel, error)
	DeleteSnapshotFn     func(ctx context.Context, id string) error
}

func (s *SnapshotService) CreateSnapshot(ctx context.Context, snap *makersnap.Snapshot, models []*makersnap.SnapshotModel) error {
	return s.CreateSnapshotFn(ctx, snap, models)
}

func (s *SnapshotService) FindSnapshotByID(ctx context.Context, id string) (*makersnap.Snapshot, error) {
	return s.FindSnapshotByIDFn(ctx, id)
}

func (s *SnapshotService) FindSnapshots(ctx context.Context, filter makersnap.SnapshotFilter) ([]*makersnap.Snapshot, error) {
	return s.FindSnapshotsFn(ctx, filter)
}

func (s *SnapshotService) FindSnapshotModels(ctx context.Context, snapshotID string) ([]*makersnap.SnapshotModel, error) {
	return s.FindSnapshotModelsFn(ctx, snapshotID)
}

func (s *SnapshotService) DeleteSnapshot(ctx context.Context, id string) error {
	return s.DeleteSnapshotFn(ctx, id)
}
