package sqlite_test

import (
	"context"
	"testing"

	"github.com/jmoskal/makersnap"
	"github.com/jmoskal/makersnap/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func testSnapshot() *makersnap.Snapshot {
	return &makersnap.Snapshot{
		SourceURL:     "https://makerworld.com/en/@darionji",
		AccountName:   "darionji",
		Points:        120,
		ModelCount:    2,
		HTMLSizeBytes: 4096,
		ContentHash:   "deadbeefdeadbeef",
	}
}

func TestSnapshotService_CreateSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("creates snapshot with generated ID and timestamp", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSnapshotService(db)
		ctx := context.Background()

		snap := testSnapshot()
		err := svc.CreateSnapshot(ctx, snap, nil)
		require.NoError(t, err)

		assert.NotEmpty(t, snap.ID, "ID should be generated")
		assert.False(t, snap.CapturedAt.IsZero(), "CapturedAt should be set")
	})

	t.Run("stores model rows in document order", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSnapshotService(db)
		ctx := context.Background()

		snap := testSnapshot()
		models := []*makersnap.SnapshotModel{
			{ModelID: "m-1", Title: "Widget", Metrics: []string{"99", "12"}},
			{ModelID: "m-2", Title: "Gadget", Metrics: []string{"0", "0", "0"}},
		}
		require.NoError(t, svc.CreateSnapshot(ctx, snap, models))

		got, err := svc.FindSnapshotModels(ctx, snap.ID)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "m-1", got[0].ModelID)
		assert.Equal(t, 0, got[0].Position)
		assert.Equal(t, []string{"99", "12"}, got[0].Metrics)
		assert.Equal(t, "m-2", got[1].ModelID)
		assert.Equal(t, 1, got[1].Position)
		assert.Equal(t, []string{"0", "0", "0"}, got[1].Metrics)
	})

	t.Run("returns error for invalid snapshot", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSnapshotService(db)

		err := svc.CreateSnapshot(context.Background(), &makersnap.Snapshot{}, nil)
		require.Error(t, err)
		assert.Equal(t, makersnap.EINVALID, makersnap.ErrorCode(err))
	})
}

func TestSnapshotService_FindSnapshotByID(t *testing.T) {
	t.Parallel()

	t.Run("finds existing snapshot", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSnapshotService(db)
		ctx := context.Background()

		snap := testSnapshot()
		require.NoError(t, svc.CreateSnapshot(ctx, snap, nil))

		got, err := svc.FindSnapshotByID(ctx, snap.ID)
		require.NoError(t, err)
		assert.Equal(t, snap.SourceURL, got.SourceURL)
		assert.Equal(t, snap.AccountName, got.AccountName)
		assert.Equal(t, snap.Points, got.Points)
		assert.Equal(t, snap.ContentHash, got.ContentHash)
	})

	t.Run("returns ENOTFOUND for missing snapshot", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSnapshotService(db)

		_, err := svc.FindSnapshotByID(context.Background(), "does-not-exist")
		require.Error(t, err)
		assert.Equal(t, makersnap.ENOTFOUND, makersnap.ErrorCode(err))
	})
}

func TestSnapshotService_FindSnapshots(t *testing.T) {
	t.Parallel()

	t.Run("filters by source URL", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSnapshotService(db)
		ctx := context.Background()

		first := testSnapshot()
		require.NoError(t, svc.CreateSnapshot(ctx, first, nil))

		other := testSnapshot()
		other.SourceURL = "https://makerworld.com/en/@someone"
		require.NoError(t, svc.CreateSnapshot(ctx, other, nil))

		url := "https://makerworld.com/en/@darionji"
		got, err := svc.FindSnapshots(ctx, makersnap.SnapshotFilter{SourceURL: &url})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, first.ID, got[0].ID)
	})

	t.Run("respects limit", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSnapshotService(db)
		ctx := context.Background()

		for range 3 {
			require.NoError(t, svc.CreateSnapshot(ctx, testSnapshot(), nil))
		}

		got, err := svc.FindSnapshots(ctx, makersnap.SnapshotFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func TestSnapshotService_DeleteSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("deletes snapshot and cascades model rows", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSnapshotService(db)
		ctx := context.Background()

		snap := testSnapshot()
		models := []*makersnap.SnapshotModel{{ModelID: "m-1", Title: "Widget"}}
		require.NoError(t, svc.CreateSnapshot(ctx, snap, models))

		require.NoError(t, svc.DeleteSnapshot(ctx, snap.ID))

		_, err := svc.FindSnapshotByID(ctx, snap.ID)
		assert.Equal(t, makersnap.ENOTFOUND, makersnap.ErrorCode(err))

		rows, err := svc.FindSnapshotModels(ctx, snap.ID)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("returns ENOTFOUND for missing snapshot", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewSnapshotService(db)

		err := svc.DeleteSnapshot(context.Background(), "does-not-exist")
		require.Error(t, err)
		assert.Equal(t, makersnap.ENOTFOUND, makersnap.ErrorCode(err))
	})
}
