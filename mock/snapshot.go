package mock

import (
	"context"

	"github.com/fwojciec/odin"
)

var _ odin.SnapshotService = (*SnapshotService)(nil)

// SnapshotService is a mock implementation of odin.SnapshotService.
type SnapshotService struct {
	CreateSnapshotFn     func(ctx context.Context, snapshot *odin.Snapshot) error
	FindSnapshotByHashFn func(ctx context.Context, hash string) (*odin.Snapshot, error)
	FindSnapshotsFn      func(ctx context.Context, filter odin.SnapshotFilter) ([]*odin.SnapshotSummary, error)
	DeleteSnapshotFn     func(ctx context.Context, id string) error
}

func (s *SnapshotService) CreateSnapshot(ctx context.Context, snapshot *odin.Snapshot) error {
	return s.CreateSnapshotFn(ctx, snapshot)
}

func (s *SnapshotService) FindSnapshotByHash(ctx context.Context, hash string) (*odin.Snapshot, error) {
	return s.FindSnapshotByHashFn(ctx, hash)
}

func (s *SnapshotService) FindSnapshots(ctx context.Context, filter odin.SnapshotFilter) ([]*odin.SnapshotSummary, error) {
	return s.FindSnapshotsFn(ctx, filter)
}

func (s *SnapshotService) DeleteSnapshot(ctx context.Context, id string) error {
	return s.DeleteSnapshotFn(ctx, id)
}
