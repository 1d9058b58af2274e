package odin

import (
	"context"
	"time"
)

// Snapshot is a persisted extraction result, keyed by the hash of the HTML
// it was extracted from.
type Snapshot struct {
	ID          string    `json:"id"`
	Origin      string    `json:"origin"`
	ContentHash string    `json:"contentHash"`
	Catalog     *Catalog  `json:"catalog"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate returns an error if the snapshot contains invalid fields.
func (s *Snapshot) Validate() error {
	if s.ContentHash == "" {
		return Errorf(EINVALID, "snapshot content hash required")
	}
	if s.Catalog.BrandCount() == 0 {
		return Errorf(EINVALID, "snapshot catalog required")
	}
	return nil
}

// SnapshotService represents a service for managing catalog snapshots.
type SnapshotService interface {
	// CreateSnapshot persists a snapshot with its full catalog.
	CreateSnapshot(ctx context.Context, snapshot *Snapshot) error

	// FindSnapshotByHash retrieves the most recent snapshot for a content hash.
	// Returns ENOTFOUND if no snapshot matches.
	FindSnapshotByHash(ctx context.Context, hash string) (*Snapshot, error)

	// FindSnapshots retrieves snapshots matching the filter, newest first.
	// The catalog of listed snapshots is not loaded.
	FindSnapshots(ctx context.Context, filter SnapshotFilter) ([]*SnapshotSummary, error)

	// DeleteSnapshot permanently removes a snapshot and its catalog.
	// Returns ENOTFOUND if snapshot does not exist.
	DeleteSnapshot(ctx context.Context, id string) error
}

// SnapshotSummary describes a snapshot without its catalog.
type SnapshotSummary struct {
	ID          string    `json:"id"`
	Origin      string    `json:"origin"`
	ContentHash string    `json:"contentHash"`
	BrandCount  int       `json:"brandCount"`
	ModelCount  int       `json:"modelCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SnapshotFilter represents a filter for FindSnapshots.
type SnapshotFilter struct {
	ID          *string `json:"id"`
	ContentHash *string `json:"contentHash"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
