package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/odin"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ odin.SnapshotService = (*SnapshotService)(nil)

// SnapshotService implements odin.SnapshotService using SQLite.
type SnapshotService struct {
	db *DB
}

// NewSnapshotService creates a new SnapshotService.
func NewSnapshotService(db *DB) *SnapshotService {
	return &SnapshotService{db: db}
}

// CreateSnapshot stores the snapshot and its catalog in one transaction.
func (s *SnapshotService) CreateSnapshot(ctx context.Context, snapshot *odin.Snapshot) error {
	if err := snapshot.Validate(); err != nil {
		return err
	}

	snapshot.ID = uuid.New().String()
	snapshot.CreatedAt = time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshots (id, origin, content_hash, created_at)
		VALUES (?, ?, ?, ?)
	`, snapshot.ID, snapshot.Origin, snapshot.ContentHash, snapshot.CreatedAt.Format(timeFormat)); err != nil {
		return err
	}

	for bi, brand := range snapshot.Catalog.Brands {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO brands (snapshot_id, position, name) VALUES (?, ?, ?)
		`, snapshot.ID, bi, brand.Name); err != nil {
			return err
		}

		for mi, m := range brand.Models {
			versions, err := json.Marshal(hardwareVersions(m.HardwareVersions))
			if err != nil {
				return fmt.Errorf("failed to encode hardware versions: %w", err)
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO models (snapshot_id, brand_position, position, name, hardware_versions, firmware_label, firmware_link, reference_page)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`, snapshot.ID, bi, mi, m.Name, string(versions), m.FirmwareVersion.Label, m.FirmwareVersion.Link, m.ReferencePage); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// FindSnapshotByHash retrieves the most recent snapshot for the content hash,
// including its catalog.
func (s *SnapshotService) FindSnapshotByHash(ctx context.Context, hash string) (*odin.Snapshot, error) {
	var snapshot odin.Snapshot
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, origin, content_hash, created_at
		FROM snapshots
		WHERE content_hash = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`, hash).Scan(&snapshot.ID, &snapshot.Origin, &snapshot.ContentHash, &createdAt)

	if err == sql.ErrNoRows {
		return nil, odin.Errorf(odin.ENOTFOUND, "snapshot not found")
	}
	if err != nil {
		return nil, err
	}

	if snapshot.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}

	if snapshot.Catalog, err = s.findCatalog(ctx, snapshot.ID); err != nil {
		return nil, err
	}

	return &snapshot, nil
}

// findCatalog rebuilds the catalog of a snapshot in stored order.
func (s *SnapshotService) findCatalog(ctx context.Context, snapshotID string) (*odin.Catalog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT position, name FROM brands WHERE snapshot_id = ? ORDER BY position
	`, snapshotID)
	if err != nil {
		return nil, err
	}

	catalog := &odin.Catalog{}
	byPosition := make(map[int]*odin.Brand)
	for rows.Next() {
		var position int
		brand := &odin.Brand{Models: []*odin.Model{}}
		if err := rows.Scan(&position, &brand.Name); err != nil {
			rows.Close()
			return nil, err
		}
		byPosition[position] = brand
		catalog.Brands = append(catalog.Brands, brand)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	rows, err = s.db.QueryContext(ctx, `
		SELECT brand_position, name, hardware_versions, firmware_label, firmware_link, reference_page
		FROM models
		WHERE snapshot_id = ?
		ORDER BY brand_position, position
	`, snapshotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var brandPosition int
		var name, versions, label, link, reference string
		if err := rows.Scan(&brandPosition, &name, &versions, &label, &link, &reference); err != nil {
			return nil, err
		}

		brand, ok := byPosition[brandPosition]
		if !ok {
			return nil, odin.Errorf(odin.EINTERNAL, "model references unknown brand %d", brandPosition)
		}

		var hardware []string
		if err := json.Unmarshal([]byte(versions), &hardware); err != nil {
			return nil, fmt.Errorf("failed to decode hardware versions: %w", err)
		}

		brand.Models = append(brand.Models, odin.NewModel(name, hardware, odin.Version{Label: label, Link: link}, reference))
	}

	return catalog, rows.Err()
}

// FindSnapshots retrieves snapshot summaries matching the filter, newest first.
func (s *SnapshotService) FindSnapshots(ctx context.Context, filter odin.SnapshotFilter) ([]*odin.SnapshotSummary, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`
		SELECT s.id, s.origin, s.content_hash, s.created_at,
			(SELECT COUNT(*) FROM brands b WHERE b.snapshot_id = s.id),
			(SELECT COUNT(*) FROM models m WHERE m.snapshot_id = s.id)
		FROM snapshots s
		WHERE 1=1`)

	if filter.ID != nil {
		query.WriteString(" AND s.id = ?")
		args = append(args, *filter.ID)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND s.content_hash = ?")
		args = append(args, *filter.ContentHash)
	}

	query.WriteString(" ORDER BY s.created_at DESC, s.rowid DESC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []*odin.SnapshotSummary
	for rows.Next() {
		var summary odin.SnapshotSummary
		var createdAt string

		if err := rows.Scan(&summary.ID, &summary.Origin, &summary.ContentHash, &createdAt,
			&summary.BrandCount, &summary.ModelCount); err != nil {
			return nil, err
		}

		if summary.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
			return nil, err
		}

		summaries = append(summaries, &summary)
	}

	return summaries, rows.Err()
}

// DeleteSnapshot permanently removes a snapshot. Brands and models are
// removed by cascade.
func (s *SnapshotService) DeleteSnapshot(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM snapshots WHERE id = ?", id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return odin.Errorf(odin.ENOTFOUND, "snapshot not found")
	}

	return nil
}

// hardwareVersions guards against encoding a nil list as JSON null.
func hardwareVersions(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
