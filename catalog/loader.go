// Package catalog loads the device catalog: it acquires the table of
// hardware from the first available source, reuses a stored snapshot when the
// page has not changed and extracts a fresh catalog otherwise.
package catalog

import (
	"context"
	"encoding/hex"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/odin"
)

// HashContent computes xxHash of content and returns hex string.
func HashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// CacheKey identifies the catalog extracted from content with links built on
// rootURL. An empty rootURL keys on the content alone.
func CacheKey(rootURL, content string) string {
	if rootURL == "" {
		return HashContent(content)
	}
	return HashContent(rootURL + "\x00" + content)
}

// Result is the outcome of a load.
type Result struct {
	// Catalog is nil when the page held no device rows.
	Catalog *odin.Catalog

	Origin string

	// ContentHash is the snapshot cache key of the page (see CacheKey).
	ContentHash string

	// Cached is set when the catalog was read from a stored snapshot.
	Cached     bool
	SnapshotID string
}

// Loader acquires the table of hardware and turns it into a catalog.
type Loader struct {
	// Sources are tried in order. A source reporting ENOTFOUND is skipped;
	// any other failure aborts the load.
	Sources []odin.Source

	Extractor odin.Extractor

	// RootURL is the origin the extractor prefixes to links. It is part of
	// the snapshot cache key.
	RootURL string

	// Snapshots, if set, caches catalogs by page content hash.
	Snapshots odin.SnapshotService

	// Pages, if set, receives a copy of every page that yields a catalog.
	Pages odin.PageStore
}

// Load runs one acquisition and extraction pass.
func (l *Loader) Load(ctx context.Context) (*Result, error) {
	html, origin, err := l.acquire(ctx)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Origin:      origin,
		ContentHash: CacheKey(l.RootURL, html),
	}

	if l.Snapshots != nil {
		snapshot, err := l.Snapshots.FindSnapshotByHash(ctx, res.ContentHash)
		if err == nil {
			res.Catalog = snapshot.Catalog
			res.Cached = true
			res.SnapshotID = snapshot.ID
		} else if odin.ErrorCode(err) != odin.ENOTFOUND {
			return nil, err
		}
	}

	if !res.Cached {
		if res.Catalog, err = l.Extractor.Extract(html); err != nil {
			return nil, err
		}

		if l.Snapshots != nil && res.Catalog != nil {
			snapshot := &odin.Snapshot{
				Origin:      origin,
				ContentHash: res.ContentHash,
				Catalog:     res.Catalog,
			}
			if err := l.Snapshots.CreateSnapshot(ctx, snapshot); err != nil {
				return nil, err
			}
			res.SnapshotID = snapshot.ID
		}
	}

	if err := l.savePage(ctx, origin, html, res.Catalog); err != nil {
		return nil, err
	}

	return res, nil
}

// savePage copies a page that yielded a catalog into the page store, unless
// the page was read from the store in the first place.
func (l *Loader) savePage(ctx context.Context, origin, html string, catalog *odin.Catalog) error {
	if l.Pages == nil || catalog == nil || origin == l.Pages.Path() {
		return nil
	}
	if err := l.Pages.Save(ctx, html); err != nil {
		return odin.Errorf(odin.EINTERNAL, "cache page at %s: %v", l.Pages.Path(), err)
	}
	return nil
}

// acquire returns the page from the first source that has it.
func (l *Loader) acquire(ctx context.Context) (html, origin string, err error) {
	var tried []string
	for _, src := range l.Sources {
		html, err := src.Load(ctx)
		if err == nil {
			return html, src.Origin(), nil
		}
		if odin.ErrorCode(err) != odin.ENOTFOUND {
			return "", "", err
		}
		tried = append(tried, src.Origin())
	}
	return "", "", odin.Errorf(odin.ENOTFOUND, "no device table found (tried: %s)", strings.Join(tried, ", "))
}
