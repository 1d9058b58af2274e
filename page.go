package odin

import "context"

// PageStore keeps a local copy of the raw device table so later runs can
// work without the network.
type PageStore interface {
	// Save replaces the stored page with html. Readers never observe a
	// partially written page.
	Save(ctx context.Context, html string) error

	// Path returns the location of the stored page.
	Path() string
}
