package odin

import "context"

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch requests the URL and returns the response body.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// Source produces the raw HTML of the device table. Implementations hide
// whether the text comes from a local file or the network.
//
// A source that has nothing to offer (e.g. a cache file that was never
// written) returns ENOTFOUND. Any other failure is an acquisition failure and
// is reported as EUNAVAILABLE.
type Source interface {
	// Load returns the HTML text.
	Load(ctx context.Context) (html string, err error)

	// Origin describes where the HTML comes from (a path or a URL).
	Origin() string
}
