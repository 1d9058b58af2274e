package http

import (
	"context"
	"time"

	"github.com/fwojciec/odin"
)

// Ensure Source implements odin.Source at compile time.
var _ odin.Source = (*Source)(nil)

// Source loads the table of hardware over HTTP.
type Source struct {
	fetcher odin.Fetcher
	url     string

	// Delays between attempts. Defaults to DefaultRetryDelays().
	Delays []time.Duration

	// Logger is called before each retry, if set.
	Logger LogFunc
}

// NewSource returns a Source that fetches url with fetcher.
func NewSource(fetcher odin.Fetcher, url string) *Source {
	return &Source{
		fetcher: fetcher,
		url:     url,
		Delays:  DefaultRetryDelays(),
	}
}

// Load fetches the page, retrying transient failures.
func (s *Source) Load(ctx context.Context) (string, error) {
	return FetchWithRetry(ctx, s.fetcher, s.url, s.Delays, s.Logger)
}

// Origin returns the URL of the page.
func (s *Source) Origin() string {
	return s.url
}
