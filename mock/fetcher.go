package mock

import (
	"context"

	"github.com/fwojciec/odin"
)

var _ odin.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of odin.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ odin.Source = (*Source)(nil)

// Source is a mock implementation of odin.Source.
type Source struct {
	LoadFn   func(ctx context.Context) (string, error)
	OriginFn func() string
}

func (s *Source) Load(ctx context.Context) (string, error) {
	return s.LoadFn(ctx)
}

func (s *Source) Origin() string {
	return s.OriginFn()
}
