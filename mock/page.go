package mock

import (
	"context"

	"github.com/fwojciec/odin"
)

var _ odin.PageStore = (*PageStore)(nil)

// PageStore is a mock implementation of odin.PageStore.
type PageStore struct {
	SaveFn func(ctx context.Context, html string) error
	PathFn func() string
}

func (s *PageStore) Save(ctx context.Context, html string) error {
	return s.SaveFn(ctx, html)
}

func (s *PageStore) Path() string {
	return s.PathFn()
}
