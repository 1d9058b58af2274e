package mock

import "github.com/fwojciec/odin"

var _ odin.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of odin.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*odin.Catalog, error)
}

func (e *Extractor) Extract(html string) (*odin.Catalog, error) {
	return e.ExtractFn(html)
}
