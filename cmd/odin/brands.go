package main

import (
	"fmt"

	"github.com/fwojciec/odin"
)

// Run executes the brands command.
func (c *BrandsCmd) Run(deps *Dependencies) error {
	res, err := deps.Loader.Load(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", odin.ErrorMessage(err))
		return err
	}

	return deps.Renderer.RenderBrands(deps.Stdout, res.Catalog)
}
