package main

import (
	"fmt"

	"github.com/fwojciec/odin"
)

// Run executes the models command.
func (c *ModelsCmd) Run(deps *Dependencies) error {
	if c.Brand == "" && !c.All {
		fmt.Fprintln(deps.Stderr, "error: name a brand or pass --all")
		return odin.Errorf(odin.EINVALID, "brand name or --all required")
	}

	res, err := deps.Loader.Load(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", odin.ErrorMessage(err))
		return err
	}

	var brands []*odin.Brand
	switch {
	case c.All:
		if res.Catalog != nil {
			brands = res.Catalog.Brands
		}
	default:
		if b := res.Catalog.FindBrand(c.Brand); b != nil {
			brands = []*odin.Brand{b}
		}
	}

	return deps.Renderer.RenderModels(deps.Stdout, brands)
}
