package main

import (
	"fmt"

	"github.com/fwojciec/odin"
	"github.com/fwojciec/odin/etree"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	res, err := deps.Loader.Load(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", odin.ErrorMessage(err))
		return err
	}

	return etree.NewRenderer().WriteCatalog(deps.Stdout, res.Catalog)
}
