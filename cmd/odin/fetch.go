package main

import (
	"fmt"

	"github.com/fwojciec/odin"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	res, err := deps.Loader.Load(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", odin.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Fetched %s\n", res.Origin)
	if deps.PagePath != "" && res.Catalog != nil {
		fmt.Fprintf(deps.Stdout, "Saved page to %s\n", deps.PagePath)
	}
	fmt.Fprintf(deps.Stdout, "%s (%d model(s))\n", odin.FormatBrandCount(res.Catalog.BrandCount()), res.Catalog.ModelCount())

	switch {
	case res.Cached:
		fmt.Fprintf(deps.Stdout, "Page unchanged since snapshot %s\n", res.SnapshotID)
	case res.SnapshotID != "":
		fmt.Fprintf(deps.Stdout, "Stored snapshot %s\n", res.SnapshotID)
	}

	return nil
}
