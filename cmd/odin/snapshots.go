package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/odin"
)

// Run executes the snapshots command.
func (c *SnapshotsCmd) Run(deps *Dependencies) error {
	summaries, err := deps.Snapshots.FindSnapshots(deps.Ctx, odin.SnapshotFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", odin.ErrorMessage(err))
		return err
	}

	if len(summaries) == 0 {
		fmt.Fprintln(deps.Stdout, "No snapshots found. Use 'odin fetch' to create one.")
		return nil
	}

	for _, s := range summaries {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d brand(s)  %d model(s)  %s\n",
			s.ID, s.CreatedAt.Local().Format(time.DateTime), s.BrandCount, s.ModelCount, s.Origin)
	}

	return nil
}
