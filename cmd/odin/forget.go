package main

import (
	"fmt"

	"github.com/fwojciec/odin"
)

// Run executes the forget command.
func (c *ForgetCmd) Run(deps *Dependencies) error {
	if err := deps.Snapshots.DeleteSnapshot(deps.Ctx, c.ID); err != nil {
		if odin.ErrorCode(err) == odin.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: snapshot %q not found. Use 'odin snapshots' to see stored snapshots.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", odin.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted snapshot %s\n", c.ID)
	return nil
}
