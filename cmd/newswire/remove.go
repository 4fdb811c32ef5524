package main

import (
	"fmt"

	"github.com/fwojciec/newswire"
)

// Run executes the remove command.
func (c *RemoveCmd) Run(deps *Dependencies) error {
	if err := deps.Sources.DeleteSource(deps.Ctx, c.Name, c.PurgeArticles); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newswire.ErrorMessage(err))
		return err
	}

	if c.PurgeArticles {
		fmt.Fprintf(deps.Stdout, "Removed source %q and its articles\n", c.Name)
	} else {
		fmt.Fprintf(deps.Stdout, "Removed source %q (articles kept)\n", c.Name)
	}
	return nil
}
