package main

import (
	"fmt"

	"github.com/fwojciec/newswire"
)

// Run executes the sources command.
func (c *SourcesCmd) Run(deps *Dependencies) error {
	sources, err := deps.Sources.FindSources(deps.Ctx, newswire.SourceFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newswire.ErrorMessage(err))
		return err
	}

	if len(sources) == 0 {
		fmt.Fprintln(deps.Stdout, "No sources found. Use 'newswire add' to register one.")
		return nil
	}

	for _, s := range sources {
		state := "active"
		if !s.Active {
			state = "disabled"
		}
		fmt.Fprintf(deps.Stdout, "%-20s %-8s %s\n", s.Name, state, s.ListingURL)
	}

	return nil
}
