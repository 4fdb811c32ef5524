package main

import (
	"fmt"

	"github.com/fwojciec/newswire"
)

// Run executes the enable command.
func (c *EnableCmd) Run(deps *Dependencies) error {
	return setActive(deps, c.Name, true)
}

// Run executes the disable command.
func (c *DisableCmd) Run(deps *Dependencies) error {
	return setActive(deps, c.Name, false)
}

func setActive(deps *Dependencies, name string, active bool) error {
	if _, err := deps.Sources.UpdateSource(deps.Ctx, name, newswire.SourceUpdate{Active: &active}); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newswire.ErrorMessage(err))
		return err
	}

	verb := "Enabled"
	if !active {
		verb = "Disabled"
	}
	fmt.Fprintf(deps.Stdout, "%s source %q\n", verb, name)
	return nil
}
