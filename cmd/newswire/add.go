package main

import (
	"fmt"
	"net/url"

	"github.com/fwojciec/newswire"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	base := c.Base
	if base == "" {
		u, err := url.Parse(c.URL)
		if err != nil || !u.IsAbs() {
			fmt.Fprintf(deps.Stderr, "error: invalid listing URL %q\n", c.URL)
			return fmt.Errorf("invalid listing URL %q", c.URL)
		}
		base = u.Scheme + "://" + u.Host
	}

	source := &newswire.Source{
		Name:            c.Name,
		ListingURL:      c.URL,
		BaseURL:         base,
		ContentSelector: c.Selector,
		Active:          !c.Inactive,
	}

	if err := deps.Sources.CreateSource(deps.Ctx, source); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newswire.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added source %q (%s)\n", c.Name, c.URL)
	return nil
}
