package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/newswire"
	"gopkg.in/yaml.v3"
)

// importFile is the YAML shape accepted by the import command.
type importFile struct {
	Sources []importSource `yaml:"sources"`
}

type importSource struct {
	Name            string `yaml:"name"`
	ListingURL      string `yaml:"listing_url"`
	BaseURL         string `yaml:"base_url"`
	ContentSelector string `yaml:"content_selector"`
	Active          *bool  `yaml:"active"`
}

// Run executes the import command. Existing sources are updated in place,
// so re-importing the same file is a no-op.
func (c *ImportCmd) Run(deps *Dependencies) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	var file importFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		fmt.Fprintf(deps.Stderr, "error: invalid YAML in %s: %v\n", c.File, err)
		return err
	}

	if len(file.Sources) == 0 {
		fmt.Fprintf(deps.Stdout, "No sources in %s\n", c.File)
		return nil
	}

	var created, updated int
	for _, entry := range file.Sources {
		active := true
		if entry.Active != nil {
			active = *entry.Active
		}
		source := &newswire.Source{
			Name:            entry.Name,
			ListingURL:      entry.ListingURL,
			BaseURL:         entry.BaseURL,
			ContentSelector: entry.ContentSelector,
			Active:          active,
		}

		err := deps.Sources.CreateSource(deps.Ctx, source)
		if err == nil {
			created++
			continue
		}
		if newswire.ErrorCode(err) != newswire.ECONFLICT {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", entry.Name, newswire.ErrorMessage(err))
			return err
		}

		upd := newswire.SourceUpdate{
			ListingURL:      &source.ListingURL,
			BaseURL:         &source.BaseURL,
			ContentSelector: &source.ContentSelector,
			Active:          &source.Active,
		}
		if _, err := deps.Sources.UpdateSource(deps.Ctx, entry.Name, upd); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", entry.Name, newswire.ErrorMessage(err))
			return err
		}
		updated++
	}

	fmt.Fprintf(deps.Stdout, "Imported %d source(s): %d created, %d updated\n", created+updated, created, updated)
	return nil
}
