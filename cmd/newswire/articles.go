package main

import (
	"fmt"

	"github.com/fwojciec/newswire"
)

// Run executes the articles command.
func (c *ArticlesCmd) Run(deps *Dependencies) error {
	// Verify the source exists so a typo reads as "not found" rather
	// than an empty listing.
	if _, err := deps.Sources.FindSourceByName(deps.Ctx, c.Name); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newswire.ErrorMessage(err))
		return err
	}

	articles, err := deps.Articles.FindArticles(deps.Ctx, newswire.ArticleFilter{
		SourceName: &c.Name,
		Limit:      c.Limit,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newswire.ErrorMessage(err))
		return err
	}

	if len(articles) == 0 {
		fmt.Fprintf(deps.Stdout, "No articles for %q yet. Run 'newswire scrape --source %s'.\n", c.Name, c.Name)
		return nil
	}

	for _, a := range articles {
		published := "          "
		if a.PublishedAt != nil {
			published = a.PublishedAt.Format("2006-01-02")
		}
		fmt.Fprintf(deps.Stdout, "%s  %s\n    %s\n", published, a.Title, a.URL)
	}

	return nil
}
