package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/newswire"
	"github.com/fwojciec/newswire/scrape"
	"github.com/fwojciec/newswire/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	DB       *sqlite.DB
	Sources  newswire.SourceService
	Articles newswire.ArticleService
	Runner   *scrape.Runner
	Logger   *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Scrape   ScrapeCmd   `cmd:"" help:"Run the extraction pipeline over sources"`
	Add      AddCmd      `cmd:"" help:"Register a news source"`
	Sources  SourcesCmd  `cmd:"" help:"List registered sources"`
	Enable   EnableCmd   `cmd:"" help:"Enable a source"`
	Disable  DisableCmd  `cmd:"" help:"Disable a source"`
	Remove   RemoveCmd   `cmd:"" help:"Remove a source"`
	Articles ArticlesCmd `cmd:"" help:"List persisted articles for a source"`
	Import   ImportCmd   `cmd:"" help:"Bulk import sources from a YAML file"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Source      string  `short:"s" help:"Run only this source, even if inactive"`
	Render      bool    `short:"r" help:"Fetch listings with a headless browser"`
	Concurrency int     `short:"c" default:"4" help:"Concurrent source limit"`
	RPS         float64 `default:"1.0" help:"Max requests per second per domain"`
	Verbose     bool    `short:"v" help:"Log stage transitions"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	Name     string `arg:"" help:"Source name"`
	URL      string `arg:"" help:"Listing page URL"`
	Base     string `arg:"" optional:"" help:"Base URL for resolving relative links (defaults to the listing origin)"`
	Selector string `short:"S" default:"main" help:"CSS selector for the listing region"`
	Inactive bool   `help:"Register without enabling"`
}

// SourcesCmd is the "sources" subcommand.
type SourcesCmd struct{}

// EnableCmd is the "enable" subcommand.
type EnableCmd struct {
	Name string `arg:"" help:"Source name"`
}

// DisableCmd is the "disable" subcommand.
type DisableCmd struct {
	Name string `arg:"" help:"Source name"`
}

// RemoveCmd is the "remove" subcommand. Articles are kept by default so
// removing a source never erases extraction history.
type RemoveCmd struct {
	Name          string `arg:"" help:"Source name"`
	PurgeArticles bool   `help:"Also delete the source's articles"`
}

// ArticlesCmd is the "articles" subcommand.
type ArticlesCmd struct {
	Name  string `arg:"" help:"Source name"`
	Limit int    `short:"n" default:"20" help:"Maximum articles to show"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	File string `arg:"" help:"YAML file of sources"`
}
