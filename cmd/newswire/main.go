package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/newswire"
	"github.com/fwojciec/newswire/gemini"
	"github.com/fwojciec/newswire/goquery"
	newshttp "github.com/fwojciec/newswire/http"
	"github.com/fwojciec/newswire/rod"
	"github.com/fwojciec/newswire/scrape"
	newsslog "github.com/fwojciec/newswire/slog"
	"github.com/fwojciec/newswire/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: slog.New(slog.NewTextHandler(stderr, nil)),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("newswire"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'newswire --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set NEWSWIRE_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	deps.DB = m.DB
	deps.Sources = sqlite.NewSourceService(m.DB)
	deps.Articles = sqlite.NewArticleService(m.DB)

	// The scrape command needs the full pipeline: fetcher, isolator,
	// extractor and rate limiter.
	if cmd == "scrape" {
		runner, cleanup, err := m.buildRunner(ctx, cli.Scrape, deps, stderr)
		if err != nil {
			return err
		}
		defer cleanup()
		deps.Runner = runner
	}

	return kongCtx.Run(deps)
}

// buildRunner wires the scrape pipeline from CLI flags and the environment.
func (m *Main) buildRunner(ctx context.Context, cmd ScrapeCmd, deps *Dependencies, stderr io.Writer) (*scrape.Runner, func(), error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	var fetcher newswire.Fetcher
	if cmd.Render {
		f, err := rod.NewFetcher()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render")
			return nil, nil, fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = f
	} else {
		fetcher = newshttp.NewFetcher()
	}

	runner := &scrape.Runner{
		Sources:     deps.Sources,
		Fetcher:     newsslog.NewLoggingFetcher(fetcher, deps.Logger),
		Isolator:    goquery.NewIsolator(),
		Extractor:   newsslog.NewLoggingExtractor(gemini.NewExtractor(client, gemini.DefaultModel), deps.Logger),
		Articles:    deps.Articles,
		Limiter:     scrape.NewDomainLimiter(cmd.RPS),
		Concurrency: cmd.Concurrency,
	}

	cleanup := func() { _ = fetcher.Close() }
	return runner, cleanup, nil
}

func defaultDBPath() string {
	if path := os.Getenv("NEWSWIRE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "newswire.db"
	}
	dir := filepath.Join(home, ".newswire")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "newswire.db")
}
