package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/webtab"
	"github.com/fwojciec/webtab/firecrawl"
	webtabslog "github.com/fwojciec/webtab/slog"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Extractor overrides the Firecrawl client. Set for end-to-end testing.
	Extractor webtab.Extractor
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	// A .env file is an optional fallback source for FIRECRAWL_API_KEY.
	_ = godotenv.Load()

	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("webtab"),
		kong.Description("Turn any website into a table with a prompt."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'webtab --help' to see available commands")
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

	deps.Extractor = m.Extractor
	if deps.Extractor == nil {
		if cli.APIKey == "" {
			fmt.Fprintln(stderr, "Hint: set FIRECRAWL_API_KEY (a .env file works too) or pass --api-key. Get a key at https://firecrawl.dev")
			return webtab.Errorf(webtab.EUNAUTHORIZED, "Firecrawl API key required")
		}

		client, err := firecrawl.NewClient(cli.APIKey)
		if err != nil {
			return err
		}

		level := slog.LevelWarn
		if cli.Verbose {
			level = slog.LevelInfo
		}
		logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
		deps.Extractor = webtabslog.NewLoggingExtractor(client, logger)
	}

	return kongCtx.Run(deps)
}
