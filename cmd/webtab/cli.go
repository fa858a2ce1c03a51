package main

import (
	"context"
	"io"

	"github.com/fwojciec/webtab"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Extractor webtab.Extractor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	APIKey  string `help:"Firecrawl API key" env:"FIRECRAWL_API_KEY" placeholder:"fc-..."`
	Verbose bool   `short:"v" help:"Enable request logging"`

	Extract ExtractCmd `cmd:"" help:"Extract data from a website and print it as a table"`
	Chat    ChatCmd    `cmd:"" help:"Start an interactive extraction chat for a website"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL    string   `arg:"" help:"Website URL"`
	Prompt string   `arg:"" help:"What to extract, in natural language"`
	Field  []string `short:"F" name:"field" help:"Schema field as name:type (str, bool, int, float); repeatable, max 5"`
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct {
	URL   string   `arg:"" help:"Website URL"`
	Field []string `short:"F" name:"field" help:"Schema field as name:type (str, bool, int, float); repeatable, max 5"`
}
