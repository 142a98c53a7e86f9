package commands

import (
	"flag"
	"fmt"
	"os"

	"github.com/lanedirt/aliasvault-core/internal/credentialmatcher"
)

// MatchCommand implements the 'match' command for ranking stored
// credentials against a page's URL/title for autofill.
type MatchCommand struct{}

// NewMatchCommand creates a new match command instance.
func NewMatchCommand() *MatchCommand {
	return &MatchCommand{}
}

// Execute runs the match command with the provided arguments.
func (c *MatchCommand) Execute(args []string) {
	fs := flag.NewFlagSet("match", flag.ExitOnError)
	input := fs.String("input", "", "Path to a JSON file containing {credentials, current_url, page_title, matching_mode} (default: stdin)")
	outputFormat := fs.String("output", "json", "Output format (json or yaml)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: aliasvaultcore match [flags]

Ranks a set of stored credentials against a page's current URL and
title for autofill, and prints the matching ids and priority tier.

Flags:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  aliasvaultcore match --input page-context.json
  cat page-context.json | aliasvaultcore match
`)
	}

	if err := fs.Parse(args); err != nil {
		exitWithError("failed to parse flags: %v", err)
	}

	inputJSON, err := readInput(*input)
	if err != nil {
		exitWithError("%v", err)
	}

	outputJSON, err := credentialmatcher.FilterCredentialsJSON(inputJSON)
	if err != nil {
		exitWithError("%v", err)
	}

	if err := printResult(outputJSON, *outputFormat); err != nil {
		exitWithError("%v", err)
	}
}
