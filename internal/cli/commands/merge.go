package commands

import (
	"flag"
	"fmt"
	"os"

	"github.com/lanedirt/aliasvault-core/internal/vaultmerge"
)

// MergeCommand implements the 'merge' command for reconciling a local
// vault against the server's copy.
type MergeCommand struct{}

// NewMergeCommand creates a new merge command instance.
func NewMergeCommand() *MergeCommand {
	return &MergeCommand{}
}

// Execute runs the merge command with the provided arguments.
func (c *MergeCommand) Execute(args []string) {
	fs := flag.NewFlagSet("merge", flag.ExitOnError)
	input := fs.String("input", "", "Path to a JSON file containing {local_tables, server_tables} (default: stdin)")
	outputFormat := fs.String("output", "json", "Output format (json or yaml)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: aliasvaultcore merge [flags]

Reconciles a locally-modified vault against the server's copy using
Last-Write-Wins, and prints the SQL statements + merge statistics to
apply locally.

Flags:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  aliasvaultcore merge --input vault-diff.json
  cat vault-diff.json | aliasvaultcore merge
`)
	}

	if err := fs.Parse(args); err != nil {
		exitWithError("failed to parse flags: %v", err)
	}

	inputJSON, err := readInput(*input)
	if err != nil {
		exitWithError("%v", err)
	}

	outputJSON, err := vaultmerge.MergeJSON(inputJSON)
	if err != nil {
		exitWithError("%v", err)
	}

	if err := printResult(outputJSON, *outputFormat); err != nil {
		exitWithError("%v", err)
	}
}
