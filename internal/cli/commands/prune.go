package commands

import (
	"flag"
	"fmt"
	"os"

	"github.com/lanedirt/aliasvault-core/internal/vaultpruner"
)

// PruneCommand implements the 'prune' command for permanently deleting
// vault items that have sat in trash past their retention window.
type PruneCommand struct{}

// NewPruneCommand creates a new prune command instance.
func NewPruneCommand() *PruneCommand {
	return &PruneCommand{}
}

// Execute runs the prune command with the provided arguments.
func (c *PruneCommand) Execute(args []string) {
	fs := flag.NewFlagSet("prune", flag.ExitOnError)
	input := fs.String("input", "", "Path to a JSON file containing {tables, current_time, retention_days} (default: stdin)")
	outputFormat := fs.String("output", "json", "Output format (json or yaml)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: aliasvaultcore prune [flags]

Finds vault items trashed past their retention window and prints the
SQL statements to permanently delete them, cascading to referencing
tables.

Flags:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  aliasvaultcore prune --input vault-snapshot.json
  cat vault-snapshot.json | aliasvaultcore prune
`)
	}

	if err := fs.Parse(args); err != nil {
		exitWithError("failed to parse flags: %v", err)
	}

	inputJSON, err := readInput(*input)
	if err != nil {
		exitWithError("%v", err)
	}

	outputJSON, err := vaultpruner.PruneJSON(inputJSON)
	if err != nil {
		exitWithError("%v", err)
	}

	if err := printResult(outputJSON, *outputFormat); err != nil {
		exitWithError("%v", err)
	}
}
