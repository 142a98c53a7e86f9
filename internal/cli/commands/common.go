// Package commands provides CLI command implementations for the
// aliasvaultcore tool: thin wrappers that read a JSON request from
// stdin or a --input file, call into the pure engine packages, and
// print the JSON (or YAML) response.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/lanedirt/aliasvault-core/internal/cli/output"
)

// readInput returns the bytes to operate on: the contents of path if
// non-empty, otherwise everything read from stdin.
func readInput(path string) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // G304: path is an explicit CLI flag
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

// printResult prints resultJSON (already-marshaled JSON from an engine
// package) in the requested format, re-encoding to YAML when asked.
func printResult(resultJSON string, format string) error {
	parsedFormat, err := output.ParseFormat(format)
	if err != nil {
		return err
	}

	if parsedFormat == output.FormatJSON {
		fmt.Println(resultJSON)
		return nil
	}

	var data any
	if err := json.Unmarshal([]byte(resultJSON), &data); err != nil {
		return fmt.Errorf("failed to parse engine output: %w", err)
	}

	formatted, err := output.FormatData(data, parsedFormat)
	if err != nil {
		return err
	}
	fmt.Print(formatted)
	return nil
}

// exitWithError prints an error message to stderr and exits with status 1.
func exitWithError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
