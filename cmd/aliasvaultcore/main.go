// Package main provides the aliasvaultcore CLI: a demonstration and
// testing harness that drives the JSON merge/prune/match/SRP operations
// from argv/stdin for manual verification and scripting. It is not one
// of the three host transports (C ABI, mobile FFI, WASM) — those are
// the real integration points; this is a way to exercise the same core
// engine without embedding it in another language runtime.
package main

import (
	"fmt"
	"os"

	"github.com/lanedirt/aliasvault-core/internal/cli/commands"
)

const version = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("aliasvaultcore version %s\n", version)
		os.Exit(0)
	}

	switch command {
	case "merge":
		commands.NewMergeCommand().Execute(args)
	case "prune":
		commands.NewPruneCommand().Execute(args)
	case "match":
		commands.NewMatchCommand().Execute(args)
	case "srp":
		commands.NewSrpCommand().Execute(args)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command '%s'\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `aliasvaultcore - local harness for the aliasvault-core vault engine

Usage:
  aliasvaultcore <command> [flags]

Available Commands:
  merge   Reconcile a local vault against a server vault (Last-Write-Wins)
  prune   Permanently delete trashed vault items past their retention window
  match   Rank stored credentials against a page's URL/title for autofill
  srp     Run a local SRP-6a registration+login handshake

Global Flags:
  --help, -h      Show help information
  --version, -v   Show version information

Examples:
  aliasvaultcore merge --input vault-diff.json
  aliasvaultcore prune --input vault-snapshot.json
  aliasvaultcore match --input page-context.json
  aliasvaultcore srp --username alice

For detailed help on a specific command, run:
  aliasvaultcore <command> --help

`)
}
