package app

import (
	"fmt"
	"os"
	"strings"
)

// Run executes the CLI command and returns a process exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 2
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "help", "--help", "-h":
		printUsage()
		return 0
	case "serve":
		return runServe(args[1:])
	case "detect":
		return runDetect(args[1:])
	case "audit":
		return runAudit(args[1:])
	case "hash-key":
		return runHashKey(args[1:])
	case "health":
		return runHealth(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		return 2
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "langid CLI")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  langid <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  serve     Load corpora and start the Echo API server")
	fmt.Fprintln(os.Stderr, "  detect    Detect the language of a text against local corpora")
	fmt.Fprintln(os.Stderr, "  audit     Cross-check corpus files against lingua's language guess")
	fmt.Fprintln(os.Stderr, "  hash-key  Print a bcrypt hash usable in API_KEYS")
	fmt.Fprintln(os.Stderr, "  health    Verify corpus directory and ledger database")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Use \"langid <command> -h\" for command-specific flags.")
}
