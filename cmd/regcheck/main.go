package main

import (
	"fmt"
	"io"
	"os"
)

// Exit codes of the check and demo subcommands.
const (
	exitOK        = 0
	exitRules     = 1
	exitMalformed = 2
	exitUsageErr  = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return exitUsageErr
	}
	switch args[0] {
	case "check":
		return checkCmd(args[1:], stdin, stdout, stderr)
	case "demo":
		return demoCmd(stdout)
	case "schema":
		return schemaCmd(args[1:], stdout, stderr)
	case "serve":
		if err := serveCmd(args[1:], stderr); err != nil {
			fmt.Fprintf(stderr, "serve: %v\n", err)
			return 1
		}
		return exitOK
	default:
		usage(stderr)
		return exitUsageErr
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `regcheck CLI

Usage:
  regcheck check [-format json|yaml] [-strip-unknown] [-lang en|ru] [-o json|yaml|text] [file]
  regcheck demo
  regcheck schema [-o json|yaml]
  regcheck serve

Notes:
  - check reads stdin when no file is given.
  - check exits 0 when accepted, 1 on rule violations, 2 on malformed or mis-shaped input.
  - serve is configured with REGCHECK_* environment variables.`)
}
