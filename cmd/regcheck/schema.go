package main

import (
	"flag"
	"fmt"
	"io"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	regcheck "github.com/reoring/regcheck"
)

// schemaCmd prints the JSON Schema of the registration payload.
func schemaCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("schema", flag.ContinueOnError)
	fs.SetOutput(stderr)
	out := fs.String("o", "json", "output: json or yaml")
	if err := fs.Parse(args); err != nil {
		return exitUsageErr
	}

	var (
		b   []byte
		err error
	)
	switch *out {
	case "json":
		b, err = j.MarshalIndent(regcheck.JSONSchema(), "", "  ")
		b = append(b, '\n')
	case "yaml":
		b, err = yaml.Marshal(regcheck.JSONSchema())
	default:
		fmt.Fprintf(stderr, "schema: unknown output %q\n", *out)
		return exitUsageErr
	}
	if err != nil {
		fmt.Fprintf(stderr, "schema: %v\n", err)
		return exitUsageErr
	}
	_, _ = stdout.Write(b)
	return exitOK
}
