package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	regcheck "github.com/reoring/regcheck"
	"github.com/reoring/regcheck/i18n"
)

func checkCmd(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		format string
		strip  bool
		lang   string
		out    string
	)
	fs.StringVar(&format, "format", "", "input format: json or yaml (default: from file extension, else json)")
	fs.BoolVar(&strip, "strip-unknown", false, "drop unknown fields instead of rejecting them")
	fs.StringVar(&lang, "lang", "en", "message language")
	fs.StringVar(&out, "o", "text", "output: text, json or yaml")
	if err := fs.Parse(args); err != nil {
		return exitUsageErr
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return exitUsageErr
	}
	if out != "text" && out != "json" && out != "yaml" {
		fmt.Fprintf(stderr, "check: unknown output %q\n", out)
		return exitUsageErr
	}

	in := stdin
	name := ""
	if fs.NArg() == 1 && fs.Arg(0) != "-" {
		name = fs.Arg(0)
		f, err := os.Open(name)
		if err != nil {
			fmt.Fprintf(stderr, "check: %v\n", err)
			return exitUsageErr
		}
		defer f.Close()
		in = f
	}

	fmtIn, ok := inputFormat(format, name)
	if !ok {
		fmt.Fprintf(stderr, "check: unknown format %q\n", format)
		return exitUsageErr
	}

	opt := regcheck.DefaultParseOpt()
	if strip {
		opt.Unknown = regcheck.UnknownStrip
	}
	u, err := regcheck.ParseFrom(regcheck.NewSource(fmtIn, in), opt)
	if err != nil {
		rep := regcheck.ReportOf(err).Localize(i18n.For(lang))
		if err := writeReport(stdout, out, rep); err != nil {
			fmt.Fprintf(stderr, "check: %v\n", err)
		}
		if rep.Kind == regcheck.ReportRules {
			return exitRules
		}
		return exitMalformed
	}
	if err := writeUser(stdout, out, u); err != nil {
		fmt.Fprintf(stderr, "check: %v\n", err)
		return exitUsageErr
	}
	return exitOK
}

// inputFormat resolves -format, falling back to the file extension.
func inputFormat(flagValue, name string) (regcheck.Format, bool) {
	if flagValue != "" {
		return regcheck.ParseFormat(flagValue)
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return regcheck.FormatYAML, true
	default:
		return regcheck.FormatJSON, true
	}
}

func writeUser(w io.Writer, out string, u regcheck.User) error {
	var (
		b   []byte
		err error
	)
	if out == "yaml" {
		b, err = regcheck.CanonicalYAML(u)
	} else {
		b, err = regcheck.Canonical(u)
		b = append(b, '\n')
	}
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func writeReport(w io.Writer, out string, rep regcheck.Report) error {
	switch out {
	case "json":
		b, err := j.MarshalIndent(rep, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml":
		b, err := yaml.Marshal(rep)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	default:
		_, err := fmt.Fprintln(w, rep.String())
		return err
	}
}
