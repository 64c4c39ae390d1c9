package regcheck_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	regcheck "github.com/reoring/regcheck"
)

func malformedIssue(t *testing.T, err error) regcheck.Issue {
	t.Helper()
	var me *regcheck.MalformedInputError
	if !errors.As(err, &me) {
		t.Fatalf("expected *MalformedInputError, got %T (%v)", err, err)
	}
	return me.Issue
}

func TestDecode_DuplicateKey_Error(t *testing.T) {
	_, err := regcheck.Decode(regcheck.JSONReader(bytes.NewReader([]byte(`{"name":"a","name":"b"}`))))
	it := malformedIssue(t, err)
	if it.Code != regcheck.CodeDuplicateKey {
		t.Fatalf("expected duplicate_key issue, got: %+v", it)
	}
	if it.Path != "name" {
		t.Fatalf("expected path=name, got: %s", it.Path)
	}
}

func TestDecode_DuplicateKey_NestedPath(t *testing.T) {
	_, err := regcheck.Decode(regcheck.JSONBytes([]byte(`{"address":{"city":"a","city":"b"}}`)))
	it := malformedIssue(t, err)
	if it.Code != regcheck.CodeDuplicateKey || it.Path != "address.city" {
		t.Fatalf("expected duplicate_key at address.city, got: %+v", it)
	}
}

func TestDecode_DuplicateKey_IgnoreKeepsLast(t *testing.T) {
	js := strings.Replace(scenarioACanonical, `"name":"Alice"`, `"name":"Bob","name":"Alice"`, 1)
	opt := regcheck.DefaultParseOpt()
	opt.Strictness.OnDuplicateKey = regcheck.Ignore
	u, err := regcheck.ParseFrom(regcheck.JSONBytes([]byte(js)), opt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Name != "Alice" {
		t.Fatalf("expected last value to win, got %q", u.Name)
	}
}

func TestDecode_MaxDepth(t *testing.T) {
	opt := regcheck.DefaultParseOpt()
	opt.MaxDepth = 2
	_, err := regcheck.Decode(regcheck.JSONBytes([]byte(`{"address":{"city":{"x":{}}}}`)), opt)
	it := malformedIssue(t, err)
	if it.Code != regcheck.CodeParseError || it.Message != "max depth exceeded" || it.Path != "address.city" {
		t.Fatalf("unexpected issue: %+v", it)
	}

	// The real payload needs depth 2.
	if _, err := regcheck.ParseFrom(regcheck.JSONBytes([]byte(scenarioA)), opt); err != nil {
		t.Fatalf("depth 2 must be enough: %v", err)
	}
}

func TestDecode_MaxBytes(t *testing.T) {
	opt := regcheck.DefaultParseOpt()
	opt.MaxBytes = 16
	for name, src := range map[string]regcheck.Source{
		"bytes":  regcheck.JSONBytes([]byte(scenarioA)),
		"reader": regcheck.JSONReader(strings.NewReader(scenarioA)),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := regcheck.Decode(src, opt)
			if it := malformedIssue(t, err); it.Code != regcheck.CodeTruncated {
				t.Fatalf("expected truncated, got: %+v", it)
			}
		})
	}
}

func TestDecode_MalformedText(t *testing.T) {
	cases := map[string]string{
		"empty":         "",
		"blank":         "  \n\t ",
		"truncated":     `{"name": "Alice"`,
		"trailing":      `{} {}`,
		"bare word":     `hello`,
		"missing colon": `{"name" "Alice"}`,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := regcheck.Decode(regcheck.JSONBytes([]byte(in)))
			if it := malformedIssue(t, err); it.Code != regcheck.CodeParseError {
				t.Fatalf("expected parse_error, got: %+v", it)
			}
		})
	}
}

func TestDecode_NilSource(t *testing.T) {
	_, err := regcheck.Decode(nil)
	malformedIssue(t, err)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestDecode_ReaderError(t *testing.T) {
	_, err := regcheck.Decode(regcheck.JSONReader(failingReader{}))
	it := malformedIssue(t, err)
	if !strings.Contains(it.Message, "connection reset") {
		t.Fatalf("unexpected message: %s", it.Message)
	}
}
