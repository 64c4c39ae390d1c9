package regcheck

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/reoring/regcheck/i18n"
)

// ReportKind says which stage rejected the payload.
type ReportKind string

const (
	ReportMalformed ReportKind = "malformed" // text could not be parsed
	ReportStructure ReportKind = "structure" // parsed, but not User-shaped
	ReportRules     ReportKind = "rules"     // User-shaped, business rules violated
)

// Violation is one entry of a Report.
type Violation struct {
	FieldPath string         `json:"field_path" yaml:"field_path"`
	Code      string         `json:"code" yaml:"code"`
	Message   string         `json:"message" yaml:"message"`
	Rule      string         `json:"rule,omitempty" yaml:"rule,omitempty"`
	Params    map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
}

// Report is the failure value handed to callers: a single message for
// malformed input, otherwise every violation in evaluation order.
type Report struct {
	Kind       ReportKind  `json:"kind" yaml:"kind"`
	Message    string      `json:"message,omitempty" yaml:"message,omitempty"`
	Violations []Violation `json:"violations,omitempty" yaml:"violations,omitempty"`
}

// ReportOf converts an error returned by Decode, Check, ParseFrom or
// Register into a Report. nil yields the zero Report. Errors of unknown
// origin are reported as malformed input.
func ReportOf(err error) Report {
	if err == nil {
		return Report{}
	}
	var me *MalformedInputError
	if errors.As(err, &me) {
		msg := me.Issue.Message
		if me.Issue.Path != "" {
			msg = me.Issue.Path + ": " + msg
		}
		return Report{Kind: ReportMalformed, Message: msg}
	}
	var se *StructuralMismatchError
	if errors.As(err, &se) {
		return Report{Kind: ReportStructure, Violations: violationsOf(se.Issues)}
	}
	if iss, ok := AsIssues(err); ok {
		return Report{Kind: ReportRules, Violations: violationsOf(iss)}
	}
	return Report{Kind: ReportMalformed, Message: err.Error()}
}

func violationsOf(iss Issues) []Violation {
	out := make([]Violation, 0, len(iss))
	for _, it := range iss {
		out = append(out, Violation{FieldPath: it.Path, Code: it.Code, Message: it.Message, Rule: it.Rule, Params: it.Params})
	}
	return out
}

// Localize returns a copy with violation messages taken from tr. Messages tr
// does not know are kept.
func (r Report) Localize(tr i18n.Translator) Report {
	if tr == nil || len(r.Violations) == 0 {
		return r
	}
	out := r
	out.Violations = make([]Violation, len(r.Violations))
	for i, v := range r.Violations {
		if msg := tr.Message(v.Rule, v.Code, stringParams(v.Params)); msg != "" {
			v.Message = msg
		}
		out.Violations[i] = v
	}
	return out
}

func stringParams(p map[string]any) map[string]string {
	if len(p) == 0 {
		return nil
	}
	out := make(map[string]string, len(p))
	for k, v := range p {
		out[k] = fmt.Sprint(v)
	}
	return out
}

// String renders the report as text:
//
//	2 validation errors for User
//	name
//	  Name must contain only alphabetic characters [code=pattern]
//	address.city
//	  City name must be at least 2 characters long [code=too_short]
func (r Report) String() string {
	if r.Kind == ReportMalformed {
		return "invalid payload: " + r.Message
	}
	b := &strings.Builder{}
	n := len(r.Violations)
	noun := "errors"
	if n == 1 {
		noun = "error"
	}
	fmt.Fprintf(b, "%d validation %s for User", n, noun)
	for _, v := range r.Violations {
		fmt.Fprintf(b, "\n%s\n  %s [code=%s]", displayPath(v.FieldPath), v.Message, v.Code)
	}
	return b.String()
}

// Fields lists the distinct field paths of the report, sorted.
func (r Report) Fields() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, v := range r.Violations {
		if _, ok := seen[v.FieldPath]; ok {
			continue
		}
		seen[v.FieldPath] = struct{}{}
		out = append(out, v.FieldPath)
	}
	sort.Strings(out)
	return out
}
