package regcheck

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	// Wire-level (malformed input)
	CodeParseError   = "parse_error"
	CodeDuplicateKey = "duplicate_key"
	CodeTruncated    = "truncated"
	// Structural (shape and primitive kinds)
	CodeInvalidType = "invalid_type"
	CodeRequired    = "required"
	CodeUnknownKey  = "unknown_key"
	CodeOverflow    = "overflow"
	// Business rules
	CodePattern       = "pattern"
	CodeTooShort      = "too_short"
	CodeTooSmall      = "too_small"
	CodeInvalidFormat = "invalid_format"
	CodeDomainRange   = "domain_range"
	CodeBusinessRule  = "business_rule"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // Dotted wire path (for example: address.city). Empty for the root.
	Code    string // One of the codes listed above.
	Message string
	// Rule records the rule that produced a business-rule issue
	// (for example: name.alphabetic). Empty for wire and structural issues.
	Rule string
	// Params carries structured parameters (e.g., {"min":2, "got":1}) for i18n.
	Params map[string]any
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. too_short at address.city
		fmt.Fprintf(b, "%s at %s", it.Code, displayPath(it.Path))
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally. It
// unwraps *StructuralMismatchError as well as plain rule violations.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// MalformedInputError reports a payload that is not syntactically valid
// structured data. It is terminal: no structural or rule checks ran.
type MalformedInputError struct {
	Issue Issue
	Cause error
}

func (e *MalformedInputError) Error() string {
	if e.Issue.Path != "" {
		return fmt.Sprintf("malformed input at %s: %s", e.Issue.Path, e.Issue.Message)
	}
	return "malformed input: " + e.Issue.Message
}

func (e *MalformedInputError) Unwrap() error { return e.Cause }

// StructuralMismatchError reports a well-formed payload that does not have the
// User shape. It carries one issue per problem found.
type StructuralMismatchError struct {
	Issues Issues
}

func (e *StructuralMismatchError) Error() string {
	return "structural mismatch: " + e.Issues.Error()
}

func (e *StructuralMismatchError) Unwrap() error { return e.Issues }

func malformed(code, path, msg string, cause error) *MalformedInputError {
	return &MalformedInputError{Issue: Issue{Code: code, Path: path, Message: msg}, Cause: cause}
}

func displayPath(p string) string {
	if p == "" {
		return "(root)"
	}
	return p
}
