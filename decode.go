package regcheck

import (
	"encoding/json"
	"errors"
	"io"
	"sort"
	"strconv"
	"strings"

	eng "github.com/reoring/regcheck/internal/engine"
)

// Decode is the structural pass. It parses src into an untyped tree and
// coerces it into a candidate User without checking business rules.
//
// It returns *MalformedInputError when the text cannot be parsed and
// *StructuralMismatchError (one issue per problem) when the tree does not
// have the User shape.
func Decode(src Source, opts ...ParseOpt) (User, error) {
	opt := resolveOpt(opts)
	tree, err := decodeTree(src, opt)
	if err != nil {
		return User{}, err
	}
	return decodeUser(tree, opt)
}

// decodeTree tokenizes src, applies enforcement and builds the untyped tree.
func decodeTree(src Source, opt ParseOpt) (any, error) {
	if src == nil {
		return nil, malformed(CodeParseError, "", "nil source", nil)
	}
	ts, err := src.tokens(opt.MaxBytes)
	if err != nil {
		return nil, err
	}
	enforced := eng.WrapWithEnforcement(ts, eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
	})
	v, err := eng.DecodeAnyFromSource(enforced)
	if err != nil {
		return nil, toMalformed(err)
	}
	return v, nil
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	if s == Error {
		return eng.DupError
	}
	return eng.DupIgnore
}

func toMalformed(err error) *MalformedInputError {
	var me *MalformedInputError
	if errors.As(err, &me) {
		return me
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return malformed(ie.Code, ie.Path, ie.Message, err)
	}
	switch {
	case errors.Is(err, eng.ErrTrailingData):
		return malformed(CodeParseError, "", err.Error(), err)
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		return malformed(CodeParseError, "", "unexpected end of input", err)
	}
	return malformed(CodeParseError, "", err.Error(), err)
}

func decodeUser(tree any, opt ParseOpt) (User, error) {
	var iss Issues
	root, ok := tree.(map[string]any)
	if !ok {
		iss = AppendIssues(iss, Root().Issue(CodeInvalidType, "expected object, got "+kindOf(tree), "expected", "object", "got", kindOf(tree)))
		return User{}, &StructuralMismatchError{Issues: iss}
	}

	o := &objectReader{m: root, path: Root(), opt: opt, iss: &iss}
	var u User
	u.Name = o.str(keyName)
	u.Age = o.integer(keyAge)
	u.Email = o.str(keyEmail)
	u.IsEmployed = o.boolean(keyIsEmployed)
	if a, ok := o.object(keyAddress); ok {
		u.Address.City = a.str(keyCity)
		u.Address.Street = a.str(keyStreet)
		u.Address.HouseNumber = a.integer(keyHouseNumber)
		a.finish()
	}
	o.finish()

	if len(iss) > 0 {
		return User{}, &StructuralMismatchError{Issues: iss}
	}
	return u, nil
}

// objectReader reads expected keys from one object, recording an issue per
// problem, then reports the keys it never read.
type objectReader struct {
	m    map[string]any
	path PathRef
	opt  ParseOpt
	iss  *Issues
	seen map[string]struct{}
}

func (o *objectReader) lookup(key string) (any, PathRef, bool) {
	if o.seen == nil {
		o.seen = make(map[string]struct{}, len(o.m))
	}
	o.seen[key] = struct{}{}
	p := o.path.Field(key)
	v, ok := o.m[key]
	if !ok {
		*o.iss = AppendIssues(*o.iss, p.Issue(CodeRequired, "field required"))
	}
	return v, p, ok
}

func (o *objectReader) mismatch(p PathRef, want string, got any) {
	k := kindOf(got)
	*o.iss = AppendIssues(*o.iss, p.Issue(CodeInvalidType, "expected "+want+", got "+k, "expected", want, "got", k))
}

func (o *objectReader) str(key string) string {
	v, p, ok := o.lookup(key)
	if !ok {
		return ""
	}
	s, isStr := v.(string)
	if !isStr {
		o.mismatch(p, "string", v)
	}
	return s
}

func (o *objectReader) boolean(key string) bool {
	v, p, ok := o.lookup(key)
	if !ok {
		return false
	}
	b, isBool := v.(bool)
	if !isBool {
		o.mismatch(p, "boolean", v)
	}
	return b
}

// integer accepts integral number literals only: 25 is an integer, 25.0 and
// "25" are not.
func (o *objectReader) integer(key string) int {
	v, p, ok := o.lookup(key)
	if !ok {
		return 0
	}
	num, isNum := v.(json.Number)
	if !isNum {
		o.mismatch(p, "integer", v)
		return 0
	}
	n, err := strconv.ParseInt(string(num), 10, strconv.IntSize)
	if err == nil {
		return int(n)
	}
	if errors.Is(err, strconv.ErrRange) {
		*o.iss = AppendIssues(*o.iss, p.Issue(CodeOverflow, "integer out of range", "got", string(num)))
		return 0
	}
	o.mismatch(p, "integer", v)
	return 0
}

func (o *objectReader) object(key string) (*objectReader, bool) {
	v, p, ok := o.lookup(key)
	if !ok {
		return nil, false
	}
	m, isObj := v.(map[string]any)
	if !isObj {
		o.mismatch(p, "object", v)
		return nil, false
	}
	return &objectReader{m: m, path: p, opt: o.opt, iss: o.iss}, true
}

// finish reports unknown keys, sorted by name, unless they are stripped.
func (o *objectReader) finish() {
	if o.opt.Unknown == UnknownStrip {
		return
	}
	var unknown []string
	for k := range o.m {
		if _, ok := o.seen[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		*o.iss = AppendIssues(*o.iss, o.path.Field(k).Issue(CodeUnknownKey, "unknown field", "key", k))
	}
}

func kindOf(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number:
		if isIntegerLiteral(string(t)) {
			return "integer"
		}
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return "unknown"
	}
}

func isIntegerLiteral(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
