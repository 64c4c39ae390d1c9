// Package rules composes field-level and cross-field checks into a single
// evaluation pass. Rules never short-circuit: every failing check yields one
// Violation, in the order the rules were declared.
package rules

import (
	"github.com/go-playground/validator/v10"
)

// Violation is one failed check. Path is a dotted field path.
type Violation struct {
	Path    string
	Code    string
	Rule    string
	Message string
	Params  map[string]any
}

// Check is a predicate with the message reported when it does not hold.
type Check[V any] struct {
	Rule    string
	Code    string
	Message string
	Params  map[string]any
	OK      func(V) bool
}

// Rule evaluates a whole value and returns every violation found.
type Rule[T any] func(T) []Violation

// Field runs every check against one field of T. A field with several checks
// reports each failure separately.
func Field[T, V any](path string, get func(T) V, checks ...Check[V]) Rule[T] {
	return func(v T) []Violation {
		fv := get(v)
		var out []Violation
		for _, c := range checks {
			if c.OK == nil || c.OK(fv) {
				continue
			}
			out = append(out, Violation{Path: path, Code: c.Code, Rule: c.Rule, Message: c.Message, Params: c.Params})
		}
		return out
	}
}

// Nested lifts rules over a component U into rules over its owner T. Paths
// are prefixed, so "city" becomes "address.city".
func Nested[T, U any](prefix string, get func(T) U, rules ...Rule[U]) Rule[T] {
	inner := All(rules...)
	return func(v T) []Violation {
		out := inner(get(v))
		for i := range out {
			out[i].Path = join(prefix, out[i].Path)
		}
		return out
	}
}

// All executes all rules and concatenates their violations.
func All[T any](rules ...Rule[T]) Rule[T] {
	return func(v T) []Violation {
		var out []Violation
		for _, r := range rules {
			if r == nil {
				continue
			}
			out = append(out, r(v)...)
		}
		return out
	}
}

// Conditional gates rules on a predicate over the whole value. It is how
// cross-field rules read sibling fields: the predicate receives the same
// candidate the gated rules inspect.
type Conditional[T any] struct {
	pred func(T) bool
}

// If builds a conditional.
func If[T any](pred func(T) bool) Conditional[T] { return Conditional[T]{pred: pred} }

// Then attaches rules to run when the condition is satisfied.
func (c Conditional[T]) Then(rules ...Rule[T]) Rule[T] {
	inner := All(rules...)
	return func(v T) []Violation {
		if c.pred == nil || !c.pred(v) {
			return nil
		}
		return inner(v)
	}
}

// Tag adapts a go-playground/validator tag (e.g. "email", "min=2") into a
// predicate. v must be fully configured before the predicate is used; it is
// safe for concurrent use afterwards.
func Tag[V any](v *validator.Validate, tag string) func(V) bool {
	return func(x V) bool { return v.Var(x, tag) == nil }
}

// Both holds when every predicate holds.
func Both[V any](preds ...func(V) bool) func(V) bool {
	return func(x V) bool {
		for _, p := range preds {
			if !p(x) {
				return false
			}
		}
		return true
	}
}

func join(prefix, path string) string {
	switch {
	case prefix == "":
		return path
	case path == "":
		return prefix
	default:
		return prefix + "." + path
	}
}
