package regcheck

import (
	"fmt"
	"strings"
)

// PathRef builds dotted field paths in a chain-safe way and creates Issues.
type PathRef struct {
	parts []string
}

// Root is the path of the payload itself.
func Root() PathRef { return PathRef{} }

// At parses a dotted path such as "address.city".
func At(path string) PathRef {
	var parts []string
	for _, p := range strings.Split(path, ".") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return PathRef{parts: parts}
}

// Field appends a segment.
func (p PathRef) Field(name string) PathRef {
	if name == "" {
		return p
	}
	return PathRef{parts: append(append([]string{}, p.parts...), name)}
}

// String renders the path; the root renders as "".
func (p PathRef) String() string { return strings.Join(p.parts, ".") }

// Issue creates an Issue at p. kv are key/value pairs stored in Params.
func (p PathRef) Issue(code, msg string, kv ...any) Issue {
	var m map[string]any
	if len(kv) >= 2 {
		m = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			m[fmt.Sprint(kv[i])] = kv[i+1]
		}
	}
	return Issue{Path: p.String(), Code: code, Message: msg, Params: m}
}
