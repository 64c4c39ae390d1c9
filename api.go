package regcheck

import (
	j "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ParseFrom is the primary entry point: the structural pass followed by the
// rule pass. Decoding failures stop before any rule runs.
func ParseFrom(src Source, opts ...ParseOpt) (User, error) {
	u, err := Decode(src, opts...)
	if err != nil {
		return User{}, err
	}
	return Validate(u)
}

// Register parses src and returns the canonical JSON form of the accepted
// User.
func Register(src Source, opts ...ParseOpt) ([]byte, error) {
	u, err := ParseFrom(src, opts...)
	if err != nil {
		return nil, err
	}
	return Canonical(u)
}

// RegisterText takes a JSON payload and returns the canonical JSON on
// success or the text rendering of the report on failure.
func RegisterText(payload string) string {
	out, err := Register(JSONBytes([]byte(payload)))
	if err != nil {
		return ReportOf(err).String()
	}
	return string(out)
}

// Canonical encodes u as compact JSON with fields in declaration order.
// Validation never rewrites values, so Canonical of an accepted payload
// round-trips to the same User.
func Canonical(u User) ([]byte, error) {
	return j.Marshal(u)
}

// CanonicalYAML encodes u as a YAML document with fields in declaration
// order.
func CanonicalYAML(u User) ([]byte, error) {
	return yaml.Marshal(u)
}
