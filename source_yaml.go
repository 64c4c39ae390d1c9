package regcheck

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	eng "github.com/reoring/regcheck/internal/engine"
)

// yamlMaxNesting bounds node flattening so alias chains cannot recurse
// without limit; MaxDepth is enforced afterwards on the token stream.
const yamlMaxNesting = 512

// Alias and merge expansion may emit at most yamlTokenRatio tokens per input
// byte, plus yamlTokenSlack.
const (
	yamlTokenRatio = 4
	yamlTokenSlack = 256
)

var (
	errYAMLNesting   = errors.New("max depth exceeded")
	errYAMLExpansion = errors.New("alias expansion exceeds payload size")
)

type yamlSource struct {
	data []byte
	r    io.Reader
}

func (s *yamlSource) Format() Format { return FormatYAML }

func (s *yamlSource) tokens(maxBytes int64) (eng.TokenSource, error) {
	data, err := readPayload(s.data, s.r, maxBytes)
	if err != nil {
		return nil, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var root yaml.Node
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, malformed(CodeParseError, "", "empty payload", nil)
		}
		return nil, malformed(CodeParseError, "", "invalid YAML: "+err.Error(), err)
	}
	if len(root.Content) == 0 {
		return nil, malformed(CodeParseError, "", "empty payload", nil)
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); err == nil {
		return nil, malformed(CodeParseError, "", "multiple YAML documents in payload", nil)
	} else if !errors.Is(err, io.EOF) {
		return nil, malformed(CodeParseError, "", "invalid YAML: "+err.Error(), err)
	}
	f := &yamlFlattener{left: yamlTokenRatio*len(data) + yamlTokenSlack}
	toks, err := f.flatten(&root, nil, 0)
	if err != nil {
		return nil, malformed(CodeParseError, "", err.Error(), err)
	}
	return eng.NewSliceSource(toks), nil
}

// yamlFlattener lowers a yaml.Node tree into engine tokens. Scalars are typed
// by their resolved tag, so `age: "25"` stays a string and `age: 25` a number.
type yamlFlattener struct {
	left int // token budget
}

type yamlPair struct {
	key string
	val *yaml.Node
}

func (f *yamlFlattener) charge(n int) error {
	if f.left < n {
		return errYAMLExpansion
	}
	f.left -= n
	return nil
}

func (f *yamlFlattener) push(out []eng.Token, t eng.Token) ([]eng.Token, error) {
	if err := f.charge(1); err != nil {
		return nil, err
	}
	return append(out, t), nil
}

func (f *yamlFlattener) flatten(n *yaml.Node, out []eng.Token, depth int) ([]eng.Token, error) {
	if depth > yamlMaxNesting {
		return nil, errYAMLNesting
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return f.push(out, eng.Token{Kind: eng.KindNull})
		}
		return f.flatten(n.Content[0], out, depth)
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, fmt.Errorf("unresolved alias at line %d", n.Line)
		}
		return f.flatten(n.Alias, out, depth+1)
	case yaml.MappingNode:
		pairs, err := f.mappingPairs(n, depth)
		if err != nil {
			return nil, err
		}
		if out, err = f.push(out, eng.Token{Kind: eng.KindBeginObject}); err != nil {
			return nil, err
		}
		for _, p := range pairs {
			if out, err = f.push(out, eng.Token{Kind: eng.KindKey, String: p.key}); err != nil {
				return nil, err
			}
			if out, err = f.flatten(p.val, out, depth+1); err != nil {
				return nil, err
			}
		}
		return f.push(out, eng.Token{Kind: eng.KindEndObject})
	case yaml.SequenceNode:
		var err error
		if out, err = f.push(out, eng.Token{Kind: eng.KindBeginArray}); err != nil {
			return nil, err
		}
		for _, c := range n.Content {
			if out, err = f.flatten(c, out, depth+1); err != nil {
				return nil, err
			}
		}
		return f.push(out, eng.Token{Kind: eng.KindEndArray})
	case yaml.ScalarNode:
		return f.push(out, yamlScalar(n))
	default:
		return nil, fmt.Errorf("unsupported YAML node at %d:%d", n.Line, n.Column)
	}
}

// mappingPairs lists the entries of a mapping with `<<` merge keys applied.
// Explicit keys win over merged ones, and earlier merge sources win over
// later ones. Repeated explicit keys are all kept for duplicate detection.
func (f *yamlFlattener) mappingPairs(n *yaml.Node, depth int) ([]yamlPair, error) {
	if depth > yamlMaxNesting {
		return nil, errYAMLNesting
	}
	if err := f.charge(1 + len(n.Content)/2); err != nil {
		return nil, err
	}
	explicit := map[string]bool{}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i]
		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("non-scalar mapping key at %d:%d", k.Line, k.Column)
		}
		if !isMergeKey(k) {
			explicit[k.Value] = true
		}
	}

	pairs := make([]yamlPair, 0, len(n.Content)/2)
	merged := map[string]bool{}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if !isMergeKey(k) {
			pairs = append(pairs, yamlPair{key: k.Value, val: v})
			continue
		}
		srcs, err := mergeSources(v)
		if err != nil {
			return nil, err
		}
		for _, src := range srcs {
			sp, err := f.mappingPairs(src, depth+1)
			if err != nil {
				return nil, err
			}
			for _, p := range sp {
				if explicit[p.key] || merged[p.key] {
					continue
				}
				merged[p.key] = true
				pairs = append(pairs, p)
			}
		}
	}
	return pairs, nil
}

func isMergeKey(k *yaml.Node) bool {
	return k.Kind == yaml.ScalarNode && k.ShortTag() == "!!merge"
}

// mergeSources resolves the value of a merge key: a mapping or a sequence of
// mappings, possibly through aliases.
func mergeSources(v *yaml.Node) ([]*yaml.Node, error) {
	v = resolveAlias(v)
	switch v.Kind {
	case yaml.MappingNode:
		return []*yaml.Node{v}, nil
	case yaml.SequenceNode:
		srcs := make([]*yaml.Node, 0, len(v.Content))
		for _, c := range v.Content {
			c = resolveAlias(c)
			if c.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("merge value at %d:%d is not a mapping", c.Line, c.Column)
			}
			srcs = append(srcs, c)
		}
		return srcs, nil
	default:
		return nil, fmt.Errorf("merge value at %d:%d is not a mapping", v.Line, v.Column)
	}
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for i := 0; n.Kind == yaml.AliasNode && n.Alias != nil && i < yamlMaxNesting; i++ {
		n = n.Alias
	}
	return n
}

func yamlScalar(n *yaml.Node) eng.Token {
	switch n.ShortTag() {
	case "!!null":
		return eng.Token{Kind: eng.KindNull}
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return eng.Token{Kind: eng.KindBool, Bool: b}
		}
		return eng.Token{Kind: eng.KindString, String: n.Value}
	case "!!int":
		// Normalize 0x1F, 0o17 and friends to decimal; out-of-range literals
		// keep their text so the decoder can report an overflow.
		if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
			return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatInt(i, 10)}
		}
		return eng.Token{Kind: eng.KindNumber, Number: n.Value}
	case "!!float":
		return eng.Token{Kind: eng.KindNumber, Number: n.Value}
	default:
		return eng.Token{Kind: eng.KindString, String: n.Value}
	}
}
