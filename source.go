package regcheck

import (
	"io"
	"mime"
	"strings"

	eng "github.com/reoring/regcheck/internal/engine"
)

// Format names the serialization of a payload.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	default:
		return "json"
	}
}

// ParseFormat maps "json"/"yaml"/"yml" (case-insensitive) to a Format.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, true
	case "yaml", "yml":
		return FormatYAML, true
	default:
		return FormatJSON, false
	}
}

// Source abstracts over the serialized payload. Every format is lowered into
// the same token stream, so duplicate-key and depth enforcement behave the
// same for JSON and YAML.
type Source interface {
	Format() Format
	// tokens reads at most maxBytes (0 = unbounded) and returns the token
	// stream, or a *MalformedInputError when the text cannot be tokenized.
	tokens(maxBytes int64) (eng.TokenSource, error)
}

// JSONBytes wraps a byte slice as a JSON Source.
func JSONBytes(b []byte) Source { return &jsonSource{data: b} }

// JSONReader wraps an io.Reader as a JSON Source.
func JSONReader(r io.Reader) Source { return &jsonSource{r: r} }

// YAMLBytes wraps a byte slice as a YAML Source.
func YAMLBytes(b []byte) Source { return &yamlSource{data: b} }

// YAMLReader wraps an io.Reader as a YAML Source.
func YAMLReader(r io.Reader) Source { return &yamlSource{r: r} }

// NewSource wraps r in the Source for the given format.
func NewSource(f Format, r io.Reader) Source {
	if f == FormatYAML {
		return YAMLReader(r)
	}
	return JSONReader(r)
}

// SourceFor picks the Source from a Content-Type value. YAML media types
// (including +yaml suffixes) select YAML; anything else is treated as JSON.
func SourceFor(contentType string, r io.Reader) Source {
	return NewSource(FormatForMediaType(contentType), r)
}

// FormatForMediaType maps a media type to a Format, defaulting to JSON.
func FormatForMediaType(contentType string) Format {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return FormatJSON
	}
	switch mt {
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return FormatYAML
	}
	if strings.HasSuffix(mt, "+yaml") {
		return FormatYAML
	}
	return FormatJSON
}

// readPayload returns the bytes behind a Source, enforcing the size cap up
// front.
func readPayload(data []byte, r io.Reader, maxBytes int64) ([]byte, error) {
	if r != nil {
		var err error
		if maxBytes > 0 {
			r = io.LimitReader(r, maxBytes+1)
		}
		data, err = io.ReadAll(r)
		if err != nil {
			return nil, malformed(CodeParseError, "", "read payload: "+err.Error(), err)
		}
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, malformed(CodeTruncated, "", "max bytes exceeded", nil)
	}
	return data, nil
}
