// Package jsonschema models the subset of JSON Schema (draft 2020-12) used to
// publish the registration payload contract.
package jsonschema

// Draft is the dialect URI written to $schema.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Schema is a minimal JSON Schema representation used for export.
type Schema struct {
	// Meta
	SchemaURI   string `json:"$schema,omitempty" yaml:"$schema,omitempty"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Core
	Type   string `json:"type,omitempty" yaml:"type,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
	Const  any    `json:"const,omitempty" yaml:"const,omitempty"`

	// String
	MinLength *int   `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	Pattern   string `json:"pattern,omitempty" yaml:"pattern,omitempty"`

	// Number
	Minimum          *int `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum          *int `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	ExclusiveMinimum *int `json:"exclusiveMinimum,omitempty" yaml:"exclusiveMinimum,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required             []string           `json:"required,omitempty" yaml:"required,omitempty"`
	AdditionalProperties *bool              `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`

	// Conditional
	If   *Schema `json:"if,omitempty" yaml:"if,omitempty"`
	Then *Schema `json:"then,omitempty" yaml:"then,omitempty"`
}

// Int returns a pointer for the numeric keywords.
func Int(n int) *int { return &n }

// Bool returns a pointer for additionalProperties.
func Bool(b bool) *bool { return &b }
