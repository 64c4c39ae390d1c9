package regcheck

import (
	"github.com/reoring/regcheck/jsonschema"
)

// JSONSchema describes the accepted payload, rules included, for clients
// that validate before sending. The strict policy is assumed: unknown fields
// are not allowed. The name pattern needs a Unicode-aware regex engine.
func JSONSchema() *jsonschema.Schema {
	str := func(minLen int) *jsonschema.Schema {
		return &jsonschema.Schema{Type: "string", MinLength: jsonschema.Int(minLen)}
	}
	name := str(MinNameLength)
	name.Pattern = `^\p{L}+$`

	address := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			keyCity:        str(MinCityLength),
			keyStreet:      str(MinStreetLength),
			keyHouseNumber: {Type: "integer", ExclusiveMinimum: jsonschema.Int(0)},
		},
		Required:             []string{keyCity, keyStreet, keyHouseNumber},
		AdditionalProperties: jsonschema.Bool(false),
	}

	return &jsonschema.Schema{
		SchemaURI:   jsonschema.Draft,
		Title:       "User",
		Description: "User registration payload",
		Type:        "object",
		Properties: map[string]*jsonschema.Schema{
			keyName:       name,
			keyAge:        {Type: "integer", Minimum: jsonschema.Int(MinAge), Maximum: jsonschema.Int(MaxAge)},
			keyEmail:      {Type: "string", Format: "email"},
			keyIsEmployed: {Type: "boolean"},
			keyAddress:    address,
		},
		Required:             []string{keyName, keyAge, keyEmail, keyIsEmployed, keyAddress},
		AdditionalProperties: jsonschema.Bool(false),
		If: &jsonschema.Schema{
			Properties: map[string]*jsonschema.Schema{keyAge: {Maximum: jsonschema.Int(AdultAge - 1)}},
			Required:   []string{keyAge},
		},
		Then: &jsonschema.Schema{
			Properties: map[string]*jsonschema.Schema{keyIsEmployed: {Const: false}},
		},
	}
}
