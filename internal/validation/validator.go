// Package validation checks the credential declaration file against an
// embedded JSON Schema before any declaration is acted on, so that a
// half-written config never gets halfway through an inject pass.
package validation

import (
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/astrogilda/credhook/internal/errors"
)

// declarationSchemaJSON is the JSON Schema for the credential declaration
// file. Embedded as a constant to avoid filesystem dependencies.
const declarationSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://credhook.dev/schemas/declarations.json",
  "type": "object",
  "additionalProperties": { "$ref": "#/$defs/credential" },
  "$defs": {
    "credential": {
      "type": "object",
      "required": ["env_var", "label"],
      "properties": {
        "env_var": { "type": "string", "minLength": 1 },
        "service": { "type": "string", "minLength": 1 },
        "account": { "type": "string", "minLength": 1 },
        "label": { "type": "string", "minLength": 1 },
        "mcp_server": { "type": "string", "minLength": 1 },
        "reference": { "type": "string", "pattern": "^op://" }
      },
      "additionalProperties": false,
      "oneOf": [
        {
          "required": ["service", "account"],
          "not": { "required": ["reference"] }
        },
        { "required": ["reference"] }
      ]
    }
  }
}`

// Validator validates declaration documents against the embedded schema.
// It is safe for concurrent use.
type Validator struct {
	schema *jsonschema.Schema
}

// New compiles the embedded declaration schema.
func New() (*Validator, error) {
	c := jsonschema.NewCompiler()
	c.AssertFormat()

	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(declarationSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("unmarshal declaration schema: %w", err)
	}
	if err := c.AddResource("https://credhook.dev/schemas/declarations.json", doc); err != nil {
		return nil, fmt.Errorf("add declaration schema resource: %w", err)
	}

	sch, err := c.Compile("https://credhook.dev/schemas/declarations.json")
	if err != nil {
		return nil, fmt.Errorf("compile declaration schema: %w", err)
	}

	return &Validator{schema: sch}, nil
}

// Validate checks raw declaration JSON against the schema. The path is used
// only for error reporting.
func (v *Validator) Validate(path string, raw []byte) error {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(raw)))
	if err != nil {
		return errors.ConfigError("Parsing credential config", "File is not valid JSON", err)
	}

	if err := v.schema.Validate(doc); err != nil {
		return errors.ConfigValidationError(path, collectViolations(err))
	}

	return nil
}

// collectViolations walks a ValidationError tree and collects leaf messages
// with their instance locations.
func collectViolations(err error) []string {
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{err.Error()}
	}

	if len(verr.Causes) == 0 {
		loc := "/"
		if len(verr.InstanceLocation) > 0 {
			loc = "/" + strings.Join(verr.InstanceLocation, "/")
		}
		return []string{fmt.Sprintf("%s: %s", loc, verr.Error())}
	}

	var violations []string
	for _, cause := range verr.Causes {
		violations = append(violations, collectViolations(cause)...)
	}
	return violations
}
