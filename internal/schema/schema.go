// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package schema publishes JSON Schemas for credential records and decodes
// submitted JSON or YAML documents into credential candidates.
package schema

import (
	"encoding/json"
	"sync"

	"github.com/invopop/jsonschema"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"

	"github.com/holomush/credcheck/internal/credential"
)

// BaseID is the prefix of published schema ids.
const BaseID = "https://credcheck.holomush.dev/schemas/"

// ID returns the $id of the schema for mode.
func ID(mode credential.Mode) string {
	return BaseID + mode.String() + ".schema.json"
}

// Generate returns the published JSON Schema for mode. It documents every
// field rule so form front-ends can pre-validate.
func Generate(mode credential.Mode) ([]byte, error) {
	var target any
	var title, description string
	switch mode {
	case credential.SignUp:
		target = &credential.SignUpRecord{}
		title = "Sign-up credentials"
		description = "Name, email and password required to create an account"
	case credential.SignIn:
		target = &credential.SignInRecord{}
		title = "Sign-in credentials"
		description = "Email and password; any name is ignored"
	default:
		return nil, oops.Code("CREDENTIAL_INVALID_MODE").
			With("mode", int(mode)).
			Errorf("unknown credential mode")
	}

	r := jsonschema.Reflector{
		DoNotReference: true,
		// sign-in drops unknown keys such as name instead of rejecting them
		AllowAdditionalProperties: true,
	}
	s := r.Reflect(target)
	s.ID = jsonschema.ID(ID(mode))
	s.Title = title
	s.Description = description

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, oops.Code("SCHEMA_GENERATE_FAILED").
			With("mode", mode.String()).
			Wrap(err)
	}
	return data, nil
}

// document is the accepted shape of a submission. Every key is optional so
// missing values reach the credential rules and get their usual messages.
type document struct {
	Name     *string `json:"name,omitempty"`
	Email    string  `json:"email,omitempty"`
	Password string  `json:"password,omitempty"`
}

var (
	shapeOnce   sync.Once
	shapeSchema *jschema.Schema
	shapeErr    error
)

// compiledShape returns the compiled type-only schema of document.
func compiledShape() (*jschema.Schema, error) {
	shapeOnce.Do(func() {
		shapeSchema, shapeErr = compile("document.json", &document{})
	})
	if shapeErr != nil {
		return nil, oops.Code("SCHEMA_COMPILE_FAILED").Wrap(shapeErr)
	}
	return shapeSchema, nil
}

func compile(name string, v any) (*jschema.Schema, error) {
	r := jsonschema.Reflector{
		DoNotReference:            true,
		AllowAdditionalProperties: true,
	}
	raw, err := json.Marshal(r.Reflect(v))
	if err != nil {
		return nil, err
	}

	var schemaData any
	if err := json.Unmarshal(raw, &schemaData); err != nil {
		return nil, err
	}

	c := jschema.NewCompiler()
	if err := c.AddResource(name, schemaData); err != nil {
		return nil, err
	}
	return c.Compile(name)
}

// Decode parses a JSON or YAML submission into a Candidate for mode.
// Documents that are not objects, or whose fields are not strings, are
// rejected with SCHEMA_INVALID_DOCUMENT. Field rules are not applied here;
// pass the result to credential.ValidateRecord. Under SignIn the name is
// dropped.
func Decode(mode credential.Mode, data []byte) (credential.Candidate, error) {
	if mode != credential.SignUp && mode != credential.SignIn {
		return credential.Candidate{}, oops.Code("CREDENTIAL_INVALID_MODE").
			With("mode", int(mode)).
			Errorf("unknown credential mode")
	}

	var raw any
	// YAML 1.2 is a superset of JSON, so one parser covers both.
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return credential.Candidate{}, oops.Code("SCHEMA_INVALID_DOCUMENT").
			With("reason", "parse").
			Wrap(err)
	}
	if raw == nil {
		return credential.Candidate{}, oops.Code("SCHEMA_INVALID_DOCUMENT").
			With("reason", "empty").
			Errorf("document is empty")
	}

	sch, err := compiledShape()
	if err != nil {
		return credential.Candidate{}, err
	}
	value := toJSONTypes(raw)
	if fields, ok := value.(map[string]any); ok && mode == credential.SignIn {
		// sign-in never looks at the name, whatever its type
		delete(fields, "name")
	}
	if err := sch.Validate(value); err != nil {
		return credential.Candidate{}, oops.Code("SCHEMA_INVALID_DOCUMENT").
			With("reason", "shape").
			Wrap(err)
	}

	// The shape check guarantees an object whose known keys hold strings.
	fields, _ := value.(map[string]any)
	var c credential.Candidate
	if name, ok := fields["name"].(string); ok {
		c.Name = &name
	}
	c.Email, _ = fields["email"].(string)
	c.Password, _ = fields["password"].(string)
	return c, nil
}

// toJSONTypes converts YAML-decoded values into the JSON value model.
// Mappings with non-string keys keep only their string keys and integers
// become float64 as encoding/json would produce.
func toJSONTypes(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = toJSONTypes(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			if key, ok := k.(string); ok {
				out[key] = toJSONTypes(item)
			}
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = toJSONTypes(item)
		}
		return out
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case uint64:
		return float64(val)
	default:
		return val
	}
}

// FormatError returns the user-facing part of a Decode error.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	if oopsErr, ok := oops.AsOops(err); ok {
		if reason, ok := oopsErr.Context()["reason"].(string); ok {
			switch reason {
			case "empty":
				return "document is empty"
			case "parse":
				return "document is not valid JSON or YAML"
			case "shape":
				return "document must be an object whose name, email and password are strings"
			}
		}
	}
	return err.Error()
}
