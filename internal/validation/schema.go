package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrSchemaInvalid    = errors.New("schema invalid")
	ErrSchemaValidation = errors.New("schema validation failed")
)

// Issue is one failed constraint, located by JSON pointer.
type Issue struct {
	Pointer string
	Message string
}

func (i Issue) String() string {
	pointer := "#" + strings.TrimPrefix(strings.TrimSpace(i.Pointer), "#")
	if i.Message == "" {
		return pointer
	}
	return pointer + ": " + i.Message
}

// Error reports every issue found in one document. It matches
// ErrSchemaValidation through errors.Is.
type Error struct {
	Schema string
	Issues []Issue
}

func (e *Error) Error() string {
	if len(e.Issues) == 0 {
		return fmt.Sprintf("%s: %s", e.Schema, ErrSchemaValidation)
	}
	parts := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		parts[i] = issue.String()
	}
	return fmt.Sprintf("%s: %s", e.Schema, strings.Join(parts, "; "))
}

func (e *Error) Unwrap() error { return ErrSchemaValidation }

// Issues returns the issues carried by err, or a single pointerless issue
// for foreign errors.
func Issues(err error) []Issue {
	if err == nil {
		return nil
	}
	var schemaErr *Error
	if errors.As(err, &schemaErr) {
		return schemaErr.Issues
	}
	return []Issue{{Message: err.Error()}}
}

// Schema is a compiled draft 2020-12 document. The zero value accepts
// every document.
type Schema struct {
	name     string
	compiled *jsonschema.Schema
}

// Compile compiles document under name. A nil document yields a schema that
// accepts everything.
func Compile(name string, document map[string]any) (*Schema, error) {
	if document == nil {
		return &Schema{name: name}, nil
	}
	encoded, err := json.Marshal(document)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSchemaInvalid, name, err)
	}
	url := name + ".json"
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(url, bytes.NewReader(encoded)); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSchemaInvalid, name, err)
	}
	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSchemaInvalid, name, err)
	}
	return &Schema{name: name, compiled: compiled}, nil
}

// MustCompile is Compile for package level schemas.
func MustCompile(name string, document map[string]any) *Schema {
	schema, err := Compile(name, document)
	if err != nil {
		panic(err)
	}
	return schema
}

// Validate checks doc. Go numeric types are normalized through JSON first.
func (s *Schema) Validate(doc map[string]any) error {
	if s == nil || s.compiled == nil {
		return nil
	}
	if doc == nil {
		doc = map[string]any{}
	}
	encoded, err := json.Marshal(doc)
	if err != nil {
		return &Error{Schema: s.name, Issues: []Issue{{Message: err.Error()}}}
	}
	var decoded any
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		return &Error{Schema: s.name, Issues: []Issue{{Message: err.Error()}}}
	}

	err = s.compiled.Validate(decoded)
	if err == nil {
		return nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return &Error{Schema: s.name, Issues: []Issue{{Message: err.Error()}}}
	}
	return &Error{Schema: s.name, Issues: leafIssues(verr, nil)}
}

func leafIssues(node *jsonschema.ValidationError, out []Issue) []Issue {
	if len(node.Causes) == 0 {
		return append(out, Issue{
			Pointer: node.InstanceLocation,
			Message: strings.TrimSpace(node.Message),
		})
	}
	for _, cause := range node.Causes {
		out = leafIssues(cause, out)
	}
	return out
}
