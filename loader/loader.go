// Package loader reads paranoia schemas and the documents they validate.
//
// Schemas may be written in JSON, YAML or TOML; data documents in JSON or
// YAML. The format is picked from the file extension. Every loaded schema is
// checked with Schema.Check so a malformed schema fails at load time rather
// than panicking inside Validate.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	paranoia "github.com/emavok/paranoia"
	"github.com/emavok/paranoia/internal/engine"
	"github.com/emavok/paranoia/internal/yamlalias"
)

// Format names a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

var (
	// ErrUnsupportedFormat is returned for unknown extensions and for data
	// documents in a schema-only format.
	ErrUnsupportedFormat = errors.New("loader: unsupported format")
	// ErrEmptyDocument is returned when a schema document has no content.
	ErrEmptyDocument = errors.New("loader: empty document")
)

// FormatOf maps a file extension to its Format.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// LoadSchema reads and checks the schema file at path.
func LoadSchema(path string, opts ...paranoia.Option) (*paranoia.Schema, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: read schema: %w", err)
	}
	s, err := ParseSchema(data, f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseSchema decodes data in format f and checks the result.
func ParseSchema(data []byte, f Format, opts ...paranoia.Option) (*paranoia.Schema, error) {
	switch f {
	case FormatJSON:
		return ParseSchemaJSON(data, opts...)
	case FormatYAML:
		return ParseSchemaYAML(data, opts...)
	case FormatTOML:
		return ParseSchemaTOML(data, opts...)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

// ParseSchemaJSON decodes a JSON schema document. Duplicate keys are rejected
// at any depth.
func ParseSchemaJSON(data []byte, opts ...paranoia.Option) (*paranoia.Schema, error) {
	if isBlank(data) {
		return nil, ErrEmptyDocument
	}
	if _, err := engine.DecodeBytes(data, engine.DecodeOptions{}); err != nil {
		return nil, fmt.Errorf("loader: schema json: %w", err)
	}
	var s paranoia.Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("loader: schema json: %w", err)
	}
	return checked(&s, opts)
}

// ParseSchemaYAML decodes the first document of a YAML stream as a schema.
func ParseSchemaYAML(data []byte, opts ...paranoia.Option) (*paranoia.Schema, error) {
	if isBlank(data) {
		return nil, ErrEmptyDocument
	}
	var doc yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("loader: schema yaml: %w", err)
	}
	if err := yamlalias.Check(&doc); err != nil {
		return nil, fmt.Errorf("loader: schema yaml: %w", err)
	}
	var s paranoia.Schema
	if err := doc.Decode(&s); err != nil {
		return nil, fmt.Errorf("loader: schema yaml: %w", err)
	}
	return checked(&s, opts)
}

// LoadValue reads the data document at path.
func LoadValue(path string) (any, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: read data: %w", err)
	}
	v, err := ParseValue(data, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// ParseValue decodes a data document. Only JSON and YAML are accepted.
func ParseValue(data []byte, f Format) (any, error) {
	switch f {
	case FormatJSON:
		return ParseValueJSON(data)
	case FormatYAML:
		return ParseValueYAML(data)
	}
	return nil, fmt.Errorf("%w: %q for data", ErrUnsupportedFormat, f)
}

// ParseValueJSON decodes one JSON value. Objects become map[string]any and
// numbers json.Number, so integers keep their exact value.
func ParseValueJSON(data []byte) (any, error) {
	v, err := engine.DecodeBytes(data, engine.DecodeOptions{})
	if err != nil {
		return nil, fmt.Errorf("loader: data json: %w", err)
	}
	return v, nil
}

// ParseValueYAML decodes the first YAML document into JSON-like values. An
// empty stream yields nil.
func ParseValueYAML(data []byte) (any, error) {
	v, err := newYAMLReader(bytes.NewReader(data)).next()
	if err != nil {
		return nil, fmt.Errorf("loader: data yaml: %w", err)
	}
	return v, nil
}

func checked(s *paranoia.Schema, opts []paranoia.Option) (*paranoia.Schema, error) {
	if err := s.Check(opts...); err != nil {
		return nil, err
	}
	return s, nil
}

func isBlank(data []byte) bool { return len(bytes.TrimSpace(data)) == 0 }
