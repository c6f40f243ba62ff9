package loader_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	paranoia "github.com/emavok/paranoia"
	"github.com/emavok/paranoia/internal/engine"
	"github.com/emavok/paranoia/internal/yamlalias"
	"github.com/emavok/paranoia/loader"
)

var wantOrder = []string{"username", "age", "role", "born", "tags"}

func TestLoadSchema_AllFormats(t *testing.T) {
	for _, name := range []string{"user.schema.json", "user.schema.yaml", "user.schema.toml"} {
		t.Run(name, func(t *testing.T) {
			s, err := loader.LoadSchema(filepath.Join("testdata", name))
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if got := s.Properties.Names(); !reflect.DeepEqual(got, wantOrder) {
				t.Fatalf("unexpected member order: %v", got)
			}
			if s.Name != "user" || s.Description != "A registered user" || !s.Required {
				t.Fatalf("unexpected header: %+v", s)
			}
			born, _ := s.Properties.Get("born")
			if born.MinDate == nil || *born.MinDate != "1900-01-01" {
				t.Fatalf("unexpected minDate: %v", born.MinDate)
			}
			tags, _ := s.Properties.Get("tags")
			if tags.Items == nil || tags.Items.MinLength == nil || *tags.Items.MinLength != 1 {
				t.Fatalf("unexpected items: %+v", tags.Items)
			}
		})
	}
}

func TestLoadSchema_SameErrorsAcrossFormats(t *testing.T) {
	v, err := loader.LoadValue(filepath.Join("testdata", "invalid.json"))
	if err != nil {
		t.Fatalf("load value: %v", err)
	}
	var first []string
	for _, name := range []string{"user.schema.json", "user.schema.yaml", "user.schema.toml"} {
		s, err := loader.LoadSchema(filepath.Join("testdata", name))
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		var got []string
		for _, e := range paranoia.Validate(s, v) {
			got = append(got, string(e.Name)+" "+e.Path())
		}
		if len(got) != 5 {
			t.Fatalf("%s: expected 5 errors, got %v", name, got)
		}
		if first == nil {
			first = got
		} else if !reflect.DeepEqual(first, got) {
			t.Fatalf("%s: got %v want %v", name, got, first)
		}
	}
}

func TestLoadValue_YAMLMatchesJSON(t *testing.T) {
	s, err := loader.LoadSchema(filepath.Join("testdata", "user.schema.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	jv, err := loader.LoadValue(filepath.Join("testdata", "invalid.json"))
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	yv, err := loader.LoadValue(filepath.Join("testdata", "invalid.yaml"))
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	je, ye := paranoia.Validate(s, jv), paranoia.Validate(s, yv)
	if len(je) != len(ye) {
		t.Fatalf("json %v yaml %v", je, ye)
	}
	for i := range je {
		if je[i].Path() != ye[i].Path() || je[i].Name != ye[i].Name {
			t.Fatalf("mismatch at %d: %v vs %v", i, je[i], ye[i])
		}
	}

	valid, err := loader.LoadValue(filepath.Join("testdata", "valid.json"))
	if err != nil {
		t.Fatalf("valid: %v", err)
	}
	if errs := paranoia.Validate(s, valid); errs != nil {
		t.Fatalf("expected valid, got %v", errs)
	}
}

func TestLoadSchema_Malformed(t *testing.T) {
	_, err := loader.LoadSchema(filepath.Join("testdata", "broken.schema.json"))
	se, ok := paranoia.AsSchemaError(err)
	if !ok {
		t.Fatalf("expected *SchemaError, got %v", err)
	}
	if se.Rule != "minLength" || se.Key != "n" {
		t.Fatalf("unexpected schema error: %+v", se)
	}
}

func TestLoadSchema_StrictOption(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "bare.yaml")
	if err := os.WriteFile(p, []byte("type: array\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := loader.LoadSchema(p); err != nil {
		t.Fatalf("permissive: %v", err)
	}
	if _, err := loader.LoadSchema(p, paranoia.WithStrict(true)); !errors.Is(err, paranoia.ErrInvalidSchema) {
		t.Fatalf("strict: expected ErrInvalidSchema, got %v", err)
	}
}

func TestParseSchema_Errors(t *testing.T) {
	if _, err := loader.ParseSchemaJSON([]byte(" \n")); !errors.Is(err, loader.ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
	var dup *engine.DuplicateKeyError
	if _, err := loader.ParseSchemaJSON([]byte(`{"type":"string","type":"number"}`)); !errors.As(err, &dup) {
		t.Fatalf("expected duplicate key error, got %v", err)
	}
	if _, err := loader.ParseSchemaYAML([]byte("type: [unterminated\n")); err == nil {
		t.Fatalf("expected yaml syntax error")
	}
	if _, err := loader.ParseSchemaTOML([]byte("type = \n")); err == nil {
		t.Fatalf("expected toml syntax error")
	}
	if _, err := loader.LoadSchema("schema.xml"); !errors.Is(err, loader.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := loader.ParseValue([]byte("a = 1"), loader.FormatTOML); !errors.Is(err, loader.ErrUnsupportedFormat) {
		t.Fatalf("toml data should be rejected, got %v", err)
	}
}

func TestParseValueJSON_ExactNumbers(t *testing.T) {
	v, err := loader.ParseValueJSON([]byte(`{"big": 9007199254740993}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := v.(map[string]any)["big"]; got != json.Number("9007199254740993") {
		t.Fatalf("got %#v", got)
	}
}

func TestParseValueYAML(t *testing.T) {
	v, err := loader.ParseValueYAML([]byte("a: 1\nb: [true, ~, 2.5, x]\nwhen: 2020-01-01\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := map[string]any{"a": int64(1), "b": []any{true, nil, 2.5, "x"}, "when": "2020-01-01"}
	if !reflect.DeepEqual(v, want) {
		t.Fatalf("got %#v", v)
	}

	_, err = loader.ParseValueYAML([]byte("a: 1\na: 2\n"))
	var dup *loader.DuplicateKeyError
	if !errors.As(err, &dup) || dup.Key != "a" || dup.Line != 2 {
		t.Fatalf("expected duplicate key error, got %v", err)
	}

	if v, err := loader.ParseValueYAML(nil); err != nil || v != nil {
		t.Fatalf("empty stream should yield nil, got %v %v", v, err)
	}
}

// laughs nests levels of anchors, each aliasing the previous one ten times.
func laughs(prefix string, levels int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%sl0: &l0 {type: string}\n", prefix)
	for i := 1; i < levels; i++ {
		fmt.Fprintf(&b, "%sl%d: &l%d {type: object, properties: {", prefix, i, i)
		for j := 0; j < 10; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "p%d: *l%d", j, i-1)
		}
		b.WriteString("}}\n")
	}
	return b.String()
}

func TestParseYAML_Aliases(t *testing.T) {
	v, err := loader.ParseValueYAML([]byte("base: &b {x: 1}\ncopy: *b\n"))
	if err != nil {
		t.Fatalf("shared anchor: %v", err)
	}
	if !reflect.DeepEqual(v, map[string]any{"base": map[string]any{"x": int64(1)}, "copy": map[string]any{"x": int64(1)}}) {
		t.Fatalf("got %#v", v)
	}

	cases := []struct {
		name  string
		parse func([]byte) error
		src   string
		want  error
	}{
		{"value self reference", parseValue, "a: &x [*x]\n", yamlalias.ErrCycle},
		{"value mapping cycle", parseValue, "a: &m {b: {c: *m}}\n", yamlalias.ErrCycle},
		{"value expansion", parseValue, laughs("", 9), yamlalias.ErrExcessive},
		{"schema cycle", parseSchema, "type: object\nproperties: &p {a: {type: object, properties: *p}}\n", yamlalias.ErrCycle},
		{"schema expansion", parseSchema, "type: object\nproperties:\n" + laughs("  ", 9), yamlalias.ErrExcessive},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.parse([]byte(tc.src)); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func parseValue(data []byte) error {
	_, err := loader.ParseValueYAML(data)
	return err
}

func parseSchema(data []byte) error {
	_, err := loader.ParseSchemaYAML(data)
	return err
}
