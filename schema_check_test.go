package paranoia_test

import (
	"errors"
	"math"
	"testing"

	paranoia "github.com/emavok/paranoia"
	g "github.com/emavok/paranoia/dsl"
)

func TestCheck_WellFormed(t *testing.T) {
	shared := g.String().MinLength(1).Schema()
	s := g.Object(
		g.Prop("a", g.From(shared)),
		g.Prop("b", g.Array(g.From(shared))),
		g.Prop("when", g.Date().MinDate("2020-01-01T00:00:00.000+02:00")),
	).Schema()
	if err := s.Check(); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if err := s.Check(paranoia.WithStrict(true)); err != nil {
		t.Fatalf("strict: expected nil, got %v", err)
	}
}

func TestCheck_Reports(t *testing.T) {
	inf := math.Inf(1)
	cyclic := &paranoia.Schema{Type: paranoia.TypeArray}
	cyclic.Items = cyclic

	cases := []struct {
		name   string
		schema *paranoia.Schema
		opts   []paranoia.Option
		rule   string
		path   string
	}{
		{"nil root", nil, nil, "", "$"},
		{"well formed", g.Object(g.Prop("n", g.Number())).Schema(), nil, "", ""},
		{"nested bound", g.Object(g.Prop("n", g.From(&paranoia.Schema{Max: &inf}))).Schema(), nil, "max", "$.n"},
		{"unknown type", g.Array(g.From(&paranoia.Schema{Type: "uuid"})).Schema(), nil, "type", "$[]"},
		{"duplicate property", g.Object(g.Prop("x", g.String()), g.Prop("x", g.Number())).Schema(), nil, "properties", "$"},
		{"cycle", cyclic, nil, "", "$[]"},
		{"too deep", g.Object(g.Prop("a", g.Object(g.Prop("b", g.String())))).Schema(), []paranoia.Option{paranoia.WithMaxDepth(2)}, "", "$.a.b"},
		{"deep enough", g.Object(g.Prop("a", g.Object(g.Prop("b", g.String())))).Schema(), []paranoia.Option{paranoia.WithMaxDepth(3)}, "", ""},
		{"strict object", g.Object(g.Prop("o", g.From(&paranoia.Schema{Type: paranoia.TypeObject}))).Schema(), []paranoia.Option{paranoia.WithStrict(true)}, "properties", "$.o"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.schema.Check(c.opts...)
			if c.path == "" {
				if err != nil {
					t.Fatalf("expected nil, got %v", err)
				}
				return
			}
			se, ok := paranoia.AsSchemaError(err)
			if !ok {
				t.Fatalf("expected *SchemaError, got %v", err)
			}
			if se.Rule != c.rule {
				t.Fatalf("expected rule %q, got %q (%v)", c.rule, se.Rule, err)
			}
			if got := pathOf(se); got != c.path {
				t.Fatalf("expected path %s, got %s", c.path, got)
			}
			if !errors.Is(err, paranoia.ErrInvalidSchema) {
				t.Fatalf("expected ErrInvalidSchema")
			}
		})
	}
}

func TestCheck_PermissiveAllowsBareContainers(t *testing.T) {
	s := &paranoia.Schema{Type: paranoia.TypeObject}
	if err := s.Check(); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestValidatorCheck_UsesItsOptions(t *testing.T) {
	bare := &paranoia.Schema{Type: paranoia.TypeObject}
	if err := paranoia.New().Check(bare); err != nil {
		t.Fatalf("permissive: expected nil, got %v", err)
	}
	err := paranoia.New(paranoia.WithStrict(true)).Check(bare)
	if se, ok := paranoia.AsSchemaError(err); !ok || se.Rule != "properties" {
		t.Fatalf("strict: expected properties schema error, got %v", err)
	}
}

func pathOf(se *paranoia.SchemaError) string {
	if se.KeyPath == "" {
		return se.Key
	}
	if se.Key != "" && se.Key[0] == '[' {
		return se.KeyPath + se.Key
	}
	return se.KeyPath + "." + se.Key
}
