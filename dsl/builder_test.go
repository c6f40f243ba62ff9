package dsl_test

import (
	"reflect"
	"testing"

	paranoia "github.com/emavok/paranoia"
	g "github.com/emavok/paranoia/dsl"
)

func TestBuilder_Fields(t *testing.T) {
	s := g.String().Required().MinLength(2).MaxLength(8).OneOf("ab", "abc").Named("code").Describe("short code").Schema()
	if s.Type != paranoia.TypeString || !s.Required {
		t.Fatalf("unexpected header: %+v", s)
	}
	if *s.MinLength != 2 || *s.MaxLength != 8 {
		t.Fatalf("unexpected lengths: %d %d", *s.MinLength, *s.MaxLength)
	}
	if !reflect.DeepEqual(s.Values, []any{"ab", "abc"}) || s.Name != "code" || s.Description != "short code" {
		t.Fatalf("unexpected schema: %+v", s)
	}

	d := g.Date().MinDate("2020-01-01").MaxDate("2021-01-01").Schema()
	if *d.MinDate != "2020-01-01" || *d.MaxDate != "2021-01-01" {
		t.Fatalf("unexpected date bounds: %+v", d)
	}
	n := g.Number().Min(-1.5).Max(3).Schema()
	if *n.Min != -1.5 || *n.Max != 3 {
		t.Fatalf("unexpected numeric bounds: %+v", n)
	}
}

func TestBuilder_ValueSemantics(t *testing.T) {
	base := g.Integer().Min(0)
	a := base.Max(10).Required()
	b := base.Max(20)
	if *a.Schema().Max != 10 || *b.Schema().Max != 20 {
		t.Fatalf("derived builders must not alias")
	}
	if base.Schema().Max != nil || b.Schema().Required {
		t.Fatalf("base builder was modified")
	}
	if a.Optional().Schema().Required {
		t.Fatalf("Optional should clear Required")
	}
}

func TestBuilder_Containers(t *testing.T) {
	s := g.Object(
		g.Prop("id", g.Integer().Required()),
		g.Prop("tags", g.Array(g.String())),
	).Schema()
	if !reflect.DeepEqual(s.Properties.Names(), []string{"id", "tags"}) {
		t.Fatalf("unexpected members: %v", s.Properties.Names())
	}
	tags, _ := s.Properties.Get("tags")
	if tags.Type != paranoia.TypeArray || tags.Items.Type != paranoia.TypeString {
		t.Fatalf("unexpected tags schema: %+v", tags)
	}
	empty := g.Object().Schema()
	if empty.Properties == nil {
		t.Fatalf("Object() should declare an empty member list")
	}
	if err := empty.Check(paranoia.WithStrict(true)); err != nil {
		t.Fatalf("empty object passes strict check: %v", err)
	}
}

func TestBuilder_MustCheck(t *testing.T) {
	_ = g.Object(g.Prop("a", g.String())).MustCheck()
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok {
			t.Fatalf("expected error panic, got %v", r)
		}
		if _, ok := paranoia.AsSchemaError(err); !ok {
			t.Fatalf("expected *SchemaError, got %v", err)
		}
	}()
	g.Object(g.Prop("a", g.Any()), g.Prop("a", g.Any())).MustCheck()
}

func TestFrom_Copies(t *testing.T) {
	src := &paranoia.Schema{Type: paranoia.TypeNumber}
	s := g.From(src).Required().Schema()
	if src.Required || !s.Required || s == src {
		t.Fatalf("From must copy the source schema")
	}
	if g.From(nil).Schema().Type != "" {
		t.Fatalf("From(nil) should be untyped")
	}
}
