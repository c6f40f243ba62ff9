package paranoia_test

import (
	"testing"

	paranoia "github.com/emavok/paranoia"
	g "github.com/emavok/paranoia/dsl"
)

func BenchmarkValidate_Object(b *testing.B) {
	s := g.Object(
		g.Prop("id", g.Integer().Required().Min(1)),
		g.Prop("name", g.String().Required().MinLength(1).MaxLength(64)),
		g.Prop("born", g.Date().MaxDate("2030-01-01")),
		g.Prop("tags", g.Array(g.String().OneOf("a", "b", "c"))),
	).Schema()
	v := map[string]any{
		"id":   42,
		"name": "alice",
		"born": "1990-04-01",
		"tags": []any{"a", "b", "c", "a"},
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if errs := paranoia.Validate(s, v); errs != nil {
			b.Fatal(errs)
		}
	}
}

func BenchmarkValidate_Failing(b *testing.B) {
	s := g.Array(g.Number().Min(0).Max(1)).Schema()
	v := make([]any, 256)
	for i := range v {
		v[i] = float64(i)
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = paranoia.Validate(s, v)
	}
}
