// Package paranoia validates untyped value trees against declarative schemas.
//
// A Schema describes one position of a value: its Type, whether it is Required,
// numeric (Min/Max), length (MinLength/MaxLength) and date (MinDate/MaxDate)
// bounds, an allow-list of Values, the Properties of an object and the Items
// schema of an array. Validate walks the value alongside the schema and returns
// every violation it finds, each annotated with the key and path of the
// offending position. It never stops at the first failure.
//
// Two kinds of error are kept apart:
//
//   - ValidationErrors describe bad data. They are returned, never panicked.
//   - *SchemaError describes a malformed schema (a NaN bound, an unknown type, a
//     nil child schema). Validate panics with it; Schema.Check and the loader
//     package report it as an ordinary error so it can fail service startup.
//
// Schemas are plain structs loaded from JSON, YAML or TOML (see package loader)
// or built with package dsl:
//
//	user := g.Object(
//	    g.Prop("username", g.String().Required().MinLength(3)),
//	    g.Prop("age", g.Integer().Min(0)),
//	).Schema()
//	if errs := paranoia.Validate(user, value); paranoia.HasValidationErrors(errs) {
//	    for _, e := range errs {
//	        fmt.Println(e.Path(), e.Message)
//	    }
//	}
//
// Validators are stateless and safe for concurrent use. Schemas must be finite
// and acyclic; WithMaxDepth turns an accidental cycle into a *SchemaError
// instead of unbounded recursion.
package paranoia
