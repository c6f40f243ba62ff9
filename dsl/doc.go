// Package dsl builds paranoia schemas in Go code.
//
// Builders are values: every modifier returns a modified copy, so a base
// builder can be shared and specialised without aliasing.
//
//	import g "github.com/emavok/paranoia/dsl"
//
//	user := g.Object(
//	    g.Prop("username", g.String().Required().MinLength(3).MaxLength(32)),
//	    g.Prop("role", g.String().OneOf("admin", "member")),
//	    g.Prop("born", g.Date().MaxDate("2020-01-01")),
//	    g.Prop("tags", g.Array(g.String().MinLength(1))),
//	).Named("user").Schema()
//
//	errs := paranoia.Validate(user, value)
package dsl
