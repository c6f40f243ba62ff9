package paranoia

import "fmt"

// Check walks s once and returns the first *SchemaError that Validate would
// panic with for some value, or nil. Cycles are reported as well.
func (s *Schema) Check(opts ...Option) error {
	return New(opts...).Check(s)
}

// Check is Schema.Check under the options of v.
func (v *Validator) Check(s *Schema) error {
	c := checker{v: v, active: map[*Schema]bool{}}
	if err := c.walk(node{key: RootKey, schema: s, depth: 1}); err != nil {
		return err
	}
	return nil
}

type checker struct {
	v      *Validator
	active map[*Schema]bool
}

func (c *checker) walk(n node) *SchemaError {
	if n.schema == nil {
		return n.schemaError("", "schema is nil")
	}
	if c.v.maxDepth > 0 && n.depth > c.v.maxDepth {
		return n.schemaError("", fmt.Sprintf("max depth %d exceeded; schema may be cyclic", c.v.maxDepth))
	}
	if c.active[n.schema] {
		return n.schemaError("", "cyclic schema reference")
	}
	for _, r := range rules {
		if r.verify == nil {
			continue
		}
		if msg := r.verify(n.schema, c.v.strict); msg != "" {
			return n.schemaError(r.keyword, msg)
		}
	}
	c.active[n.schema] = true
	defer delete(c.active, n.schema)

	sub := joinPath(n.path, n.key)
	for _, p := range n.schema.Properties {
		if err := c.walk(node{key: p.Name, path: sub, schema: p.Schema, depth: n.depth + 1}); err != nil {
			return err
		}
	}
	if n.schema.Items != nil {
		if err := c.walk(node{key: "[]", path: sub, schema: n.schema.Items, depth: n.depth + 1}); err != nil {
			return err
		}
	}
	return nil
}
