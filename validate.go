package paranoia

import "fmt"

// Option configures a Validator.
type Option func(*Validator)

// WithStrict makes an object schema without properties, or an array schema
// without items, a schema error instead of being skipped.
func WithStrict(on bool) Option {
	return func(v *Validator) { v.strict = on }
}

// WithMaxDepth bounds the number of nested schema nodes visited on one path.
// Exceeding it is reported as a schema error, which turns a cyclic schema
// into a diagnostic instead of a stack overflow. Zero means unbounded.
func WithMaxDepth(n int) Option {
	return func(v *Validator) {
		if n < 0 {
			n = 0
		}
		v.maxDepth = n
	}
}

// Validator evaluates schemas against values. It is immutable after New and
// safe for concurrent use.
type Validator struct {
	strict   bool
	maxDepth int
}

// New returns a Validator configured by opts.
func New(opts ...Option) *Validator {
	v := &Validator{}
	for _, o := range opts {
		if o != nil {
			o(v)
		}
	}
	return v
}

var defaultValidator = New()

// Validate checks value against schema and returns every violation found, or
// nil when value conforms. A malformed schema panics with *SchemaError.
func (v *Validator) Validate(schema *Schema, value any) ValidationErrors {
	return v.validate(node{key: RootKey, schema: schema, value: value, depth: 1})
}

// AssertValidation is Validate returning a *Failure for a non-conforming value.
func (v *Validator) AssertValidation(value any, schema *Schema) error {
	errs := v.Validate(schema, value)
	if !HasValidationErrors(errs) {
		return nil
	}
	return &Failure{Errors: errs, Value: value, Schema: schema}
}

func (v *Validator) validate(n node) ValidationErrors {
	if n.schema == nil {
		panic(n.schemaError("", "schema is nil"))
	}
	if v.maxDepth > 0 && n.depth > v.maxDepth {
		panic(n.schemaError("", fmt.Sprintf("max depth %d exceeded; schema may be cyclic", v.maxDepth)))
	}
	var errs ValidationErrors
	for _, r := range rules {
		if r.verify != nil {
			if msg := r.verify(n.schema, v.strict); msg != "" {
				panic(n.schemaError(r.keyword, msg))
			}
		}
		errs = append(errs, r.eval(v, n)...)
	}
	return errs
}

// Validate checks value against schema with the default permissive Validator.
func Validate(schema *Schema, value any) ValidationErrors {
	return defaultValidator.Validate(schema, value)
}

// AssertValidation returns nil when value conforms to schema and a *Failure
// otherwise.
func AssertValidation(value any, schema *Schema) error {
	return defaultValidator.AssertValidation(value, schema)
}

// HasValidationErrors reports whether a validation result holds any error.
func HasValidationErrors(errs ValidationErrors) bool { return len(errs) > 0 }
