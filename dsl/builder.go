package dsl

import paranoia "github.com/emavok/paranoia"

// Builder accumulates one schema node.
type Builder struct {
	s paranoia.Schema
}

func typed(t paranoia.Type) Builder { return Builder{s: paranoia.Schema{Type: t}} }

// Any returns a builder without a type constraint.
func Any() Builder { return Builder{} }

// String returns a string schema builder.
func String() Builder { return typed(paranoia.TypeString) }

// Number returns a number schema builder.
func Number() Builder { return typed(paranoia.TypeNumber) }

// Integer returns a whole-number schema builder.
func Integer() Builder { return typed(paranoia.TypeInteger) }

// Boolean returns a boolean schema builder.
func Boolean() Builder { return typed(paranoia.TypeBoolean) }

// Date returns an ISO-8601 date string schema builder.
func Date() Builder { return typed(paranoia.TypeDate) }

// Function returns a func value schema builder.
func Function() Builder { return typed(paranoia.TypeFunction) }

// Array returns an array builder whose elements must match items.
func Array(items Builder) Builder {
	b := typed(paranoia.TypeArray)
	b.s.Items = items.Schema()
	return b
}

// Object returns an object builder with the given members in order.
func Object(props ...paranoia.Property) Builder {
	b := typed(paranoia.TypeObject)
	b.s.Properties = append(paranoia.Properties{}, props...)
	return b
}

// Prop declares an object member.
func Prop(name string, b Builder) paranoia.Property {
	return paranoia.Property{Name: name, Schema: b.Schema()}
}

// From starts a builder from an existing schema. s is copied.
func From(s *paranoia.Schema) Builder {
	if s == nil {
		return Builder{}
	}
	return Builder{s: *s}
}

// Required marks the value as mandatory.
func (b Builder) Required() Builder { b.s.Required = true; return b }

// Optional clears Required.
func (b Builder) Optional() Builder { b.s.Required = false; return b }

// Min sets the inclusive lower numeric bound.
func (b Builder) Min(n float64) Builder { b.s.Min = &n; return b }

// Max sets the inclusive upper numeric bound.
func (b Builder) Max(n float64) Builder { b.s.Max = &n; return b }

// MinLength sets the minimum string length in characters.
func (b Builder) MinLength(n int) Builder { b.s.MinLength = &n; return b }

// MaxLength sets the maximum string length in characters.
func (b Builder) MaxLength(n int) Builder { b.s.MaxLength = &n; return b }

// MinDate sets the earliest accepted ISO date.
func (b Builder) MinDate(d string) Builder { b.s.MinDate = &d; return b }

// MaxDate sets the latest accepted ISO date.
func (b Builder) MaxDate(d string) Builder { b.s.MaxDate = &d; return b }

// OneOf restricts the value to the listed values.
func (b Builder) OneOf(values ...any) Builder {
	b.s.Values = append([]any{}, values...)
	return b
}

func (b Builder) Named(name string) Builder { b.s.Name = name; return b }

func (b Builder) Describe(desc string) Builder { b.s.Description = desc; return b }

// Schema returns a fresh copy of the built node.
func (b Builder) Schema() *paranoia.Schema {
	s := b.s
	return &s
}

// MustCheck returns the built schema and panics when it is malformed.
func (b Builder) MustCheck(opts ...paranoia.Option) *paranoia.Schema {
	s := b.Schema()
	if err := s.Check(opts...); err != nil {
		panic(err)
	}
	return s
}
