package paranoia

import "github.com/emavok/paranoia/check"

// Type names the value category a schema node expects.
type Type = check.Type

const (
	TypeString   = check.TypeString
	TypeNumber   = check.TypeNumber
	TypeInteger  = check.TypeInteger
	TypeBoolean  = check.TypeBoolean
	TypeArray    = check.TypeArray
	TypeObject   = check.TypeObject
	TypeDate     = check.TypeDate
	TypeFunction = check.TypeFunction
)

// Schema describes the expected shape of one position in a value tree. Nil
// pointer and slice fields mean the keyword is absent.
type Schema struct {
	Type        Type       `json:"type,omitempty" yaml:"type,omitempty"`
	Required    bool       `json:"required,omitempty" yaml:"required,omitempty"`
	Min         *float64   `json:"min,omitempty" yaml:"min,omitempty"`
	Max         *float64   `json:"max,omitempty" yaml:"max,omitempty"`
	MinLength   *int       `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength   *int       `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	MinDate     *string    `json:"minDate,omitempty" yaml:"minDate,omitempty"`
	MaxDate     *string    `json:"maxDate,omitempty" yaml:"maxDate,omitempty"`
	Values      []any      `json:"values,omitempty" yaml:"values,omitempty"`
	Properties  Properties `json:"properties,omitempty" yaml:"properties,omitempty"`
	Items       *Schema    `json:"items,omitempty" yaml:"items,omitempty"`
	Name        string     `json:"$name,omitempty" yaml:"$name,omitempty"`
	Description string     `json:"$description,omitempty" yaml:"$description,omitempty"`
}

// Property binds an object member name to its schema.
type Property struct {
	Name   string
	Schema *Schema
}

// Properties is the ordered member list of an object schema. Validation visits
// members in this order.
type Properties []Property

// Get returns the schema declared for name.
func (p Properties) Get(name string) (*Schema, bool) {
	for _, prop := range p {
		if prop.Name == name {
			return prop.Schema, true
		}
	}
	return nil, false
}

// Names returns the member names in declaration order.
func (p Properties) Names() []string {
	names := make([]string, len(p))
	for i, prop := range p {
		names[i] = prop.Name
	}
	return names
}
