package check

// Type names the value category a schema node expects.
type Type string

const (
	TypeString   Type = "string"
	TypeNumber   Type = "number"
	TypeInteger  Type = "integer"
	TypeBoolean  Type = "boolean"
	TypeArray    Type = "array"
	TypeObject   Type = "object"
	TypeDate     Type = "date"
	TypeFunction Type = "function"
)

// Types lists every supported Type in declaration order.
var Types = []Type{
	TypeString, TypeNumber, TypeInteger, TypeBoolean,
	TypeArray, TypeObject, TypeDate, TypeFunction,
}

// Valid reports whether t is one of the supported types.
func (t Type) Valid() bool {
	for _, k := range Types {
		if t == k {
			return true
		}
	}
	return false
}

func (t Type) String() string { return string(t) }
