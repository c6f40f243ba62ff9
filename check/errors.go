package check

import "fmt"

// ParamError is the panic value raised when a predicate receives a malformed
// parameter. It signals a bug in the caller (usually a malformed schema), not a
// failed check of the value.
type ParamError struct {
	Predicate string
	Param     string
	Value     any
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: invalid '%s' parameter value %v", e.Predicate, e.Param, e.Value)
}

func invalidParam(predicate, param string, v any) {
	panic(&ParamError{Predicate: predicate, Param: param, Value: v})
}
