package paranoia

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// RuleName identifies the rule that produced a ValidationError. The values are
// stable wire names.
type RuleName string

const (
	RuleRequired  RuleName = "ValidatorRequired"
	RuleType      RuleName = "ValidatorType"
	RuleMin       RuleName = "ValidatorMin"
	RuleMax       RuleName = "ValidatorMax"
	RuleMinLength RuleName = "ValidatorMinLength"
	RuleMaxLength RuleName = "ValidatorMaxLength"
	RuleMinDate   RuleName = "ValidatorMinDate"
	RuleMaxDate   RuleName = "ValidatorMaxDate"
	RuleValues    RuleName = "ValidatorValues"
)

var (
	// ErrValidation is matched by every *Failure.
	ErrValidation = errors.New("paranoia: validation failed")
	// ErrInvalidSchema is matched by every *SchemaError.
	ErrInvalidSchema = errors.New("paranoia: invalid schema")
)

// ValidationError is a single constraint violation.
type ValidationError struct {
	Name    RuleName       `json:"name"`
	Key     string         `json:"key"`
	KeyPath string         `json:"keyPath"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

// Path returns the absolute path of the offending position, for example
// "$.user.name" or "$.tags[2]".
func (e ValidationError) Path() string { return joinPath(e.KeyPath, e.Key) }

func (e ValidationError) Error() string { return e.Message }

// ValidationErrors is the ordered result of a validation run.
type ValidationErrors []ValidationError

// Error summarizes the first few errors.
func (errs ValidationErrors) Error() string {
	if len(errs) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(errs), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at %s", errs[i].Name, errs[i].Path())
	}
	if len(errs) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(errs))
	}
	return b.String()
}

// At returns the errors reported for the position at path.
func (errs ValidationErrors) At(path string) ValidationErrors {
	var out ValidationErrors
	for _, e := range errs {
		if e.Path() == path {
			out = append(out, e)
		}
	}
	return out
}

// ByRule returns the errors produced by rule.
func (errs ValidationErrors) ByRule(rule RuleName) ValidationErrors {
	var out ValidationErrors
	for _, e := range errs {
		if e.Name == rule {
			out = append(out, e)
		}
	}
	return out
}

// AsValidationErrors extracts ValidationErrors from err using errors.As.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	if err == nil {
		return nil, false
	}
	var errs ValidationErrors
	if errors.As(err, &errs) {
		return errs, true
	}
	return nil, false
}

// Failure is returned by AssertValidation when a value does not conform.
type Failure struct {
	Errors ValidationErrors
	Value  any
	Schema *Schema
}

func (f *Failure) Error() string {
	return "paranoia: validation failed: " + f.Errors.Error()
}

// HTTPStatus maps a failure to 422 Unprocessable Entity.
func (f *Failure) HTTPStatus() int { return http.StatusUnprocessableEntity }

func (f *Failure) Unwrap() []error { return []error{ErrValidation, f.Errors} }

// AsFailure extracts a *Failure from err.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// SchemaError reports a schema the engine cannot evaluate. Validate panics with
// it; Schema.Check and the loaders return it.
type SchemaError struct {
	Rule    string // keyword at fault, e.g. "min" or "properties"
	Key     string
	KeyPath string
	Message string
	Cause   error
}

func (e *SchemaError) Error() string {
	p := joinPath(e.KeyPath, e.Key)
	if p == "" {
		p = "$"
	}
	if e.Rule != "" {
		return fmt.Sprintf("paranoia: invalid schema at %s: %s: %s", p, e.Rule, e.Message)
	}
	return fmt.Sprintf("paranoia: invalid schema at %s: %s", p, e.Message)
}

func (e *SchemaError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrInvalidSchema, e.Cause}
	}
	return []error{ErrInvalidSchema}
}

// AsSchemaError extracts a *SchemaError from err.
func AsSchemaError(err error) (*SchemaError, bool) {
	var se *SchemaError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
