package paranoia

import (
	"fmt"
	"math"
	"reflect"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/emavok/paranoia/check"
	"github.com/emavok/paranoia/internal/isodate"
)

// node is one position of the value tree paired with its schema.
type node struct {
	key    string
	path   string // path of the containing position
	schema *Schema
	value  any
	depth  int
}

func (n node) fail(name RuleName, msg, param string, bound any) ValidationErrors {
	data := map[string]any{"value": n.value}
	if param != "" {
		data[param] = bound
	}
	return ValidationErrors{{Name: name, Key: n.key, KeyPath: n.path, Message: msg, Data: data}}
}

func (n node) schemaError(keyword, msg string) *SchemaError {
	return &SchemaError{Rule: keyword, Key: n.key, KeyPath: n.path, Message: msg}
}

// rule is one entry of the fixed evaluation order. verify reports a malformed
// keyword parameter; eval runs only after verify passed.
type rule struct {
	keyword string
	verify  func(s *Schema, strict bool) string
	eval    func(v *Validator, n node) ValidationErrors
}

// rules lists the rules in evaluation order. Assigned in init since properties
// and items recurse through it.
var rules []rule

func init() {
	rules = []rule{
		{"required", nil, (*Validator).required},
		{"type", verifyType, (*Validator).typeOf},
		{"min", verifyMin, (*Validator).min},
		{"max", verifyMax, (*Validator).max},
		{"minLength", verifyMinLength, (*Validator).minLength},
		{"maxLength", verifyMaxLength, (*Validator).maxLength},
		{"minDate", verifyMinDate, (*Validator).minDate},
		{"maxDate", verifyMaxDate, (*Validator).maxDate},
		{"values", nil, (*Validator).values},
		{"properties", verifyProperties, (*Validator).properties},
		{"items", verifyItems, (*Validator).items},
	}
}

func verifyType(s *Schema, _ bool) string {
	if s.Type != "" && !s.Type.Valid() {
		return fmt.Sprintf("unknown type '%s'", s.Type)
	}
	return ""
}

func verifyMin(s *Schema, _ bool) string {
	if s.Min != nil && !finite(*s.Min) {
		return "'min' is not a valid number"
	}
	return ""
}

func verifyMax(s *Schema, _ bool) string {
	if s.Max != nil && !finite(*s.Max) {
		return "'max' is not a valid number"
	}
	return ""
}

func verifyMinLength(s *Schema, _ bool) string {
	if s.MinLength != nil && *s.MinLength < 0 {
		return "'minLength' must not be negative"
	}
	return ""
}

func verifyMaxLength(s *Schema, _ bool) string {
	if s.MaxLength != nil && *s.MaxLength < 0 {
		return "'maxLength' must not be negative"
	}
	return ""
}

func verifyMinDate(s *Schema, _ bool) string {
	if s.MinDate != nil && !isodate.Valid(*s.MinDate) {
		return "'minDate' is not a valid ISO date"
	}
	return ""
}

func verifyMaxDate(s *Schema, _ bool) string {
	if s.MaxDate != nil && !isodate.Valid(*s.MaxDate) {
		return "'maxDate' is not a valid ISO date"
	}
	return ""
}

func verifyProperties(s *Schema, strict bool) string {
	if s.Properties == nil {
		if strict && s.Type == TypeObject {
			return "object schema declares no properties"
		}
		return ""
	}
	seen := make(map[string]struct{}, len(s.Properties))
	for _, p := range s.Properties {
		if p.Schema == nil {
			return fmt.Sprintf("property '%s' has no schema", p.Name)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Sprintf("property '%s' declared twice", p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	return ""
}

func verifyItems(s *Schema, strict bool) string {
	if strict && s.Items == nil && s.Type == TypeArray {
		return "array schema declares no items"
	}
	return ""
}

func (v *Validator) required(n node) ValidationErrors {
	if !n.schema.Required || !check.IsNil(n.value) {
		return nil
	}
	return n.fail(RuleRequired, fmt.Sprintf("Property '%s' is required", n.key), "", nil)
}

func (v *Validator) typeOf(n node) ValidationErrors {
	t := n.schema.Type
	if t == "" || check.IsNil(n.value) || check.IsType(n.value, t) {
		return nil
	}
	return n.fail(RuleType, fmt.Sprintf("'%s' is of invalid type. Expected type '%s'", n.key, t), "type", t)
}

func (v *Validator) min(n node) ValidationErrors {
	if n.schema.Min == nil || !check.IsNumber(n.value) {
		return nil
	}
	bound := *n.schema.Min
	if check.IsMin(n.value, bound) {
		return nil
	}
	return n.fail(RuleMin, fmt.Sprintf("'%s' must have a minimum value of '%s'", n.key, formatNumber(bound)), "min", bound)
}

func (v *Validator) max(n node) ValidationErrors {
	if n.schema.Max == nil || !check.IsNumber(n.value) {
		return nil
	}
	bound := *n.schema.Max
	if check.IsMax(n.value, bound) {
		return nil
	}
	return n.fail(RuleMax, fmt.Sprintf("'%s' must have a maximum value of '%s'", n.key, formatNumber(bound)), "max", bound)
}

func (v *Validator) minLength(n node) ValidationErrors {
	if n.schema.MinLength == nil || !check.IsString(n.value) {
		return nil
	}
	bound := *n.schema.MinLength
	if check.IsMinLength(n.value, bound) {
		return nil
	}
	return n.fail(RuleMinLength, fmt.Sprintf("'%s' must have a minimum length of '%d' characters", n.key, bound), "minLength", bound)
}

func (v *Validator) maxLength(n node) ValidationErrors {
	if n.schema.MaxLength == nil || !check.IsString(n.value) {
		return nil
	}
	bound := *n.schema.MaxLength
	if check.IsMaxLength(n.value, bound) {
		return nil
	}
	return n.fail(RuleMaxLength, fmt.Sprintf("'%s' must have a maximum length of '%d' characters", n.key, bound), "maxLength", bound)
}

func (v *Validator) minDate(n node) ValidationErrors {
	if n.schema.MinDate == nil || !check.IsIsoDate(n.value) {
		return nil
	}
	bound := *n.schema.MinDate
	if check.IsMinDate(n.value, bound) {
		return nil
	}
	return n.fail(RuleMinDate, fmt.Sprintf("'%s' must not be before '%s'", n.key, bound), "minDate", bound)
}

func (v *Validator) maxDate(n node) ValidationErrors {
	if n.schema.MaxDate == nil || !check.IsIsoDate(n.value) {
		return nil
	}
	bound := *n.schema.MaxDate
	if check.IsMaxDate(n.value, bound) {
		return nil
	}
	return n.fail(RuleMaxDate, fmt.Sprintf("'%s' must not be after '%s'", n.key, bound), "maxDate", bound)
}

func (v *Validator) values(n node) ValidationErrors {
	allowed := n.schema.Values
	if allowed == nil || check.IsNil(n.value) || check.IsIn(n.value, allowed) {
		return nil
	}
	return n.fail(RuleValues, fmt.Sprintf("'%s' must be one of %s.", n.key, formatValues(allowed)), "values", allowed)
}

func (v *Validator) properties(n node) ValidationErrors {
	if n.schema.Properties == nil {
		return nil
	}
	sub := joinPath(n.path, n.key)
	var errs ValidationErrors
	for _, p := range n.schema.Properties {
		errs = append(errs, v.validate(node{
			key:    p.Name,
			path:   sub,
			schema: p.Schema,
			value:  member(n.value, p.Name),
			depth:  n.depth + 1,
		})...)
	}
	return errs
}

func (v *Validator) items(n node) ValidationErrors {
	if n.schema.Items == nil {
		return nil
	}
	elems, ok := elements(n.value)
	if !ok {
		return nil
	}
	sub := joinPath(n.path, n.key)
	var errs ValidationErrors
	for i, e := range elems {
		errs = append(errs, v.validate(node{
			key:    indexKey(i),
			path:   sub,
			schema: n.schema.Items,
			value:  e,
			depth:  n.depth + 1,
		})...)
	}
	return errs
}

// member looks name up in a string-keyed map. Anything else, and a missing
// key, yields nil.
func member(value any, name string) any {
	switch m := value.(type) {
	case nil:
		return nil
	case map[string]any:
		return m[name]
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String || rv.IsNil() {
		return nil
	}
	e := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
	if !e.IsValid() {
		return nil
	}
	return e.Interface()
}

func elements(value any) ([]any, bool) {
	if s, ok := value.([]any); ok {
		return s, true
	}
	if !check.IsArray(value) {
		return nil, false
	}
	rv := reflect.ValueOf(value)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func formatNumber(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func formatValues(values []any) string {
	b, err := json.Marshal(values)
	if err != nil {
		return fmt.Sprint(values)
	}
	return string(b)
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
