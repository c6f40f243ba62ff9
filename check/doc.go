// Package check provides the predicate library behind paranoia's validation
// rules: type-category tests, numeric, length and date bounds, and set
// membership over untyped Go values.
//
// Predicates are pure and total over their value argument: a value of the
// wrong category simply fails the predicate. Passing a malformed parameter
// (a NaN bound, a negative length, a date bound that is not an ISO date) is a
// programmer error and panics with a *ParamError.
package check
