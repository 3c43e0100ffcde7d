// Package validate implements the validator contract spec.md §6.4
// describes plus the two rules the spec names by name: a missing `other`
// arm in a plural/selectordinal, and an unsafe ICU variable.
package validate

import (
	"github.com/vippsas/icumark"
	"github.com/vippsas/icumark/source"
)

// Severity mirrors spec.md §6.4's ValueDiagnostic severities.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

// Diagnostic is spec.md §6.4's ValueDiagnostic: an optional span, a
// severity, a description, and optional help text.
type Diagnostic struct {
	Span        *source.Span
	Severity    Severity
	Description string
	Help        string
}

// Validator inspects a MessageValue and reports zero or more diagnostics.
// Diagnostics never influence whether the compiled tree was produced
// (spec.md §7's last paragraph).
type Validator interface {
	Validate(mv icumark.MessageValue) []Diagnostic
}

// DefaultValidators is the standard rule set: the two rules spec.md names.
var DefaultValidators = []Validator{
	MissingOtherArmRule{},
	UnsafeVariableRule{},
}

// RunAll applies every validator in vs to mv and concatenates their
// diagnostics in order.
func RunAll(mv icumark.MessageValue, vs []Validator) []Diagnostic {
	var all []Diagnostic
	for _, v := range vs {
		all = append(all, v.Validate(mv)...)
	}
	return all
}
