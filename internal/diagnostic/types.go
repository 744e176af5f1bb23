package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"payload-binder/internal/common"
)

// Code identifies the kind of a diagnostic.
type Code string

const (
	// CodeDeclaredTypeLookup: a nested object arrived at a field whose
	// declared type cannot hold it, or whose declared type name is unknown.
	CodeDeclaredTypeLookup Code = "declared_type_lookup"
	// CodeUnresolvedType: no registered type matched a list element by
	// naming convention; the raw element was kept.
	CodeUnresolvedType Code = "unresolved_type"
	// CodeScalarConversion: a scalar could not be converted to the field kind.
	CodeScalarConversion Code = "scalar_conversion"
	// CodeShapeMismatch: a list or object arrived where the declared field
	// cannot take one.
	CodeShapeMismatch Code = "shape_mismatch"
	// CodeInvalidSource: the top-level source is not a keyed structure.
	CodeInvalidSource Code = "invalid_source"
)

// Diagnostics holds all diagnostic records of one binding run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic record.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this kind of diagnostic.
	Code Code
	// Message is the human-readable description.
	Message string
	// Type names the target type being bound (if any).
	Type string
	// FieldPath locates the field in the source document, e.g. "items[1].sku".
	FieldPath string
	// Suggestions are registered type names close to an unresolved one.
	Suggestions []string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Add files d under its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// New builds a diagnostic record.
func New(severity Severity, code Code, message, typeName, fieldPath string) Diagnostic {
	return Diagnostic{
		Severity:  severity,
		Code:      code,
		Message:   message,
		Type:      typeName,
		FieldPath: fieldPath,
	}
}

// Len returns the number of records of every severity.
func (d *Diagnostics) Len() int {
	return len(d.Errors) + len(d.Warnings) + len(d.Infos)
}

// All returns every record, errors first.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, d.Len())
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)

	return append(out, d.Infos...)
}

// WithCode returns the records carrying code, in severity order.
func (d *Diagnostics) WithCode(code Code) []Diagnostic {
	var out []Diagnostic

	for _, diag := range d.All() {
		if diag.Code == code {
			out = append(out, diag)
		}
	}

	return out
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Error returns a combined error from all error diagnostics, or nil.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string:
// "[store.Order] customer: [declared_type_lookup] message".
func (d Diagnostic) String() string {
	var prefix []string
	if d.Type != "" {
		prefix = append(prefix, "["+d.Type+"]")
	}

	if d.FieldPath != "" {
		prefix = append(prefix, d.FieldPath)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
