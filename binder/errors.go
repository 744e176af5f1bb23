package binder

import (
	"errors"

	"payload-binder/internal/diagnostic"
)

var (
	// ErrInvalidTarget is returned when the bind target is not a non-nil
	// pointer to a struct.
	ErrInvalidTarget = errors.New("bind target must be a non-nil pointer to struct")
	// ErrDeclaredTypeLookup matches a *BindError holding a declared type
	// lookup failure.
	ErrDeclaredTypeLookup = errors.New("declared type lookup failed")
)

type (
	// Diagnostics holds the diagnostic records of one bind call.
	Diagnostics = diagnostic.Diagnostics
	// Diagnostic is a single diagnostic record.
	Diagnostic = diagnostic.Diagnostic
)

// Diagnostic codes.
const (
	CodeDeclaredTypeLookup = diagnostic.CodeDeclaredTypeLookup
	CodeUnresolvedType     = diagnostic.CodeUnresolvedType
	CodeScalarConversion   = diagnostic.CodeScalarConversion
	CodeShapeMismatch      = diagnostic.CodeShapeMismatch
	CodeInvalidSource      = diagnostic.CodeInvalidSource
)

// BindError is returned by a strict binder when a bind produced error
// diagnostics. Fields that did bind stay bound.
type BindError struct {
	Diagnostics Diagnostics
}

func (e *BindError) Error() string {
	if err := e.Diagnostics.Error(); err != nil {
		return "bind: " + err.Error()
	}

	return "bind: no error diagnostics"
}

// Is reports whether target is ErrDeclaredTypeLookup and the error holds a
// declared type lookup failure.
func (e *BindError) Is(target error) bool {
	if target != ErrDeclaredTypeLookup {
		return false
	}

	for _, d := range e.Diagnostics.Errors {
		if d.Code == CodeDeclaredTypeLookup {
			return true
		}
	}

	return false
}
