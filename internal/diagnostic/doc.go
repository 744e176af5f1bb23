// Package diagnostic provides the structured records a binding run emits
// instead of failing: declared-type lookup failures, unresolved list element
// types, scalar conversions that could not be applied and shape mismatches
// between source values and declared fields.
package diagnostic
