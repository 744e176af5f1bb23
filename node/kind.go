package node

//go:generate go tool stringer -type=DispatcherEnum,ValueKind -output=kind_string.go

// DispatcherEnum names the binding strategy of a declared field type.
type DispatcherEnum int

const (
	DispatcherUnknown DispatcherEnum = iota
	// DispatcherPrimitive: a builtin scalar, a named scalar, time.Time or time.Duration.
	DispatcherPrimitive
	// DispatcherGeneric: any or map[string]any, which hold source values verbatim.
	DispatcherGeneric
	DispatcherSlice
	// DispatcherMap: map[string]V with a concrete V.
	DispatcherMap
	DispatcherStruct

	// DispatcherTotal is a constant that represents the total number of kinds defined
	DispatcherTotal = int(iota)
)

// ValueKind is the shape of a loosely-typed source value.
type ValueKind int

const (
	// KindScalar: nil, a number, a bool, text or a time.
	KindScalar ValueKind = iota
	// KindList: an ordered, zero-indexed sequence.
	KindList
	// KindKeyed: a collection of named entries.
	KindKeyed
)
