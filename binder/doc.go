// Package binder populates statically declared Go structs from loosely-typed
// data: decoded JSON or YAML documents, generic maps and lists, scalars.
//
// For every source key that matches a declared field the value is classified
// as a scalar, a list or a keyed structure and stored by the field's declared
// type:
//
//   - scalars are converted to the field kind (numeric text becomes a number,
//     a number becomes text, booleans stay booleans);
//   - keyed structures become a new instance of the field's struct type, or of
//     the registered type named by a `bind:"type=..."` tag, and are bound
//     recursively; generic fields (any, map[string]any) keep them verbatim;
//   - lists are stored element by element. Keyed elements of an untyped list
//     are built as the registered type derived from the field name
//     (namespace + "." + singular, capitalized field key, so "items" under the
//     "store" namespace resolves "store.Item"); when no such type is registered
//     the raw element is kept.
//
// Problems with the data never abort a bind. They leave the affected field
// unchanged and are reported as diagnostics; WithStrict turns error
// diagnostics into a returned *BindError.
package binder
