// Package gen renders the registration file of a models package.
//
// Generation uses text/template + go/format. The output declares
//
//	func Register(r *registry.Registry)
//
// registering every exported struct of the package under its namespace,
// through its New<Type> constructor when the package declares one. Each
// entry is annotated with the list field keys that resolve to it by naming
// convention and the fields of the package that bind it.
package gen
