// Package analyze loads a models package and lists what registry codegen
// needs to know about it.
//
// It uses golang.org/x/tools/go/packages with go/types to find the exported
// struct types of one package, their fields and their constructors.
//
// Key types:
//   - PackageInfo: package path, name and structs
//   - StructInfo: struct name, fields and optional constructor
//   - FieldInfo: field name, kind and tags
package analyze
