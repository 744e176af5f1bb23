package analyze

import (
	"reflect"
	"strings"

	"payload-binder/internal/common"
	"payload-binder/internal/match"
)

// TypeKind represents the kind of a field type.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindBasic              // int, string, bool, etc.
	TypeKindStruct             // struct type
	TypeKindPointer            // pointer to another type
	TypeKindSlice              // slice of another type
	TypeKindArray              // array of another type
	TypeKindMap                // map type
	TypeKindInterface          // interface type, any included
	TypeKindExternal           // external/opaque type (e.g., time.Time)
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindArray:
		return "array"
	case TypeKindMap:
		return "map"
	case TypeKindInterface:
		return "interface"
	case TypeKindExternal:
		return "external"
	default:
		return common.UnknownStr
	}
}

// PackageInfo holds the structs of a loaded package.
type PackageInfo struct {
	Path    string // Import path
	Name    string // Package name
	Structs []StructInfo
}

// Struct returns the struct named name.
func (p *PackageInfo) Struct(name string) (StructInfo, bool) {
	for _, s := range p.Structs {
		if s.Name == name {
			return s, true
		}
	}

	return StructInfo{}, false
}

// StructInfo describes an exported struct type.
type StructInfo struct {
	Name   string
	Fields []FieldInfo
	// Factory is the New<Name> constructor, if the package declares one.
	Factory *FactoryInfo
}

// FactoryInfo describes a constructor: func() T, func() *T or either with
// a trailing error.
type FactoryInfo struct {
	Name       string
	ReturnsPtr bool
	HasErr     bool
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name string            // Go field name
	Kind TypeKind          // Field type kind
	Tag  reflect.StructTag // Raw struct tag
	// Untyped is set for any, []any and [N]any fields.
	Untyped  bool
	Embedded bool
	Index    int
}

// Key returns the source key the field binds from: the bind tag name, the
// json tag name or the camelCase field name.
func (f FieldInfo) Key() string {
	if name := tagName(f.Tag.Get("bind")); name != "" && name != "-" {
		return name
	}

	if name := tagName(f.Tag.Get("json")); name != "" && name != "-" {
		return name
	}

	return match.ToCamel(f.Name)
}

// Skipped reports whether the field is excluded from binding.
func (f FieldInfo) Skipped() bool {
	return f.Tag.Get("json") == "-" || f.Tag.Get("bind") == "-"
}

// BindOption returns the value of a `bind:"...,name=value"` option.
func (f FieldInfo) BindOption(name string) string {
	_, opts, _ := strings.Cut(f.Tag.Get("bind"), ",")
	for _, opt := range strings.Split(opts, ",") {
		if k, v, ok := strings.Cut(strings.TrimSpace(opt), "="); ok && k == name {
			return v
		}
	}

	return ""
}

// IsUntypedList reports whether keyed elements of the field are resolved by
// naming convention.
func (f FieldInfo) IsUntypedList() bool {
	return f.Untyped && (f.Kind == TypeKindSlice || f.Kind == TypeKindArray)
}

func tagName(tag string) string {
	name, _, _ := strings.Cut(tag, ",")

	return name
}
