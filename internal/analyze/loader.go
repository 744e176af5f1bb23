package analyze

import (
	"errors"
	"fmt"
	"go/types"
	"reflect"
	"strings"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

var ErrNoPackage = errors.New("pattern matched no package")

// LoadStructs loads the package matched by pattern (e.g. "./store",
// "payload-binder/warehouse") and lists its exported struct types in name
// order.
func LoadStructs(pattern string) (*PackageInfo, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
	}

	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	switch len(pkgs) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNoPackage, pattern)
	case 1:
		return processPackage(pkgs[0].PkgPath, pkgs[0].Name, pkgs[0].Types), nil
	default:
		return nil, fmt.Errorf("pattern %s matched %d packages, want one", pattern, len(pkgs))
	}
}

// processPackage extracts the exported structs of a type-checked package.
func processPackage(pkgPath, pkgName string, pkg *types.Package) *PackageInfo {
	info := &PackageInfo{
		Path: pkgPath,
		Name: pkgName,
	}

	scope := pkg.Scope()
	for _, name := range scope.Names() {
		// Only process exported type names (not variables, constants, functions)
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !typeName.Exported() || typeName.IsAlias() {
			continue
		}

		named, ok := typeName.Type().(*types.Named)
		if !ok || named.TypeParams().Len() > 0 {
			continue
		}

		st, ok := named.Underlying().(*types.Struct)
		if !ok {
			continue
		}

		info.Structs = append(info.Structs, StructInfo{
			Name:    name,
			Fields:  structFields(st),
			Factory: findFactory(scope, named),
		})
	}

	return info
}

// structFields extracts the exported fields of a struct type.
func structFields(st *types.Struct) []FieldInfo {
	var fields []FieldInfo

	for i := range st.NumFields() {
		field := st.Field(i)
		if !field.Exported() {
			continue
		}

		kind, untyped := classify(field.Type())

		fields = append(fields, FieldInfo{
			Name:     field.Name(),
			Kind:     kind,
			Tag:      reflect.StructTag(st.Tag(i)),
			Untyped:  untyped,
			Embedded: field.Embedded(),
			Index:    i,
		})
	}

	return fields
}

// classify returns the kind of t and whether t is any or a list of any.
func classify(t types.Type) (TypeKind, bool) {
	switch tt := t.(type) {
	case *types.Basic:
		return TypeKindBasic, false
	case *types.Pointer:
		return TypeKindPointer, false
	case *types.Slice:
		return TypeKindSlice, isEmptyInterface(tt.Elem())
	case *types.Array:
		return TypeKindArray, isEmptyInterface(tt.Elem())
	case *types.Map:
		return TypeKindMap, false
	case *types.Interface:
		return TypeKindInterface, tt.Empty()
	case *types.Struct:
		return TypeKindStruct, false
	case *types.Alias:
		return classify(types.Unalias(tt))
	case *types.Named:
		switch tt.Underlying().(type) {
		case *types.Basic:
			return TypeKindBasic, false
		case *types.Struct:
			if tt.Obj().Pkg() != nil && tt.Obj().Pkg().Path() == "time" {
				return TypeKindExternal, false
			}

			return TypeKindStruct, false
		}

		kind, _ := classify(tt.Underlying())

		return kind, false
	}

	return TypeKindUnknown, false
}

func isEmptyInterface(t types.Type) bool {
	iface, ok := types.Unalias(t).(*types.Interface)

	return ok && iface.Empty()
}

// findFactory looks for a New<Type> function with a constructor signature.
func findFactory(scope *types.Scope, named *types.Named) *FactoryInfo {
	name := "New" + named.Obj().Name()

	fn, ok := scope.Lookup(name).(*types.Func)
	if !ok {
		return nil
	}

	sig, ok := fn.Type().(*types.Signature)
	if !ok || sig.Params().Len() != 0 || sig.Variadic() || sig.TypeParams().Len() > 0 {
		return nil
	}

	results := sig.Results()
	if results.Len() == 0 || results.Len() > 2 {
		return nil
	}

	factory := &FactoryInfo{Name: name}

	out := results.At(0).Type()
	if ptr, ok := out.(*types.Pointer); ok {
		factory.ReturnsPtr = true
		out = ptr.Elem()
	}

	if !types.Identical(out, named) {
		return nil
	}

	if results.Len() == 2 {
		if !isErrorType(results.At(1).Type()) {
			return nil
		}

		factory.HasErr = true
	}

	return factory
}

func isErrorType(t types.Type) bool {
	return types.Identical(t, types.Universe.Lookup("error").Type())
}

// QualifiedName joins a namespace and a type name: "store" and "Order" give
// "store.Order".
func QualifiedName(namespace, name string) string {
	if namespace == "" {
		return name
	}

	return strings.TrimSuffix(namespace, ".") + "." + name
}
