package registry

import (
	"errors"
	"fmt"
	"path"
	"reflect"
	"runtime"
	"strings"
)

var (
	ErrIsNotAFactory         = errors.New("provided function is not a recognizable factory")
	ErrFactoryIsNotAFunction = errors.New("provided factory is not a function")
	ErrDoublePointer         = errors.New("factory function does not support double pointers")
	ErrNilInstance           = errors.New("factory returned a nil instance")
)

var errorType = reflect.TypeFor[error]()

// Factory is a parsed constructor of one struct type.
type Factory struct {
	// Type is the struct type the factory builds.
	Type reflect.Type
	// PackageAlias and Name locate the constructor, e.g. "store" and "NewOrder".
	PackageAlias string
	Name         string
	ReturnsPtr   bool
	HasErr       bool

	fn reflect.Value
}

// ParseFactory inspects the provided function and returns a Factory if it is
// a valid constructor.
//
// Supports signatures:
//   - func() T
//   - func() *T
//   - func() (T, error)
//   - func() (*T, error)
func ParseFactory(fn any) (Factory, error) {
	fnVal := reflect.ValueOf(fn)
	if !fnVal.IsValid() || fnVal.Kind() != reflect.Func {
		return Factory{}, ErrFactoryIsNotAFunction
	}

	if fnVal.IsNil() {
		return Factory{}, ErrIsNotAFactory
	}

	fnType := fnVal.Type()
	if fnType.NumIn() != 0 || fnType.NumOut() == 0 || fnType.IsVariadic() {
		return Factory{}, ErrIsNotAFactory
	}

	out := fnType.Out(0)
	if out.Kind() == reflect.Ptr && out.Elem().Kind() == reflect.Ptr {
		return Factory{}, ErrDoublePointer
	}

	factory := Factory{
		Type:       out,
		ReturnsPtr: out.Kind() == reflect.Ptr,
		fn:         fnVal,
	}

	if factory.ReturnsPtr {
		factory.Type = out.Elem()
	}

	if factory.Type.Kind() != reflect.Struct {
		return Factory{}, fmt.Errorf("%w: builds %s", ErrNotStruct, out)
	}

	if fnPC := runtime.FuncForPC(fnVal.Pointer()); fnPC != nil {
		// "payload-binder/store.NewOrder" -> "store", "NewOrder"
		_, base := path.Split(fnPC.Name())
		if alias, name, ok := strings.Cut(base, "."); ok {
			factory.PackageAlias, factory.Name = alias, name
		} else {
			factory.Name = base
		}
	}

	switch fnType.NumOut() {
	default:
		return Factory{}, ErrIsNotAFactory

	case 1:
		return factory, nil

	case 2:
		if !isError(fnType.Out(1)) {
			return Factory{}, ErrIsNotAFactory
		}

		factory.HasErr = true

		return factory, nil
	}
}

// zeroFactory builds a zero value of t.
func zeroFactory(t reflect.Type) Factory {
	return Factory{Type: t, ReturnsPtr: true}
}

// New calls the constructor and returns a pointer to the new instance.
func (f Factory) New() (reflect.Value, error) {
	if !f.fn.IsValid() {
		return reflect.New(f.Type), nil
	}

	out := f.fn.Call(nil)
	if f.HasErr && !out[1].IsNil() {
		return reflect.Value{}, out[1].Interface().(error)
	}

	if !f.ReturnsPtr {
		ptr := reflect.New(f.Type)
		ptr.Elem().Set(out[0])

		return ptr, nil
	}

	if out[0].IsNil() {
		return reflect.Value{}, ErrNilInstance
	}

	return out[0], nil
}

// String returns the qualified constructor name, or the built type for
// zero-value factories.
func (f Factory) String() string {
	switch {
	case f.Name == "":
		return "new(" + f.Type.String() + ")"
	case f.PackageAlias == "":
		return f.Name
	default:
		return f.PackageAlias + "." + f.Name
	}
}

func isError(t reflect.Type) bool {
	return t.Kind() == reflect.Interface && t.Implements(errorType)
}
