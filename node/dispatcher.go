package node

import (
	"reflect"

	"payload-binder/primitive"
)

// Dispatch selects the binding strategy for a declared field type. Pointer
// types dispatch on their base type.
func Dispatch(dst reflect.Type) DispatcherEnum {
	_, dst = PtrDepthAndBase(dst)
	if dst == nil {
		return DispatcherUnknown
	}

	if primitive.FromReflectType(dst) != 0 {
		return DispatcherPrimitive
	}

	switch dst.Kind() {
	case reflect.Interface:
		if dst.NumMethod() == 0 {
			return DispatcherGeneric
		}
	case reflect.Slice, reflect.Array:
		return DispatcherSlice
	case reflect.Map:
		if dst.Key().Kind() != reflect.String {
			return DispatcherUnknown
		}

		if IsGeneric(dst.Elem()) {
			return DispatcherGeneric
		}

		return DispatcherMap
	case reflect.Struct:
		return DispatcherStruct
	}

	return DispatcherUnknown
}

// IsGeneric reports whether t is the empty interface.
func IsGeneric(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Interface && t.NumMethod() == 0
}

// Base strips every pointer level from t.
func Base(t reflect.Type) reflect.Type {
	_, base := PtrDepthAndBase(t)

	return base
}

// PtrDepthAndBase returns the pointer depth and the final base type.
func PtrDepthAndBase(t reflect.Type) (depth int, base reflect.Type) {
	depth, base = 0, t
	for base != nil && base.Kind() == reflect.Ptr {
		depth++
		base = base.Elem()
	}

	return
}

// Settle walks v through its pointer levels, allocating nil pointers, and
// returns the settable base value.
func Settle(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}

		v = v.Elem()
	}

	return v
}
