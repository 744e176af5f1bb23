package node

import (
	"cmp"
	"fmt"
	"iter"
	"maps"
	"reflect"
	"slices"
	"time"
)

var timeType = reflect.TypeFor[time.Time]()

// Classify reports the shape of a source value. List-ness is checked before
// keyed-ness: slices and arrays are lists, maps and structs are keyed and
// everything else, nil included, is a scalar. Byte slices are scalars.
func Classify(v any) ValueKind {
	switch v.(type) {
	case nil:
		return KindScalar
	case []any:
		return KindList
	case map[string]any:
		return KindKeyed
	}

	rv, ok := indirect(reflect.ValueOf(v))
	if !ok {
		return KindScalar
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return KindScalar
		}

		return KindList
	case reflect.Map:
		return KindKeyed
	case reflect.Struct:
		if rv.Type() == timeType {
			return KindScalar
		}

		return KindKeyed
	}

	return KindScalar
}

// Entries iterates the named entries of a keyed value. Map entries come in
// key order; struct entries come in field order under their binding keys.
// Non-keyed values yield nothing.
func Entries(v any) iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if m, ok := v.(map[string]any); ok {
			for _, k := range slices.Sorted(maps.Keys(m)) {
				if !yield(k, m[k]) {
					return
				}
			}

			return
		}

		rv, ok := indirect(reflect.ValueOf(v))
		if !ok {
			return
		}

		switch rv.Kind() {
		case reflect.Map:
			keys := rv.MapKeys()
			names := make([]string, len(keys))

			for i, k := range keys {
				names[i] = fmt.Sprint(k.Interface())
			}

			order := make([]int, len(keys))
			for i := range order {
				order[i] = i
			}

			slices.SortStableFunc(order, func(a, b int) int { return cmp.Compare(names[a], names[b]) })

			for _, i := range order {
				if !yield(names[i], rv.MapIndex(keys[i]).Interface()) {
					return
				}
			}
		case reflect.Struct:
			if rv.Type() == timeType {
				return
			}

			for _, f := range FieldsOf(rv.Type()).All() {
				fv, ok := FieldValue(rv, f.Index)
				if !ok {
					continue
				}

				if !yield(f.Key, fv.Interface()) {
					return
				}
			}
		}
	}
}

// Elements iterates the elements of a list value. Non-list values yield
// nothing.
func Elements(v any) iter.Seq2[int, any] {
	return func(yield func(int, any) bool) {
		if list, ok := v.([]any); ok {
			for i, e := range list {
				if !yield(i, e) {
					return
				}
			}

			return
		}

		if Classify(v) != KindList {
			return
		}

		rv, _ := indirect(reflect.ValueOf(v))
		for i := range rv.Len() {
			if !yield(i, rv.Index(i).Interface()) {
				return
			}
		}
	}
}

// Len returns the number of entries or elements of a keyed or list value,
// and 0 for scalars.
func Len(v any) int {
	if Classify(v) == KindScalar {
		return 0
	}

	rv, _ := indirect(reflect.ValueOf(v))
	if rv.Kind() == reflect.Struct {
		return FieldsOf(rv.Type()).Len()
	}

	return rv.Len()
}

// indirect follows pointers and interfaces down to a concrete value.
func indirect(rv reflect.Value) (reflect.Value, bool) {
	for rv.IsValid() && (rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}, false
		}

		rv = rv.Elem()
	}

	return rv, rv.IsValid()
}
