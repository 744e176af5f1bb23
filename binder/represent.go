package binder

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"gopkg.in/yaml.v3"

	"payload-binder/node"
)

var (
	timeType     = reflect.TypeFor[time.Time]()
	durationType = reflect.TypeFor[time.Duration]()
)

// ToRepresentation renders the declared fields of v, a struct or a non-nil
// pointer to one, as a keyed structure under their binding keys. Nested
// structs become maps, lists become []any, time.Time becomes RFC 3339 text
// and time.Duration its text form. Binding the result onto a fresh instance
// of the same type reproduces its scalar fields.
func ToRepresentation(v any) (map[string]any, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr && !rv.IsNil() {
		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Struct || rv.Type() == timeType {
		return nil, fmt.Errorf("%w, got %T", ErrInvalidTarget, v)
	}

	return representStruct(rv), nil
}

// ToJSON encodes the representation of v as JSON.
func ToJSON(v any) ([]byte, error) {
	rep, err := ToRepresentation(v)
	if err != nil {
		return nil, err
	}

	return json.Marshal(rep)
}

// ToYAML encodes the representation of v as YAML.
func ToYAML(v any) ([]byte, error) {
	rep, err := ToRepresentation(v)
	if err != nil {
		return nil, err
	}

	return yaml.Marshal(rep)
}

func representStruct(rv reflect.Value) map[string]any {
	out := map[string]any{}

	for _, f := range node.FieldsOf(rv.Type()).All() {
		fv, ok := node.FieldValue(rv, f.Index)
		if !ok {
			continue
		}

		if f.OmitEmpty && fv.IsZero() {
			continue
		}

		out[f.Key] = represent(fv)
	}

	return out
}

func represent(rv reflect.Value) any {
	if !rv.IsValid() {
		return nil
	}

	switch rv.Type() {
	case timeType:
		return rv.Interface().(time.Time).Format(time.RFC3339Nano)
	case durationType:
		return rv.Interface().(time.Duration).String()
	}

	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return nil
		}

		return represent(rv.Elem())
	case reflect.Struct:
		return representStruct(rv)
	case reflect.Slice:
		if rv.IsNil() {
			return nil
		}

		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return rv.Bytes()
		}

		return representList(rv)
	case reflect.Array:
		return representList(rv)
	case reflect.Map:
		if rv.IsNil() {
			return nil
		}

		out := make(map[string]any, rv.Len())

		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = represent(iter.Value())
		}

		return out
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.String:
		return rv.String()
	}

	// channels and functions have no representation
	return nil
}

func representList(rv reflect.Value) []any {
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = represent(rv.Index(i))
	}

	return out
}
