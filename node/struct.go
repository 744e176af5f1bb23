package node

import (
	"reflect"
	"slices"
	"strings"
	"sync"

	"payload-binder/internal/match"
)

// Field describes one bindable field of a struct type.
type Field struct {
	// Name is the Go field name.
	Name string
	// Key is the source key the field binds from.
	Key string
	// Index is the field index sequence for reflect.Value.FieldByIndex.
	Index []int
	Type  reflect.Type
	// TypeName is the registered type a keyed value is built as (bind:"type=...").
	TypeName string
	// ElemName is the registered type list elements are built as (bind:"elem=...").
	ElemName string
	// OmitEmpty drops zero values from the representation.
	OmitEmpty bool
}

// Fields is the cached field set of a struct type.
type Fields struct {
	list   []Field
	byKey  map[string]int
	byName map[string]int
	byNorm map[string]int
}

var fieldsCache sync.Map // reflect.Type -> *Fields

// FieldsOf returns the bindable fields of struct type t, in declaration
// order. Promoted fields of embedded structs are included; unexported fields
// and fields tagged `json:"-"` or `bind:"-"` are not.
func FieldsOf(t reflect.Type) *Fields {
	t = Base(t)
	if cached, ok := fieldsCache.Load(t); ok {
		return cached.(*Fields)
	}

	fs := &Fields{
		byKey:  map[string]int{},
		byName: map[string]int{},
		byNorm: map[string]int{},
	}

	if t != nil && t.Kind() == reflect.Struct {
		var opaque [][]int

		for _, sf := range reflect.VisibleFields(t) {
			if within(sf.Index, opaque) {
				continue
			}

			// a tagged embedded struct binds as one field, without promotion
			if sf.Anonymous && Base(sf.Type).Kind() == reflect.Struct && tagName(sf) != "" {
				opaque = append(opaque, sf.Index)
			}

			f, ok := describe(sf)
			if !ok {
				continue
			}

			// the first field declared with a key wins
			if _, dup := fs.byKey[f.Key]; dup {
				continue
			}

			i := len(fs.list)
			fs.list = append(fs.list, f)
			fs.byKey[f.Key] = i
			fs.byName[f.Name] = i

			norm := match.NormalizeIdent(f.Key)
			if _, dup := fs.byNorm[norm]; !dup {
				fs.byNorm[norm] = i
			}
		}
	}

	actual, _ := fieldsCache.LoadOrStore(t, fs)

	return actual.(*Fields)
}

// All returns the fields in declaration order.
func (fs *Fields) All() []Field {
	return fs.list
}

// Len returns the number of fields.
func (fs *Fields) Len() int {
	return len(fs.list)
}

// Lookup finds the field a source key binds to: by exact key first, then by
// Go field name. With loose set, keys are also compared after normalization,
// so "sample_int" finds the field keyed "sampleInt".
func (fs *Fields) Lookup(key string, loose bool) (Field, bool) {
	if i, ok := fs.byKey[key]; ok {
		return fs.list[i], true
	}

	if i, ok := fs.byName[key]; ok {
		return fs.list[i], true
	}

	if loose {
		if i, ok := fs.byNorm[match.NormalizeIdent(key)]; ok {
			return fs.list[i], true
		}
	}

	return Field{}, false
}

// FieldValue returns the field at index within struct value v, allocating
// nil embedded pointers on the way when v is settable.
func FieldValue(v reflect.Value, index []int) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Ptr {
			if v.IsNil() {
				if !v.CanSet() {
					return reflect.Value{}, false
				}

				v.Set(reflect.New(v.Type().Elem()))
			}

			v = v.Elem()
		}

		v = v.Field(x)
	}

	return v, true
}

func describe(sf reflect.StructField) (Field, bool) {
	if !sf.IsExported() {
		return Field{}, false
	}

	// embedded structs contribute their promoted fields instead
	if sf.Anonymous && Base(sf.Type).Kind() == reflect.Struct {
		if tagName(sf) == "" {
			return Field{}, false
		}
	}

	if sf.Tag.Get("json") == "-" || sf.Tag.Get("bind") == "-" {
		return Field{}, false
	}

	jsonName, jsonOpts := splitTag(sf.Tag.Get("json"))
	bindName, bindOpts := splitTag(sf.Tag.Get("bind"))

	f := Field{
		Name:  sf.Name,
		Index: sf.Index,
		Type:  sf.Type,
	}

	switch {
	case bindName != "":
		f.Key = bindName
	case jsonName != "":
		f.Key = jsonName
	default:
		f.Key = match.ToCamel(sf.Name)
	}

	for _, opt := range strings.Split(jsonOpts, ",") {
		if opt == "omitempty" || opt == "omitzero" {
			f.OmitEmpty = true
		}
	}

	for _, opt := range strings.Split(bindOpts, ",") {
		name, value, _ := strings.Cut(strings.TrimSpace(opt), "=")
		switch name {
		case "type":
			f.TypeName = value
		case "elem":
			f.ElemName = value
		case "omitempty":
			f.OmitEmpty = true
		}
	}

	return f, true
}

func within(index []int, prefixes [][]int) bool {
	for _, prefix := range prefixes {
		if len(index) > len(prefix) && slices.Equal(index[:len(prefix)], prefix) {
			return true
		}
	}

	return false
}

func tagName(sf reflect.StructField) string {
	name, _ := splitTag(sf.Tag.Get("json"))

	return name
}

// splitTag separates the name of a struct tag value from its options.
func splitTag(tag string) (name, opts string) {
	name, opts, _ = strings.Cut(tag, ",")

	return name, opts
}
