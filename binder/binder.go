package binder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"

	"gopkg.in/yaml.v3"

	"payload-binder/internal/diagnostic"
	"payload-binder/node"
	"payload-binder/primitive"
	"payload-binder/registry"
)

// Binder binds loosely-typed data onto structs. It is immutable after New
// and safe for concurrent use.
type Binder struct {
	registry   *registry.Registry
	namespace  string
	strict     bool
	looseKeys  bool
	categories primitive.CategoryEnum
	logger     *slog.Logger
	reporter   func(Diagnostic)
}

// New returns a binder resolving named types through reg. A nil reg leaves
// every named type unresolved.
func New(reg *registry.Registry, opts ...Option) *Binder {
	b := &Binder{
		registry:   reg,
		categories: primitive.CategoryDefault,
		logger:     slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Namespace returns the namespace root of the convention path.
func (b *Binder) Namespace() string {
	return b.namespace
}

// Registry returns the registry named types are resolved through.
func (b *Binder) Registry() *registry.Registry {
	return b.registry
}

// Bind populates target, a non-nil pointer to struct, from source. A nil
// source leaves target unchanged. Source maps and lists are copied, never
// shared with target. Data problems are recovered from locally;
// only a strict binder returns them, as a *BindError.
func (b *Binder) Bind(target, source any) error {
	_, err := b.BindDiagnostics(target, source)

	return err
}

// BindDiagnostics is Bind returning the diagnostic records of the call.
func (b *Binder) BindDiagnostics(target, source any) (Diagnostics, error) {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return Diagnostics{}, fmt.Errorf("%w, got %T", ErrInvalidTarget, target)
	}

	r := &run{b: b}

	if source != nil {
		if kind := node.Classify(source); kind != node.KindKeyed {
			r.report(diagnostic.SeverityWarning, CodeInvalidSource,
				fmt.Sprintf("source is %s, not a keyed structure", describeValue(source)),
				slot{owner: r.typeName(rv.Elem().Type())}, nil)
		} else {
			r.bindStruct(rv.Elem(), source, "")
		}
	}

	if b.strict && r.diags.HasErrors() {
		return r.diags, &BindError{Diagnostics: r.diags}
	}

	return r.diags, nil
}

// BindJSON decodes data, keeping numbers as json.Number, and binds the
// document onto target.
func (b *Binder) BindJSON(target any, data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var source any
	if err := dec.Decode(&source); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}

	return b.Bind(target, source)
}

// BindYAML decodes data and binds the document onto target.
func (b *Binder) BindYAML(target any, data []byte) error {
	var source any
	if err := yaml.Unmarshal(data, &source); err != nil {
		return fmt.Errorf("decode yaml: %w", err)
	}

	return b.Bind(target, source)
}

// slot is the place a source value is stored into.
type slot struct {
	// key is the source key of the enclosing field; it drives the convention path.
	key string
	// typeName and elemName are the field's bind tag options.
	typeName string
	elemName string
	// path locates the value in the source document, e.g. "items[1].sku".
	path string
	// owner names the struct type holding the field.
	owner string
}

// run holds the state of one bind call.
type run struct {
	b     *Binder
	diags Diagnostics
}

func (r *run) report(severity diagnostic.Severity, code diagnostic.Code, message string, s slot, suggestions []string) {
	d := diagnostic.New(severity, code, message, s.owner, s.path)
	d.Suggestions = suggestions

	r.diags.Add(d)

	level := slog.LevelDebug

	switch severity {
	case diagnostic.SeverityError:
		level = slog.LevelWarn
	case diagnostic.SeverityWarning:
		level = slog.LevelInfo
	}

	r.b.logger.LogAttrs(context.Background(), level, message,
		slog.String("code", string(code)),
		slog.String("type", s.owner),
		slog.String("field", s.path),
	)

	if r.b.reporter != nil {
		r.b.reporter(d)
	}
}

// typeName names t in diagnostics: its registered name when it has one.
func (r *run) typeName(t reflect.Type) string {
	if name, ok := r.b.registry.NameOf(t); ok {
		return name
	}

	return t.String()
}

// bindStruct binds the entries of a keyed source onto dst, a settable struct
// value. Source keys with no matching field are dropped.
func (r *run) bindStruct(dst reflect.Value, src any, path string) {
	fields := node.FieldsOf(dst.Type())
	owner := r.typeName(dst.Type())

	for key, value := range node.Entries(src) {
		f, ok := fields.Lookup(key, r.b.looseKeys)
		if !ok {
			continue
		}

		fv, ok := node.FieldValue(dst, f.Index)
		if !ok || !fv.CanSet() {
			continue
		}

		r.assign(fv, value, slot{
			key:      f.Key,
			typeName: f.TypeName,
			elemName: f.ElemName,
			path:     joinPath(path, f.Key),
			owner:    owner,
		})
	}
}

// assign stores value into dst by its shape and reports whether dst was written.
func (r *run) assign(dst reflect.Value, value any, s slot) bool {
	if value != nil && dst.Kind() == reflect.Ptr && node.Base(dst.Type()).Kind() == reflect.Interface {
		dst = node.Settle(dst)
	}

	switch node.Classify(value) {
	case node.KindKeyed:
		return r.assignKeyed(dst, value, s)
	case node.KindList:
		return r.assignList(dst, value, s)
	default:
		return r.assignScalar(dst, value, s)
	}
}

func (r *run) assignScalar(dst reflect.Value, value any, s slot) bool {
	if value == nil {
		dst.SetZero()
		return true
	}

	t := dst.Type()

	switch node.Dispatch(t) {
	case node.DispatcherPrimitive:
		// numbers and numeric text reach the field as integers
		tmp := reflect.New(node.Base(t)).Elem()
		if err := primitive.Assign(tmp, primitive.Coerce(value), r.b.categories); err != nil {
			r.report(diagnostic.SeverityWarning, CodeScalarConversion, err.Error(), s, nil)
			return false
		}

		place(dst, tmp)

		return true

	case node.DispatcherGeneric:
		if t.Kind() == reflect.Interface {
			dst.Set(reflect.ValueOf(primitive.Coerce(value)))
			return true
		}
	}

	r.report(diagnostic.SeverityWarning, CodeShapeMismatch,
		fmt.Sprintf("scalar %s cannot be stored in a %s field", describeValue(value), t), s, nil)

	return false
}

func (r *run) assignKeyed(dst reflect.Value, value any, s slot) bool {
	t := dst.Type()

	switch node.Dispatch(t) {
	case node.DispatcherStruct:
		inst, ok := r.build(r.resolveStruct(node.Base(t)), value, s)
		if !ok {
			return false
		}

		place(dst, inst)

		return true

	case node.DispatcherGeneric:
		if node.Base(t).Kind() == reflect.Map {
			place(dst, reflect.ValueOf(genericMap(value)))
			return true
		}

		if s.typeName == "" {
			dst.Set(reflect.ValueOf(detach(value)))
			return true
		}

		res, ok := r.resolveDeclared(s.typeName, s)
		if !ok {
			return false
		}

		inst, ok := r.build(res, value, s)
		if !ok {
			return false
		}

		dst.Set(inst)

		return true

	case node.DispatcherMap:
		return r.assignMap(dst, value, s)
	}

	r.report(diagnostic.SeverityError, CodeDeclaredTypeLookup,
		fmt.Sprintf("object cannot be stored in a %s field", t), s, nil)

	return false
}

func (r *run) assignMap(dst reflect.Value, value any, s slot) bool {
	mt := node.Base(dst.Type())
	m := reflect.MakeMapWithSize(mt, node.Len(value))

	for key, elem := range node.Entries(value) {
		ev := reflect.New(mt.Elem()).Elem()
		if !r.assign(ev, elem, slot{key: key, path: joinPath(s.path, key), owner: s.owner}) {
			continue
		}

		m.SetMapIndex(reflect.ValueOf(key).Convert(mt.Key()), ev)
	}

	place(dst, m)

	return true
}

func (r *run) assignList(dst reflect.Value, value any, s slot) bool {
	t := dst.Type()
	base := node.Base(t)

	switch node.Dispatch(t) {
	case node.DispatcherGeneric:
		if t.Kind() != reflect.Interface {
			break
		}

		list, ok := r.buildList(value, s)
		if !ok {
			return false
		}

		dst.Set(reflect.ValueOf(list))

		return true

	case node.DispatcherSlice:
		if node.IsGeneric(base.Elem()) {
			list, ok := r.buildList(value, s)
			if !ok {
				return false
			}

			place(dst, untypedList(base, list))

			return true
		}

		place(dst, r.typedList(base, value, s))

		return true
	}

	r.report(diagnostic.SeverityWarning, CodeShapeMismatch,
		fmt.Sprintf("list cannot be stored in a %s field", t), s, nil)

	return false
}

// typedList builds a slice or array of base from the elements of value.
// Arrays take as many elements as they hold.
func (r *run) typedList(base reflect.Type, value any, s slot) reflect.Value {
	var out reflect.Value

	n := node.Len(value)
	if base.Kind() == reflect.Array {
		out = reflect.New(base).Elem()
		n = min(n, base.Len())
	} else {
		out = reflect.MakeSlice(base, n, n)
	}

	for i, elem := range node.Elements(value) {
		if i >= n {
			break
		}

		r.assign(out.Index(i), elem, slot{
			key:      s.key,
			typeName: s.elemName,
			path:     fmt.Sprintf("%s[%d]", s.path, i),
			owner:    s.owner,
		})
	}

	return out
}

// untypedList fits built elements into base, a slice or array of any.
// Arrays take as many elements as they hold.
func untypedList(base reflect.Type, list []any) reflect.Value {
	if base.Kind() != reflect.Array {
		return reflect.ValueOf(list)
	}

	out := reflect.New(base).Elem()
	for i, elem := range list[:min(len(list), base.Len())] {
		if elem != nil {
			out.Index(i).Set(reflect.ValueOf(elem))
		}
	}

	return out
}

// place stores v into dst, allocating the pointer levels dst has over v.
func place(dst, v reflect.Value) {
	for dst.Type() != v.Type() && dst.Kind() == reflect.Ptr {
		if v.Type() == dst.Type().Elem() && v.CanAddr() {
			dst.Set(v.Addr())
			return
		}

		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}

		dst = dst.Elem()
	}

	if v.Type() != dst.Type() && v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	// named generic maps and lists
	if v.Type() != dst.Type() && v.Type().ConvertibleTo(dst.Type()) {
		v = v.Convert(dst.Type())
	}

	dst.Set(v)
}

// genericMap copies the entries of a keyed value into a map[string]any.
func genericMap(value any) map[string]any {
	m := make(map[string]any, node.Len(value))
	for key, elem := range node.Entries(value) {
		m[key] = detach(elem)
	}

	return m
}

// detach deep-copies the maps and lists of a raw source value, so writes
// through the target never reach the source document.
func detach(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, elem := range x {
			out[k] = detach(elem)
		}

		return out
	case []any:
		out := make([]any, len(x))
		for i, elem := range x {
			out[i] = detach(elem)
		}

		return out
	}

	return v
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}

	return path + "." + key
}

func describeValue(v any) string {
	switch node.Classify(v) {
	case node.KindList:
		return "a list"
	case node.KindKeyed:
		return "an object"
	}

	return fmt.Sprintf("%q (%T)", primitive.Text(v), v)
}
