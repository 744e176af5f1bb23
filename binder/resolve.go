package binder

import (
	"fmt"
	"reflect"

	"payload-binder/internal/diagnostic"
	"payload-binder/internal/match"
	"payload-binder/registry"
)

const maxSuggestions = 3

// resolved is the outcome of a type resolution: a type to instantiate, or
// unresolved when typ is nil.
type resolved struct {
	name    string
	typ     reflect.Type
	factory *registry.Factory
}

func (res resolved) ok() bool {
	return res.typ != nil
}

func (res resolved) instantiate() (reflect.Value, error) {
	if res.factory != nil {
		return res.factory.New()
	}

	return reflect.New(res.typ), nil
}

// ConventionName derives the type name a list field's keyed elements are
// built as: the field key singularized and capitalized, prefixed with the
// namespace root. "items" under "store" gives "store.Item" and
// "order_items" gives "store.OrderItem". Without a namespace root there is
// no name.
func ConventionName(namespace, fieldKey string) string {
	if namespace == "" || fieldKey == "" {
		return ""
	}

	return namespace + "." + match.Capitalize(match.Singular(fieldKey))
}

// resolveStruct resolves a field declared with struct type t. The declared
// type always resolves; a factory registered for t builds its instances.
func (r *run) resolveStruct(t reflect.Type) resolved {
	res := resolved{name: r.typeName(t), typ: t}
	if factory, ok := r.b.registry.FactoryFor(t); ok {
		res.factory = &factory
	}

	return res
}

// resolveDeclared looks up a type named by a field's bind tag. A missing
// name is a declared type lookup failure.
func (r *run) resolveDeclared(name string, s slot) (resolved, bool) {
	entry, ok := r.b.registry.Entry(name)
	if !ok {
		r.report(diagnostic.SeverityError, CodeDeclaredTypeLookup,
			fmt.Sprintf("declared type %q is not registered", name), s,
			r.b.registry.Suggest(name, maxSuggestions))

		return resolved{}, false
	}

	return resolved{name: entry.Name, typ: entry.Type, factory: &entry.Factory}, true
}

// resolveConvention looks up the type derived from the field key. Not
// finding one is a normal outcome, reported at info level.
func (r *run) resolveConvention(s slot) resolved {
	name := ConventionName(r.b.namespace, s.key)
	if name == "" {
		r.report(diagnostic.SeverityInfo, CodeUnresolvedType,
			"no namespace root configured; keeping raw elements", s, nil)

		return resolved{}
	}

	entry, ok := r.b.registry.Entry(name)
	if !ok {
		r.report(diagnostic.SeverityInfo, CodeUnresolvedType,
			fmt.Sprintf("type %q is not registered; keeping raw elements", name), s,
			r.b.registry.Suggest(name, maxSuggestions))

		return resolved{}
	}

	return resolved{name: entry.Name, typ: entry.Type, factory: &entry.Factory}
}
