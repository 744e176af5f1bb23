package binder

import (
	"fmt"
	"reflect"

	"payload-binder/internal/diagnostic"
	"payload-binder/node"
)

// build returns a new instance of res, as a pointer, bound from raw. An
// unresolved res returns a copy of raw.
func (r *run) build(res resolved, raw any, s slot) (reflect.Value, bool) {
	if !res.ok() {
		return reflect.ValueOf(detach(raw)), true
	}

	inst, err := res.instantiate()
	if err != nil {
		r.report(diagnostic.SeverityError, CodeDeclaredTypeLookup,
			fmt.Sprintf("cannot build %s: %v", res.name, err), s, nil)

		return reflect.Value{}, false
	}

	r.bindStruct(inst.Elem(), raw, s.path)

	return inst, true
}

// buildList builds the elements of an untyped list. Keyed elements become
// instances of the type named by the field's elem option or, without one,
// derived from the field key; unresolved keyed elements and all other
// elements are kept as they are. It fails only when the elem option names an
// unregistered type.
func (r *run) buildList(value any, s slot) ([]any, bool) {
	out := make([]any, 0, node.Len(value))

	var (
		res    resolved
		looked bool
	)

	for i, elem := range node.Elements(value) {
		if node.Classify(elem) != node.KindKeyed {
			out = append(out, detach(elem))
			continue
		}

		if !looked {
			looked = true

			if s.elemName == "" {
				res = r.resolveConvention(s)
			} else if declared, ok := r.resolveDeclared(s.elemName, s); ok {
				res = declared
			} else {
				return nil, false
			}
		}

		inst, ok := r.build(res, elem, slot{
			key:   s.key,
			path:  fmt.Sprintf("%s[%d]", s.path, i),
			owner: s.owner,
		})
		if !ok {
			out = append(out, detach(elem))
			continue
		}

		out = append(out, inst.Interface())
	}

	return out, true
}
