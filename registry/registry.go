package registry

import (
	"cmp"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"payload-binder/internal/match"
)

var (
	ErrEmptyName   = errors.New("type name is empty")
	ErrDuplicate   = errors.New("type name is already registered")
	ErrNotStruct   = errors.New("registered type is not a struct")
	ErrUnknownType = errors.New("type is not registered")
)

// minSimilarity is the lowest score Suggest reports.
const minSimilarity = 0.5

// Entry is one registered type.
type Entry struct {
	// Name is the qualified name, e.g. "store.OrderItem".
	Name    string
	Type    reflect.Type
	Factory Factory
}

// Registry maps qualified type names to struct types and their factories.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*Entry
	byType map[reflect.Type]*Entry
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		byName: map[string]*Entry{},
		byType: map[reflect.Type]*Entry{},
	}
}

// Register adds struct type T under name. Instances are zero values.
func Register[T any](r *Registry, name string) error {
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %s is %s", ErrNotStruct, name, t)
	}

	return r.add(name, zeroFactory(t))
}

// MustRegister is like Register but panics if the registration fails.
func MustRegister[T any](r *Registry, name string) {
	if err := Register[T](r, name); err != nil {
		panic(err)
	}
}

// RegisterFactory adds the type built by fn under name; see ParseFactory for
// the accepted signatures.
func (r *Registry) RegisterFactory(name string, fn any) error {
	factory, err := ParseFactory(fn)
	if err != nil {
		return fmt.Errorf("register %q: %w", name, err)
	}

	return r.add(name, factory)
}

// MustRegisterFactory is like RegisterFactory but panics if the registration fails.
func (r *Registry) MustRegisterFactory(name string, fn any) {
	if err := r.RegisterFactory(name, fn); err != nil {
		panic(err)
	}
}

func (r *Registry) add(name string, factory Factory) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.byName[name]; ok {
		return fmt.Errorf("%w: %s (%s)", ErrDuplicate, name, prev.Type)
	}

	entry := &Entry{Name: name, Type: factory.Type, Factory: factory}
	r.byName[name] = entry

	// the first name registered for a type owns its factory
	if _, ok := r.byType[factory.Type]; !ok {
		r.byType[factory.Type] = entry
	}

	return nil
}

// Lookup returns the struct type registered under name.
func (r *Registry) Lookup(name string) (reflect.Type, bool) {
	entry, ok := r.entry(name)
	if !ok {
		return nil, false
	}

	return entry.Type, true
}

// Entry returns the entry registered under name.
func (r *Registry) Entry(name string) (Entry, bool) {
	entry, ok := r.entry(name)
	if !ok {
		return Entry{}, false
	}

	return *entry, true
}

func (r *Registry) entry(name string) (*Entry, bool) {
	if r == nil {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.byName[name]

	return entry, ok
}

// New builds a new instance of the type registered under name and returns
// a pointer to it.
func (r *Registry) New(name string) (reflect.Value, error) {
	entry, ok := r.entry(name)
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrUnknownType, name)
	}

	v, err := entry.Factory.New()
	if err != nil {
		return reflect.Value{}, fmt.Errorf("new %s via %s: %w", name, entry.Factory, err)
	}

	return v, nil
}

// FactoryFor returns the factory registered for struct type t, if any.
func (r *Registry) FactoryFor(t reflect.Type) (Factory, bool) {
	if r == nil {
		return Factory{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.byType[t]
	if !ok {
		return Factory{}, false
	}

	return entry.Factory, true
}

// NameOf returns the name t was first registered under.
func (r *Registry) NameOf(t reflect.Type) (string, bool) {
	if r == nil {
		return "", false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.byType[t]
	if !ok {
		return "", false
	}

	return entry.Name, true
}

// Names returns every registered name in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Len returns the number of registered names.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byName)
}

// Suggest returns up to n registered names most similar to name, best first.
// Names are compared without their namespace; those scoring below one half
// are never suggested.
func (r *Registry) Suggest(name string, n int) []string {
	if n <= 0 {
		return nil
	}

	type scored struct {
		name  string
		score float64
	}

	var candidates []scored

	for _, candidate := range r.Names() {
		score := match.Similarity(localName(name), localName(candidate))
		if score >= minSimilarity {
			candidates = append(candidates, scored{candidate, score})
		}
	}

	slices.SortStableFunc(candidates, func(a, b scored) int {
		return cmp.Compare(b.score, a.score)
	})

	out := make([]string, 0, min(n, len(candidates)))
	for _, c := range candidates[:min(n, len(candidates))] {
		out = append(out, c.name)
	}

	return out
}

// localName strips the namespace from a qualified name: "store.Order" -> "Order".
func localName(name string) string {
	return name[strings.LastIndexByte(name, '.')+1:]
}
