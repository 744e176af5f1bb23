// Package registry is the closed set of target types a binder may
// instantiate by name.
//
// Nested objects whose type is only known by name (a `bind:"type=..."` tag
// or a list field resolved by naming convention) are built from a registry
// entry instead of by reflection on a type name. Entries are registered by
// hand or by the generated Register function of a models package:
//
//	reg := registry.New()
//	registry.MustRegister[store.Order](reg, "store.Order")
//	reg.MustRegisterFactory("store.Customer", store.NewCustomer)
//
// Registration is expected to finish before binding starts; lookups are safe
// for concurrent use.
package registry
