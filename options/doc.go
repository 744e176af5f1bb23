// Package options loads binder configuration from a YAML file and the
// environment.
//
// A configuration file looks like:
//
//	version: "1"
//	namespace: store
//	strict: false
//	loose_keys: true
//	conversions: [default, textual_bool]
//
// BINDER_NAMESPACE, BINDER_STRICT and BINDER_LOOSE_KEYS override the file.
package options
