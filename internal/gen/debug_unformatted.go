package gen

import "strings"

// debugName keeps the sidecar a .go file so editors highlight it, without
// colliding with real output: "registry_gen.go" -> "registry_gen.unformatted.go".
func debugName(filename string) string {
	return strings.TrimSuffix(filename, ".go") + ".unformatted.go"
}
