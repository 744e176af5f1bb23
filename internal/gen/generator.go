package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"slices"
	"strings"
	"text/template"

	"payload-binder/binder"
	"payload-binder/internal/analyze"
	"payload-binder/internal/match"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// RegistryImport is the import path of the registry package.
	RegistryImport string
	// Filename is the name of the generated file.
	Filename string
	// OutputDir receives an .unformatted.go sidecar when formatting fails.
	OutputDir string
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		RegistryImport: "payload-binder/registry",
		Filename:       "registry_gen.go",
	}
}

// Generator renders registration files.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "registry_gen.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// registration is one MustRegister call of the template.
type registration struct {
	Type    string
	Name    string
	Factory string
	Comment string
}

type templateData struct {
	PackageName    string
	Namespace      string
	RegistryImport string
	Entries        []registration
}

var registryTemplate = template.Must(template.New("registry").Parse(`// Code generated by binder gen. DO NOT EDIT.

package {{.PackageName}}

import "{{.RegistryImport}}"

// Register adds the {{.PackageName}} types to r under the {{printf "%q" .Namespace}} namespace.
func Register(r *registry.Registry) {
{{- range .Entries}}
	// {{.Comment}}
	{{if .Factory}}r.MustRegisterFactory({{printf "%q" .Name}}, {{.Factory}}){{else}}registry.MustRegister[{{.Type}}](r, {{printf "%q" .Name}}){{end}}
{{- end}}
}
`))

// RenderRegistry renders the registration file of pkg with the default
// configuration.
func RenderRegistry(pkg *analyze.PackageInfo, namespace string) (*GeneratedFile, error) {
	return NewGenerator(DefaultGeneratorConfig()).RenderRegistry(pkg, namespace)
}

// RenderRegistry renders the registration file of pkg. Types are registered
// as namespace + "." + type name; an empty namespace uses the package name.
func (g *Generator) RenderRegistry(pkg *analyze.PackageInfo, namespace string) (*GeneratedFile, error) {
	if namespace == "" {
		namespace = pkg.Name
	}

	data := &templateData{
		PackageName:    pkg.Name,
		Namespace:      namespace,
		RegistryImport: g.config.RegistryImport,
	}

	for _, s := range pkg.Structs {
		entry := registration{
			Type:    s.Name,
			Name:    analyze.QualifiedName(namespace, s.Name),
			Comment: s.Name,
		}

		if s.Factory != nil {
			entry.Factory = s.Factory.Name
		}

		var notes []string

		if lists := conventionKeys(namespace, s.Name); len(lists) > 0 {
			notes = append(notes, "lists "+strings.Join(lists, ", "))
		}

		if bound := boundFrom(pkg, namespace, entry.Name); len(bound) > 0 {
			notes = append(notes, "bound from "+strings.Join(bound, ", "))
		}

		if len(notes) > 0 {
			entry.Comment += ": " + strings.Join(notes, "; ")
		}

		data.Entries = append(data.Entries, entry)
	}

	var buf bytes.Buffer
	if err := registryTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	// Format the generated code
	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, g.config.Filename, buf.Bytes())
		}
		// Return unformatted code for debugging
		return &GeneratedFile{
			Filename: g.config.Filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w", err)
	}

	return &GeneratedFile{
		Filename: g.config.Filename,
		Content:  formatted,
	}, nil
}

// conventionKeys returns the list field keys whose convention name is the
// type: the plural camelCase and snake_case forms of its name.
func conventionKeys(namespace, typeName string) []string {
	want := analyze.QualifiedName(namespace, typeName)

	var keys []string

	for _, key := range []string{
		match.Plural(match.ToCamel(typeName)),
		match.Plural(match.ToSnake(typeName)),
	} {
		if !slices.Contains(keys, key) && binder.ConventionName(namespace, key) == want {
			keys = append(keys, key)
		}
	}

	return keys
}

// boundFrom lists the fields of pkg ("Order.items") that build the type
// named name: untyped lists by convention or elem option, and any fields
// by type option.
func boundFrom(pkg *analyze.PackageInfo, namespace, name string) []string {
	var out []string

	for _, s := range pkg.Structs {
		for _, f := range s.Fields {
			if f.Skipped() {
				continue
			}

			var target string

			switch {
			case f.IsUntypedList():
				target = f.BindOption("elem")
				if target == "" {
					target = binder.ConventionName(namespace, f.Key())
				}
			case f.Untyped:
				target = f.BindOption("type")
			}

			if target == name {
				out = append(out, s.Name+"."+f.Key())
			}
		}
	}

	return out
}
