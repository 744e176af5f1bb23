package options

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"payload-binder/primitive"
)

// Environment variables read by FromEnv and ApplyEnv.
const (
	EnvNamespace = "BINDER_NAMESPACE"
	EnvStrict    = "BINDER_STRICT"
	EnvLooseKeys = "BINDER_LOOSE_KEYS"
)

// CurrentVersion is the only configuration version understood.
const CurrentVersion = "1"

var namespacePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// Config is the binder configuration.
type Config struct {
	Version string `yaml:"version" json:"version"`
	// Namespace is the root prefixed to type names derived from list fields.
	Namespace string `yaml:"namespace,omitempty" json:"namespace"`
	// Strict turns error diagnostics into bind errors.
	Strict bool `yaml:"strict,omitempty" json:"strict"`
	// LooseKeys matches source keys to fields after normalization.
	LooseKeys bool `yaml:"loose_keys,omitempty" json:"loose_keys"`
	// Conversions lists the enabled scalar conversion categories.
	Conversions []string `yaml:"conversions,omitempty" json:"conversions"`
}

// Default returns the configuration used without a file.
func Default() Config {
	var c Config
	applyDefaults(&c)

	return c
}

// LoadFile loads and parses a YAML configuration file from the given path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config.
func Parse(data []byte) (*Config, error) {
	var c Config

	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&c)

	return &c, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(c *Config) {
	if c.Version == "" {
		c.Version = CurrentVersion
	}

	if len(c.Conversions) == 0 {
		c.Conversions = []string{"default"}
	}
}

// Marshal serializes a Config to YAML.
func Marshal(c *Config) ([]byte, error) {
	return yaml.Marshal(c)
}

// FromEnv returns the default configuration with environment overrides applied.
func FromEnv() (*Config, error) {
	c := Default()
	if err := c.ApplyEnv(); err != nil {
		return nil, err
	}

	return &c, nil
}

// ApplyEnv overrides c with the BINDER_* environment variables that are set.
func (c *Config) ApplyEnv() error {
	if ns, ok := os.LookupEnv(EnvNamespace); ok {
		c.Namespace = ns
	}

	for name, dst := range map[string]*bool{EnvStrict: &c.Strict, EnvLooseKeys: &c.LooseKeys} {
		raw, ok := os.LookupEnv(name)
		if !ok || raw == "" {
			continue
		}

		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", name, raw, err)
		}

		*dst = v
	}

	return nil
}

// Validate checks the configuration.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Version, validation.Required, validation.In(CurrentVersion)),
		validation.Field(&c.Namespace, validation.Match(namespacePattern)),
		validation.Field(&c.Conversions, validation.Each(validation.In(categoryNames()...))),
	)
}

// Categories returns the enabled conversion categories.
func (c Config) Categories() (primitive.CategoryEnum, error) {
	if len(c.Conversions) == 0 {
		return primitive.CategoryDefault, nil
	}

	return primitive.ParseCategories(c.Conversions...)
}

func categoryNames() []any {
	names := primitive.CategoryNames()

	out := make([]any, len(names))
	for i, name := range names {
		out[i] = name
	}

	return out
}
