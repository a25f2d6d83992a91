package runtimeconfig

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML file over DefaultConfig and validates the result.
// Environment references like ${PAGEBUILDER_DSN} are expanded first.
func LoadFile(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Config{}, fmt.Errorf("pagebuilder config: path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("pagebuilder config: read %s: %w", path, err)
	}
	return Load(bytes.NewReader(data))
}

// Load decodes YAML from r over DefaultConfig. Unknown keys are rejected.
func Load(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	raw, err := io.ReadAll(r)
	if err != nil {
		return Config{}, err
	}
	expanded := os.ExpandEnv(string(raw))
	if strings.TrimSpace(expanded) != "" {
		decoder := yaml.NewDecoder(strings.NewReader(expanded))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("pagebuilder config: decode: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
