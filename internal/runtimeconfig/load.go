package runtimeconfig

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/goliatone/go-mdpad/internal/validation"
)

//go:embed config.schema.json
var configSchemaDocument []byte

var configSchema = validation.MustCompile("mdpad-config.schema.json", configSchemaDocument)

// LoadFile reads a JSON config file, checks it against the config schema and
// decodes it over base. Keys missing from the file keep their base values.
func LoadFile(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("mdpad config: read %s: %w", path, err)
	}
	return Decode(data, base)
}

// Decode is LoadFile for an in-memory document.
func Decode(data []byte, base Config) (Config, error) {
	var raw any
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&raw); err != nil {
		return base, fmt.Errorf("mdpad config: decode: %w", err)
	}
	if err := configSchema.Validate(raw); err != nil {
		return base, fmt.Errorf("mdpad config: %w", err)
	}

	cfg := base
	if err := json.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("mdpad config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}
