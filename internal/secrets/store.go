package secrets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Store is a read-only key-value store of secret values
type Store interface {
	// Lookup returns the value stored under name and whether it was present
	Lookup(name string) (string, bool)
}

// Env reads secrets from the process environment
type Env struct{}

// Lookup returns the environment variable called name
func (Env) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

// Map is an in-memory Store
type Map map[string]string

// Lookup returns the entry called name
func (m Map) Lookup(name string) (string, bool) {
	value, ok := m[name]
	return value, ok
}

// Chain looks a secret up in each store in turn. The first non-empty value wins.
type Chain []Store

// Lookup returns the first non-empty value held under name
func (c Chain) Lookup(name string) (string, bool) {
	for _, store := range c {
		if store == nil {
			continue
		}
		if value, ok := store.Lookup(name); ok && value != "" {
			return value, true
		}
	}
	return "", false
}

// ReadFile loads a secrets file into memory. Files ending in .toml are parsed
// as TOML (top-level string keys only), everything else as KEY=value lines.
func ReadFile(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading secrets file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return parseTOML(data)
	}

	values, err := godotenv.UnmarshalBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parsing secrets file %s: %w", path, err)
	}
	return Map(values), nil
}

// ReadFileIfExists behaves like ReadFile but returns an empty Map when the
// file does not exist
func ReadFileIfExists(path string) (Map, error) {
	if path == "" {
		return Map{}, nil
	}
	values, err := ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Map{}, nil
	}
	return values, err
}

func parseTOML(data []byte) (Map, error) {
	raw := make(map[string]any)
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing toml secrets: %w", err)
	}

	values := make(Map, len(raw))
	for key, value := range raw {
		// Tables and non-string values are not secrets we know how to use
		if s, ok := value.(string); ok {
			values[key] = s
		}
	}
	return values, nil
}
