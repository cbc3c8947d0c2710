// Package env provides the environment snapshots validated by package schema.
//
// A Source is read-only for the duration of a validation call. Map is the
// plain implementation; FromOS, ReadFiles and Layer build Maps from the
// process environment, dotenv files and combinations of both.
package env

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// Source looks up raw environment values by name.
type Source interface {
	Lookup(key string) (string, bool)
}

// Map is a string-keyed, string-valued environment snapshot.
type Map map[string]string

// Lookup implements Source.
func (m Map) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Keys returns the names in the snapshot, sorted.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FromOS returns a snapshot of the current process environment.
func FromOS() Map {
	return FromEnviron(os.Environ())
}

// FromEnviron builds a snapshot from KEY=VALUE pairs, as returned by os.Environ.
// Entries without '=' are skipped.
func FromEnviron(pairs []string) Map {
	m := make(Map, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		m[k] = v
	}
	return m
}

// ReadFiles parses dotenv files without touching the process environment.
// Values from later files override earlier ones.
func ReadFiles(paths ...string) (Map, error) {
	if len(paths) == 0 {
		return Map{}, nil
	}
	values, err := godotenv.Read(paths...)
	if err != nil {
		return nil, fmt.Errorf("failed to read env files: %w", err)
	}
	return Map(values), nil
}

// Layer merges snapshots into a new Map. Later layers override earlier ones.
func Layer(layers ...Map) Map {
	size := 0
	for _, l := range layers {
		size += len(l)
	}
	m := make(Map, size)
	for _, l := range layers {
		for k, v := range l {
			m[k] = v
		}
	}
	return m
}
