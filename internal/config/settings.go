package config

import (
	"sort"
	"strconv"
	"strings"
)

// Settings is the immutable outcome of a resolution pass: for every key seen
// in any source, the value from the highest-precedence source holding it.
// Accessors copy; callers cannot mutate the snapshot.
type Settings struct {
	values map[string]string
	keys   []string
}

func newSettings(values map[string]string) *Settings {
	cp := make(map[string]string, len(values))
	keys := make([]string, 0, len(values))
	for key, value := range values {
		cp[key] = value
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return &Settings{values: cp, keys: keys}
}

// Get returns the value for key and whether it was present in any source.
func (s *Settings) Get(key string) (string, bool) {
	value, ok := s.values[key]
	return value, ok
}

// Value returns the value for key, or fallback when the key is absent or
// holds only whitespace.
func (s *Settings) Value(key, fallback string) string {
	if value, ok := s.values[key]; ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

// Int returns the integer value for key, or fallback when absent or not an
// integer.
func (s *Settings) Int(key string, fallback int) int {
	value, ok := s.values[key]
	if !ok {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

// Keys returns the sorted key set.
func (s *Settings) Keys() []string {
	cp := make([]string, len(s.keys))
	copy(cp, s.keys)
	return cp
}

// Len reports the number of resolved keys.
func (s *Settings) Len() int { return len(s.keys) }

// Map returns a copy of the full mapping for collaborators that want to
// iterate. Mutating the copy does not affect the snapshot.
func (s *Settings) Map() map[string]string {
	cp := make(map[string]string, len(s.values))
	for key, value := range s.values {
		cp[key] = value
	}
	return cp
}
