package config

import (
	"os"
	"sort"
)

// Entry is a single key/value assignment discovered in a source.
type Entry struct {
	Key   string
	Value string
}

// Source is an ordered origin of key/value pairs. Sources are applied in
// slice order by Resolve; position determines precedence.
type Source interface {
	// Origin identifies the source in diagnostics (a file path, "env", "flags").
	Origin() string
	// Load returns the source's assignments in discovery order. An error
	// means the whole source is unavailable and will be skipped.
	Load() ([]Entry, error)
}

type fileSource struct {
	path string
}

// FileSource reads key=value lines from path. A missing or unreadable file
// surfaces as a Load error, which Resolve treats as "source absent".
func FileSource(path string) Source {
	return fileSource{path: path}
}

func (s fileSource) Origin() string { return s.path }

func (s fileSource) Load() ([]Entry, error) {
	file, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return parseEntries(file)
}

type envSource struct {
	keys []string
}

// EnvSource exposes the named process environment variables as a source.
// Unset variables are omitted; set-but-empty variables are included so an
// explicit empty assignment can clear a file-provided value.
func EnvSource(keys ...string) Source {
	cp := make([]string, len(keys))
	copy(cp, keys)
	return envSource{keys: cp}
}

func (s envSource) Origin() string { return "env" }

func (s envSource) Load() ([]Entry, error) {
	entries := make([]Entry, 0, len(s.keys))
	for _, key := range s.keys {
		if value, ok := os.LookupEnv(key); ok {
			entries = append(entries, Entry{Key: key, Value: value})
		}
	}
	return entries, nil
}

type valuesSource struct {
	origin  string
	entries []Entry
}

// Values wraps explicit assignments (CLI flags, preset expansions) as a
// source. Keys are applied in sorted order so resolution stays deterministic
// regardless of map iteration.
func Values(origin string, values map[string]string) Source {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	entries := make([]Entry, 0, len(keys))
	for _, key := range keys {
		entries = append(entries, Entry{Key: key, Value: values[key]})
	}
	return valuesSource{origin: origin, entries: entries}
}

func (s valuesSource) Origin() string { return s.origin }

func (s valuesSource) Load() ([]Entry, error) {
	cp := make([]Entry, len(s.entries))
	copy(cp, s.entries)
	return cp, nil
}
