package config

import (
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
)

// ErrNotResolved is returned by Get and Current before the first Resolve.
var ErrNotResolved = errors.New("config: settings not resolved")

// debugSentinel is the LOG_LEVEL value that switches the resolver into
// diagnostic mode, compared case-insensitively.
const debugSentinel = "debug"

// Resolver builds Settings snapshots from ordered sources and publishes them
// atomically. One Resolver is shared for the life of the process; Resolve may
// be called again to reload, and readers of Get always see either the old or
// the new snapshot in full.
type Resolver struct {
	logger  *slog.Logger
	debug   atomic.Bool
	current atomic.Pointer[Settings]
}

// NewResolver constructs a Resolver that reports diagnostics through logger.
// A nil logger discards diagnostics.
func NewResolver(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{logger: logger.With(slog.String("component", "config"))}
}

// Resolve applies sources in increasing precedence order and publishes the
// result. Later sources fully overwrite earlier values per key. Unavailable
// sources and malformed lines are skipped; Resolve never fails.
//
// Diagnostic mode turns on when cliDebug is set or once a LOG_LEVEL=debug
// assignment is applied, and stays on for the remainder of the process.
// While active, every key application is reported with its origin.
func (r *Resolver) Resolve(sources []Source, cliDebug bool) *Settings {
	if cliDebug {
		r.debug.Store(true)
	}

	working := make(map[string]string)
	for _, source := range sources {
		entries, err := source.Load()
		if err != nil {
			if r.debug.Load() {
				r.logger.Debug("source skipped", slog.String("origin", source.Origin()), slog.String("reason", err.Error()))
			}
			continue
		}
		for _, entry := range entries {
			working[entry.Key] = entry.Value
			if strings.EqualFold(entry.Key, KeyLogLevel) && strings.EqualFold(strings.TrimSpace(entry.Value), debugSentinel) {
				r.debug.Store(true)
			}
			if r.debug.Load() {
				r.logger.Info("setting applied",
					slog.String("key", entry.Key),
					slog.String("origin", source.Origin()),
				)
			}
		}
	}

	snapshot := newSettings(working)
	r.current.Store(snapshot)
	return snapshot
}

// Get reads a single setting from the last published snapshot. The second
// return reports key presence. ErrNotResolved surfaces use before Resolve.
func (r *Resolver) Get(key string) (string, bool, error) {
	snapshot := r.current.Load()
	if snapshot == nil {
		return "", false, ErrNotResolved
	}
	value, ok := snapshot.Get(key)
	return value, ok, nil
}

// Current returns the last published snapshot.
func (r *Resolver) Current() (*Settings, error) {
	snapshot := r.current.Load()
	if snapshot == nil {
		return nil, ErrNotResolved
	}
	return snapshot, nil
}

// Diagnostic reports whether the resolver has entered diagnostic mode.
func (r *Resolver) Diagnostic() bool {
	return r.debug.Load()
}
