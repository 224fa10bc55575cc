package config_test

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"scribe/internal/config"
)

func writeSourceFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write source file: %v", err)
	}
	return path
}

func TestResolvePrecedencePairwise(t *testing.T) {
	// Three sources sharing SHARED; the contract must hold for every pair
	// i<j, not just adjacent ones.
	low := config.Values("low", map[string]string{"SHARED": "low", "ONLY_LOW": "a"})
	mid := config.Values("mid", map[string]string{"SHARED": "mid", "ONLY_MID": "b"})
	high := config.Values("high", map[string]string{"SHARED": "high", "ONLY_HIGH": "c"})

	pairs := [][]config.Source{
		{low, mid},
		{low, high},
		{mid, high},
		{low, mid, high},
	}
	wants := []string{"mid", "high", "high", "high"}

	for i, sources := range pairs {
		resolver := config.NewResolver(nil)
		settings := resolver.Resolve(sources, false)
		got, ok := settings.Get("SHARED")
		if !ok {
			t.Fatalf("pair %d: SHARED missing", i)
		}
		if got != wants[i] {
			t.Errorf("pair %d: SHARED = %q, want %q", i, got, wants[i])
		}
	}

	// Union: keys unique to any source survive.
	resolver := config.NewResolver(nil)
	settings := resolver.Resolve([]config.Source{low, mid, high}, false)
	for _, key := range []string{"ONLY_LOW", "ONLY_MID", "ONLY_HIGH"} {
		if _, ok := settings.Get(key); !ok {
			t.Errorf("expected %s in resolved settings", key)
		}
	}
}

func TestResolveEmptySources(t *testing.T) {
	resolver := config.NewResolver(nil)
	settings := resolver.Resolve(nil, false)
	if settings.Len() != 0 {
		t.Fatalf("expected empty settings, got %d keys", settings.Len())
	}
}

func TestResolveSkipsMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist.env")
	valid := writeSourceFile(t, "valid.env", "FOO=bar\nBAZ=qux\n")

	resolver := config.NewResolver(nil)
	settings := resolver.Resolve([]config.Source{
		config.FileSource(missing),
		config.FileSource(valid),
	}, false)

	if settings.Len() != 2 {
		t.Fatalf("expected exactly the valid file's pairs, got keys %v", settings.Keys())
	}
	if got, _ := settings.Get("FOO"); got != "bar" {
		t.Errorf("FOO = %q, want bar", got)
	}
}

func TestResolveSkipsMalformedLines(t *testing.T) {
	path := writeSourceFile(t, "mixed.env", "GOOD=1\nNOT A PAIR\n# comment\n\n=nokey\nALSO_GOOD = 2 \n")

	resolver := config.NewResolver(nil)
	settings := resolver.Resolve([]config.Source{config.FileSource(path)}, false)

	if got, _ := settings.Get("GOOD"); got != "1" {
		t.Errorf("GOOD = %q, want 1", got)
	}
	if got, _ := settings.Get("ALSO_GOOD"); got != "2" {
		t.Errorf("ALSO_GOOD = %q, want 2", got)
	}
	if settings.Len() != 2 {
		t.Errorf("expected 2 keys, got %v", settings.Keys())
	}
}

func TestResolveUserFileOverridesProjectFile(t *testing.T) {
	project := writeSourceFile(t, "scribe.env", "HUGGINGFACE_TOKEN=proj-token\n")
	user := writeSourceFile(t, "config.env", "HUGGINGFACE_TOKEN=user-token\n")

	resolver := config.NewResolver(nil)
	resolver.Resolve([]config.Source{
		config.FileSource(project),
		config.FileSource(user),
	}, false)

	got, ok, err := resolver.Get("HUGGINGFACE_TOKEN")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !ok || got != "user-token" {
		t.Fatalf("HUGGINGFACE_TOKEN = %q (present=%v), want user-token", got, ok)
	}
}

func TestGetBeforeResolve(t *testing.T) {
	resolver := config.NewResolver(nil)
	if _, _, err := resolver.Get("ANY"); !errors.Is(err, config.ErrNotResolved) {
		t.Fatalf("expected ErrNotResolved, got %v", err)
	}
	if _, err := resolver.Current(); !errors.Is(err, config.ErrNotResolved) {
		t.Fatalf("expected ErrNotResolved from Current, got %v", err)
	}
}

func TestResolveIdempotent(t *testing.T) {
	sources := []config.Source{
		config.Values("a", map[string]string{"K1": "v1", "K2": "v2"}),
		config.Values("b", map[string]string{"K2": "v2b"}),
	}

	first := config.NewResolver(nil).Resolve(sources, false)
	second := config.NewResolver(nil).Resolve(sources, false)

	if !reflect.DeepEqual(first.Map(), second.Map()) {
		t.Fatalf("resolving identical sources twice differed: %v vs %v", first.Map(), second.Map())
	}
	if !reflect.DeepEqual(first.Keys(), second.Keys()) {
		t.Fatalf("key order differed: %v vs %v", first.Keys(), second.Keys())
	}
}

func diagnosticLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestResolveDebugFlagEmitsDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	resolver := config.NewResolver(diagnosticLogger(&buf))
	resolver.Resolve([]config.Source{
		config.Values("fileA", map[string]string{"K1": "v1"}),
		config.Values("fileB", map[string]string{"K1": "v2"}),
	}, true)

	out := buf.String()
	if count := strings.Count(out, "setting applied"); count != 2 {
		t.Fatalf("expected 2 diagnostic lines, got %d:\n%s", count, out)
	}
	if !strings.Contains(out, "origin=fileB") {
		t.Errorf("diagnostics missing overriding origin: %s", out)
	}
}

func TestResolveQuietWithoutDebug(t *testing.T) {
	var buf bytes.Buffer
	resolver := config.NewResolver(diagnosticLogger(&buf))
	resolver.Resolve([]config.Source{
		config.Values("file", map[string]string{"LOG_LEVEL": "INFO", "K": "v"}),
	}, false)

	if buf.Len() != 0 {
		t.Fatalf("expected no diagnostics, got:\n%s", buf.String())
	}
	if resolver.Diagnostic() {
		t.Fatal("resolver should not be in diagnostic mode")
	}
}

func TestResolveLogLevelSentinelEnablesDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	resolver := config.NewResolver(diagnosticLogger(&buf))
	resolver.Resolve([]config.Source{
		config.Values("file", map[string]string{"LOG_LEVEL": "DEBUG"}),
		config.Values("later", map[string]string{"K": "v"}),
	}, false)

	if !resolver.Diagnostic() {
		t.Fatal("expected diagnostic mode after LOG_LEVEL=DEBUG")
	}
	out := buf.String()
	if !strings.Contains(out, "origin=later") {
		t.Errorf("expected diagnostics for applications after the sentinel:\n%s", out)
	}
}

func TestDiagnosticModeStickyAcrossPasses(t *testing.T) {
	var buf bytes.Buffer
	resolver := config.NewResolver(diagnosticLogger(&buf))
	resolver.Resolve([]config.Source{
		config.Values("file", map[string]string{"LOG_LEVEL": "debug"}),
	}, false)
	buf.Reset()

	// Second pass no longer carries the sentinel; mode persists for the
	// remainder of the process.
	resolver.Resolve([]config.Source{
		config.Values("file", map[string]string{"LOG_LEVEL": "info"}),
	}, false)
	if !strings.Contains(buf.String(), "setting applied") {
		t.Fatalf("expected sticky diagnostics on reload, got:\n%s", buf.String())
	}
}

func TestEnvSourceHonorsExplicitEmpty(t *testing.T) {
	t.Setenv("HUGGINGFACE_TOKEN", "")

	resolver := config.NewResolver(nil)
	settings := resolver.Resolve([]config.Source{
		config.Values("file", map[string]string{"HUGGINGFACE_TOKEN": "file-token"}),
		config.EnvSource("HUGGINGFACE_TOKEN"),
	}, false)

	got, ok := settings.Get("HUGGINGFACE_TOKEN")
	if !ok || got != "" {
		t.Fatalf("expected env empty assignment to win, got %q (present=%v)", got, ok)
	}
}
