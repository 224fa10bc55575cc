package deps

import (
	"os"
	"path/filepath"
	"testing"

	"scribe/internal/config"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Unset", Command: "  "},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}
	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}

	if results[1].Available {
		t.Fatal("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatal("expected detail message for missing binary")
	}

	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("unexpected status for unset command: %#v", results[2])
	}
}

func TestDefaultRequirementsUseConfiguredBinaries(t *testing.T) {
	cfg := config.Default()
	cfg.WhisperBin = "/opt/whisper"
	cfg.FFmpegBin = "/opt/ffmpeg"

	reqs := DefaultRequirements(&cfg)
	if len(reqs) != 3 {
		t.Fatalf("expected 3 requirements, got %d", len(reqs))
	}
	if reqs[0].Command != "/opt/whisper" || reqs[1].Command != "/opt/ffmpeg" {
		t.Fatalf("requirements did not pick up configured binaries: %+v", reqs)
	}
	if !reqs[2].Optional {
		t.Fatal("ffprobe should be optional")
	}
}

func TestCheckDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.OutputDir = filepath.Join(base, "out")
	cfg.StagingDir = filepath.Join(base, "staging")
	cfg.LogDir = filepath.Join(base, "logs")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}

	results := CheckDirectories(&cfg)
	for _, status := range results {
		if !status.Available {
			t.Fatalf("expected %s to pass, got %#v", status.Name, status)
		}
	}

	cfg.OutputDir = filepath.Join(base, "absent")
	results = CheckDirectories(&cfg)
	if results[0].Available {
		t.Fatal("expected missing directory to fail")
	}
}

func TestMissing(t *testing.T) {
	statuses := []Status{
		{Name: "a", Available: true},
		{Name: "b", Available: false, Optional: true},
		{Name: "c", Available: false},
	}
	missing := Missing(statuses)
	if len(missing) != 1 || missing[0].Name != "c" {
		t.Fatalf("missing = %+v", missing)
	}
}
