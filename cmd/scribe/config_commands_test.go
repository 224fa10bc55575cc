package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	configPath := writeTestConfig(t)

	out, err := runCLI(t, "--config", configPath, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
}

func TestConfigGetResolvesLayers(t *testing.T) {
	configPath := writeTestConfig(t)

	content, _ := os.ReadFile(configPath)
	updated := string(content) + "WHISPER_MODEL=openai/whisper-base\n"
	if err := os.WriteFile(configPath, []byte(updated), 0o644); err != nil {
		t.Fatalf("update config: %v", err)
	}

	out, err := runCLI(t, "--config", configPath, "config", "get", "WHISPER_MODEL")
	if err != nil {
		t.Fatalf("config get: %v", err)
	}
	if strings.TrimSpace(out) != "openai/whisper-base" {
		t.Fatalf("value = %q", out)
	}

	t.Setenv("WHISPER_MODEL", "openai/whisper-large-v3")
	out, err = runCLI(t, "--config", configPath, "config", "get", "WHISPER_MODEL")
	if err != nil {
		t.Fatalf("config get with env: %v", err)
	}
	if strings.TrimSpace(out) != "openai/whisper-large-v3" {
		t.Fatalf("env should override file, got %q", out)
	}
}

func TestConfigDiagnosticsFollowLogLevelSentinel(t *testing.T) {
	configPath := writeTestConfig(t)

	content, _ := os.ReadFile(configPath)
	updated := string(content) + "LOG_LEVEL=DEBUG\n"
	if err := os.WriteFile(configPath, []byte(updated), 0o644); err != nil {
		t.Fatalf("update config: %v", err)
	}

	out, err := runCLI(t, "--config", configPath, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "setting applied")
	requireContains(t, out, configPath)
}

func TestConfigQuietWithoutDebugSentinel(t *testing.T) {
	configPath := writeTestConfig(t)

	out, err := runCLI(t, "--config", configPath, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	if strings.Contains(out, "setting applied") {
		t.Fatalf("diagnostics emitted without debug: %q", out)
	}
}

func TestConfigGetUnknownKey(t *testing.T) {
	configPath := writeTestConfig(t)

	if _, err := runCLI(t, "--config", configPath, "config", "get", "NOT_A_KEY"); err == nil {
		t.Fatal("expected error for unresolved key")
	}
}

func TestConfigShowMasksSecrets(t *testing.T) {
	configPath := writeTestConfig(t)

	content, _ := os.ReadFile(configPath)
	updated := string(content) + "HUGGINGFACE_TOKEN=hf_secret_value\n"
	if err := os.WriteFile(configPath, []byte(updated), 0o644); err != nil {
		t.Fatalf("update config: %v", err)
	}

	out, err := runCLI(t, "--config", configPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if strings.Contains(out, "hf_secret_value") {
		t.Fatal("token value should be masked")
	}
	requireContains(t, out, "HUGGINGFACE_TOKEN")
}

func TestConfigInit(t *testing.T) {
	writeTestConfig(t)
	target := filepath.Join(t.TempDir(), "config.env")

	out, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected error without --overwrite")
	}
	if _, err := runCLI(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}
