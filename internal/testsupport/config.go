// Package testsupport provides shared fixtures for package tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"scribe/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.OutputDir = filepath.Join(base, "out")
	cfgVal.StagingDir = filepath.Join(base, "staging")
	cfgVal.LogDir = filepath.Join(base, "logs")
	cfgVal.APIBind = "127.0.0.1:0"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithAPIToken sets the API bearer token on the test config.
func WithAPIToken(token string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.APIToken = token
	}
}

// WithOutputFormats overrides the transcript formats on the test config.
func WithOutputFormats(formats ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.OutputFormats = formats
	}
}

// WithProbeStub installs a fake ffprobe that reports an audio stream for any
// input and points the config at it.
func WithProbeStub() ConfigOption {
	const script = `#!/bin/sh
cat <<'EOF'
{"streams":[{"codec_type":"audio","codec_name":"pcm_s16le"}],"format":{"duration":"12.5"}}
EOF
`
	return func(b *configBuilder) {
		stub := filepath.Join(b.baseDir, "ffprobe")
		if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
			b.t.Fatalf("write ffprobe stub: %v", err)
		}
		b.cfg.FFprobeBin = stub
	}
}
