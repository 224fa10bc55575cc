package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed sample_config.env
var sampleConfig string

// Config is the typed view over a resolved Settings snapshot. It drives the
// transcriber invocation, output handling, logging, notifications, and the
// optional HTTP API.
type Config struct {
	Model            string
	DeviceID         string
	BatchSize        int
	Task             string
	Language         string
	Timestamp        string
	HuggingFaceToken string

	OutputDir     string
	StagingDir    string
	LogDir        string
	OutputFormats []string

	LogLevel  string
	LogFormat string

	NtfyTopic   string
	NtfyTimeout int

	APIBind  string
	APIToken string

	WhisperBin string
	FFmpegBin  string
	FFprobeBin string
}

// BuildConfig derives the typed view from a resolved snapshot: defaults first,
// then overlay, then path expansion and validation.
func BuildConfig(settings *Settings) (*Config, error) {
	cfg := Default()
	if settings != nil {
		cfg.Model = settings.Value(KeyModel, cfg.Model)
		cfg.DeviceID = settings.Value(KeyDeviceID, cfg.DeviceID)
		cfg.BatchSize = settings.Int(KeyBatchSize, cfg.BatchSize)
		cfg.Task = strings.ToLower(settings.Value(KeyTask, cfg.Task))
		cfg.Language = strings.ToLower(settings.Value(KeyLanguage, cfg.Language))
		cfg.Timestamp = strings.ToLower(settings.Value(KeyTimestamp, cfg.Timestamp))
		cfg.HuggingFaceToken = settings.Value(KeyHuggingFaceToken, cfg.HuggingFaceToken)
		cfg.OutputDir = settings.Value(KeyOutputDir, cfg.OutputDir)
		cfg.StagingDir = settings.Value(KeyStagingDir, cfg.StagingDir)
		cfg.LogDir = settings.Value(KeyLogDir, cfg.LogDir)
		cfg.OutputFormats = splitFormats(settings.Value(KeyOutputFormats, defaultFormats))
		cfg.LogLevel = strings.ToLower(settings.Value(KeyLogLevel, cfg.LogLevel))
		cfg.LogFormat = strings.ToLower(settings.Value(KeyLogFormat, cfg.LogFormat))
		cfg.NtfyTopic = settings.Value(KeyNtfyTopic, cfg.NtfyTopic)
		cfg.NtfyTimeout = settings.Int(KeyNtfyTimeout, cfg.NtfyTimeout)
		cfg.APIBind = settings.Value(KeyAPIBind, cfg.APIBind)
		cfg.APIToken = settings.Value(KeyAPIToken, cfg.APIToken)
		cfg.WhisperBin = settings.Value(KeyWhisperBin, cfg.WhisperBin)
		cfg.FFmpegBin = settings.Value(KeyFFmpegBin, cfg.FFmpegBin)
		cfg.FFprobeBin = settings.Value(KeyFFprobeBin, cfg.FFprobeBin)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func splitFormats(raw string) []string {
	parts := strings.Split(raw, ",")
	formats := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		format := strings.ToLower(strings.TrimSpace(part))
		if format == "" {
			continue
		}
		if _, ok := seen[format]; ok {
			continue
		}
		seen[format] = struct{}{}
		formats = append(formats, format)
	}
	return formats
}

func (c *Config) normalize() error {
	var err error
	if c.OutputDir, err = expandPath(c.OutputDir); err != nil {
		return fmt.Errorf("%s: %w", KeyOutputDir, err)
	}
	if c.StagingDir, err = expandPath(c.StagingDir); err != nil {
		return fmt.Errorf("%s: %w", KeyStagingDir, err)
	}
	if c.LogDir, err = expandPath(c.LogDir); err != nil {
		return fmt.Errorf("%s: %w", KeyLogDir, err)
	}
	c.APIBind = strings.TrimSpace(c.APIBind)
	c.NtfyTopic = strings.TrimSpace(c.NtfyTopic)
	c.HuggingFaceToken = strings.TrimSpace(c.HuggingFaceToken)
	if strings.TrimSpace(c.WhisperBin) == "" {
		c.WhisperBin = defaultWhisperBin
	}
	if strings.TrimSpace(c.FFmpegBin) == "" {
		c.FFmpegBin = defaultFFmpegBin
	}
	if strings.TrimSpace(c.FFprobeBin) == "" {
		c.FFprobeBin = defaultFFprobeBin
	}
	return nil
}

// EnsureDirectories creates the directories scribe writes to.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.OutputDir, c.StagingDir, c.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// ProjectConfigPath returns the absolute path of the project-root config
// file, the lowest-precedence file source.
func ProjectConfigPath() (string, error) {
	return filepath.Abs("scribe.env")
}

// DefaultUserConfigPath returns the per-user config file location, which
// overrides the project file.
func DefaultUserConfigPath() (string, error) {
	return expandPath("~/.config/scribe/config.env")
}

// StandardSources assembles the documented source stack in increasing
// precedence: project file, user file, process environment, then explicit
// overrides. Extra sources (for example a preset expansion) slot in just
// below the overrides.
func StandardSources(overrides map[string]string, extra ...Source) ([]Source, error) {
	projectPath, err := ProjectConfigPath()
	if err != nil {
		return nil, err
	}
	userPath, err := DefaultUserConfigPath()
	if err != nil {
		return nil, err
	}
	sources := []Source{
		FileSource(projectPath),
		FileSource(userPath),
		EnvSource(KnownKeys()...),
	}
	sources = append(sources, extra...)
	if len(overrides) > 0 {
		sources = append(sources, Values("flags", overrides))
	}
	return sources, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a commented sample configuration file to path.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
