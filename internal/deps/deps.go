// Package deps verifies the external tools and directories scribe needs.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"scribe/internal/config"
	"scribe/internal/fileutil"
)

// Requirement defines an external dependency scribe relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// DefaultRequirements lists the binaries a configured scribe invokes.
func DefaultRequirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "Whisper",
			Command:     cfg.WhisperBin,
			Description: "speech transcription",
		},
		{
			Name:        "FFmpeg",
			Command:     cfg.FFmpegBin,
			Description: "audio extraction from video",
		},
		{
			Name:        "FFprobe",
			Command:     cfg.FFprobeBin,
			Description: "media inspection",
			Optional:    true,
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// CheckDirectories verifies the configured directories exist and are writable.
func CheckDirectories(cfg *config.Config) []Status {
	checks := []struct {
		name string
		path string
	}{
		{"Output directory", cfg.OutputDir},
		{"Staging directory", cfg.StagingDir},
		{"Log directory", cfg.LogDir},
	}
	results := make([]Status, 0, len(checks))
	for _, check := range checks {
		status := Status{Name: check.name, Command: check.path}
		if err := fileutil.CheckDirWritable(check.path); err != nil {
			status.Detail = err.Error()
		} else {
			status.Available = true
		}
		results = append(results, status)
	}
	return results
}

// Missing filters statuses down to unavailable required dependencies.
func Missing(statuses []Status) []Status {
	var missing []Status
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status)
		}
	}
	return missing
}
