package config

import (
	"errors"
	"fmt"
	"strconv"

	"scribe/internal/language"
)

var validFormats = map[string]struct{}{
	"json": {},
	"srt":  {},
	"vtt":  {},
	"txt":  {},
}

// Validate ensures the typed view is usable.
func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("%s must be set", KeyModel)
	}
	switch c.Task {
	case "transcribe", "translate":
	default:
		return fmt.Errorf("%s must be transcribe or translate, got %q", KeyTask, c.Task)
	}
	switch c.Timestamp {
	case "chunk", "word":
	default:
		return fmt.Errorf("%s must be chunk or word, got %q", KeyTimestamp, c.Timestamp)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("%s must be >= 1", KeyBatchSize)
	}
	if err := c.validateDevice(); err != nil {
		return err
	}
	if len(c.OutputFormats) == 0 {
		return fmt.Errorf("%s must include at least one format", KeyOutputFormats)
	}
	for _, format := range c.OutputFormats {
		if _, ok := validFormats[format]; !ok {
			return fmt.Errorf("%s: unsupported format %q (json, srt, vtt, txt)", KeyOutputFormats, format)
		}
	}
	if c.Language != "auto" {
		if _, ok := language.Normalize(c.Language); !ok {
			return fmt.Errorf("%s: unrecognized language %q", KeyLanguage, c.Language)
		}
	}
	if c.NtfyTimeout <= 0 {
		return fmt.Errorf("%s must be positive (seconds)", KeyNtfyTimeout)
	}
	return nil
}

func (c *Config) validateDevice() error {
	switch c.DeviceID {
	case "cpu", "mps":
		return nil
	case "":
		return errors.New("WHISPER_DEVICE_ID must be set")
	}
	index, err := strconv.Atoi(c.DeviceID)
	if err != nil || index < 0 {
		return fmt.Errorf("%s must be a non-negative GPU index, cpu, or mps", KeyDeviceID)
	}
	return nil
}
