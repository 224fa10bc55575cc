// Package presets loads named option bundles from the user preset file.
package presets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"scribe/internal/config"
)

// Preset is a named bundle of transcription options.
type Preset struct {
	Model         string   `toml:"model"`
	DeviceID      string   `toml:"device_id"`
	BatchSize     int      `toml:"batch_size"`
	Task          string   `toml:"task"`
	Language      string   `toml:"language"`
	Timestamp     string   `toml:"timestamp"`
	OutputFormats []string `toml:"output_formats"`
}

// File maps preset names to their definitions.
type File struct {
	Presets map[string]Preset `toml:"presets"`
}

// DefaultPath returns the user preset file location.
func DefaultPath() string {
	expanded, err := config.ExpandPath("~/.config/scribe/presets.toml")
	if err != nil {
		return "presets.toml"
	}
	return expanded
}

// Load reads the preset file at path. A missing file yields an empty set.
func Load(path string) (*File, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{Presets: map[string]Preset{}}, nil
		}
		return nil, fmt.Errorf("open presets: %w", err)
	}
	defer file.Close()

	var parsed File
	decoder := toml.NewDecoder(file)
	if err := decoder.Decode(&parsed); err != nil {
		return nil, fmt.Errorf("parse presets %s: %w", filepath.Base(path), err)
	}
	if parsed.Presets == nil {
		parsed.Presets = map[string]Preset{}
	}
	return &parsed, nil
}

// Names lists defined preset names in sorted order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Presets))
	for name := range f.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Source converts the named preset into a configuration source.
func (f *File) Source(name string) (config.Source, error) {
	preset, ok := f.Presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q", name)
	}
	values := map[string]string{}
	if preset.Model != "" {
		values[config.KeyModel] = preset.Model
	}
	if preset.DeviceID != "" {
		values[config.KeyDeviceID] = preset.DeviceID
	}
	if preset.BatchSize > 0 {
		values[config.KeyBatchSize] = strconv.Itoa(preset.BatchSize)
	}
	if preset.Task != "" {
		values[config.KeyTask] = preset.Task
	}
	if preset.Language != "" {
		values[config.KeyLanguage] = preset.Language
	}
	if preset.Timestamp != "" {
		values[config.KeyTimestamp] = preset.Timestamp
	}
	if len(preset.OutputFormats) > 0 {
		values[config.KeyOutputFormats] = strings.Join(preset.OutputFormats, ",")
	}
	return config.Values("preset:"+name, values), nil
}
