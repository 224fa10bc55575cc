package media

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

var audioExtensions = map[string]struct{}{
	".mp3":  {},
	".wav":  {},
	".flac": {},
	".m4a":  {},
	".aac":  {},
	".ogg":  {},
	".opus": {},
	".wma":  {},
}

var videoExtensions = map[string]struct{}{
	".mp4":  {},
	".mkv":  {},
	".mov":  {},
	".avi":  {},
	".webm": {},
	".mpeg": {},
	".mpg":  {},
	".m4v":  {},
}

// Info summarizes a validated input file.
type Info struct {
	Path            string
	DurationSeconds float64
	// NeedsExtraction is set for video containers whose audio must be
	// pulled into a standalone file before transcription.
	NeedsExtraction bool
}

// IsAudioPath reports whether path carries a supported audio extension.
func IsAudioPath(path string) bool {
	_, ok := audioExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// IsVideoPath reports whether path carries a supported video extension.
func IsVideoPath(path string) bool {
	_, ok := videoExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// SupportedExtensions lists every accepted extension, audio first.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(audioExtensions)+len(videoExtensions))
	for ext := range audioExtensions {
		exts = append(exts, ext)
	}
	for ext := range videoExtensions {
		exts = append(exts, ext)
	}
	return exts
}

// Validate checks that path is a supported, probeable input with an audio
// stream and returns its summary.
func Validate(ctx context.Context, ffprobeBin, path string) (Info, error) {
	if !IsAudioPath(path) && !IsVideoPath(path) {
		return Info{}, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}

	probe, err := Inspect(ctx, ffprobeBin, path)
	if err != nil {
		return Info{}, err
	}
	if !probe.HasAudio() {
		return Info{}, fmt.Errorf("%s contains no audio stream", filepath.Base(path))
	}

	return Info{
		Path:            path,
		DurationSeconds: probe.DurationSeconds(),
		NeedsExtraction: probe.HasVideo() || IsVideoPath(path),
	}, nil
}
