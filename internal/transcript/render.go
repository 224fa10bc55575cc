package transcript

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Render produces the named format for a normalized transcript.
func Render(t *Transcript, format string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return renderJSON(t)
	case "srt":
		return []byte(renderSRT(t)), nil
	case "vtt":
		return []byte(renderVTT(t)), nil
	case "txt":
		return []byte(renderTXT(t)), nil
	default:
		return nil, fmt.Errorf("unsupported transcript format %q", format)
	}
}

// Extension returns the file extension for a supported format.
func Extension(format string) string {
	return "." + strings.ToLower(strings.TrimSpace(format))
}

func renderJSON(t *Transcript) ([]byte, error) {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode transcript: %w", err)
	}
	return append(data, '\n'), nil
}

func renderSRT(t *Transcript) string {
	var b strings.Builder
	for i, segment := range t.Segments {
		fmt.Fprintf(&b, "%d\n", i+1)
		fmt.Fprintf(&b, "%s --> %s\n", srtTimestamp(segment.Start), srtTimestamp(segment.End))
		b.WriteString(cueText(segment))
		b.WriteString("\n\n")
	}
	return b.String()
}

func renderVTT(t *Transcript) string {
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")
	for _, segment := range t.Segments {
		fmt.Fprintf(&b, "%s --> %s\n", vttTimestamp(segment.Start), vttTimestamp(segment.End))
		b.WriteString(cueText(segment))
		b.WriteString("\n\n")
	}
	return b.String()
}

func renderTXT(t *Transcript) string {
	if strings.TrimSpace(t.Text) == "" {
		return ""
	}
	return t.Text + "\n"
}

func cueText(segment Segment) string {
	if segment.Speaker != "" {
		return fmt.Sprintf("[%s] %s", segment.Speaker, segment.Text)
	}
	return segment.Text
}

// srtTimestamp renders seconds as HH:MM:SS,mmm.
func srtTimestamp(seconds float64) string {
	hours, minutes, secs, millis := splitTimestamp(seconds)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// vttTimestamp renders seconds as HH:MM:SS.mmm.
func vttTimestamp(seconds float64) string {
	hours, minutes, secs, millis := splitTimestamp(seconds)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, secs, millis)
}

func splitTimestamp(seconds float64) (int, int, int, int) {
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		seconds = 0
	}
	totalMillis := int(math.Round(seconds * 1000))
	millis := totalMillis % 1000
	totalSecs := totalMillis / 1000
	return totalSecs / 3600, (totalSecs % 3600) / 60, totalSecs % 60, millis
}
