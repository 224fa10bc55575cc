package transcript

import (
	"sort"
	"strings"
)

// Segment is one timed span of recognized speech.
type Segment struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Text    string  `json:"text"`
	Speaker string  `json:"speaker,omitempty"`
}

// Transcript is the full result for one input file.
type Transcript struct {
	Source   string    `json:"source"`
	Language string    `json:"language,omitempty"`
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
}

// Normalize trims segment text, drops empty segments, and orders segments by
// start time. Renderers assume normalized input.
func (t *Transcript) Normalize() {
	cleaned := make([]Segment, 0, len(t.Segments))
	for _, segment := range t.Segments {
		segment.Text = strings.TrimSpace(segment.Text)
		if segment.Text == "" {
			continue
		}
		if segment.End < segment.Start {
			segment.End = segment.Start
		}
		cleaned = append(cleaned, segment)
	}
	sort.SliceStable(cleaned, func(i, j int) bool {
		return cleaned[i].Start < cleaned[j].Start
	})
	t.Segments = cleaned

	if strings.TrimSpace(t.Text) == "" {
		parts := make([]string, 0, len(cleaned))
		for _, segment := range cleaned {
			parts = append(parts, segment.Text)
		}
		t.Text = strings.Join(parts, " ")
	} else {
		t.Text = strings.TrimSpace(t.Text)
	}
}
