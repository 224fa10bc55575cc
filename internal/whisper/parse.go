package whisper

import (
	"encoding/json"
	"fmt"
	"strings"

	"scribe/internal/transcript"
)

// output mirrors the transcript JSON insanely-fast-whisper writes: a full
// text field, chunk-level spans, and optional speaker-attributed spans when
// diarization ran.
type output struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Chunks   []chunk `json:"chunks"`
	Speakers []chunk `json:"speakers"`
}

type chunk struct {
	// Timestamp is a [start, end] pair; end may be null on the final chunk.
	Timestamp []*float64 `json:"timestamp"`
	Text      string     `json:"text"`
	Speaker   string     `json:"speaker"`
}

func parseOutput(data []byte, source string) (*transcript.Transcript, error) {
	var decoded output
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("parse transcript: %w", err)
	}

	spans := decoded.Chunks
	if len(decoded.Speakers) > 0 {
		spans = decoded.Speakers
	}

	result := &transcript.Transcript{
		Source:   source,
		Language: strings.TrimSpace(decoded.Language),
		Text:     strings.TrimSpace(decoded.Text),
	}
	for _, span := range spans {
		segment := transcript.Segment{Text: span.Text, Speaker: span.Speaker}
		if len(span.Timestamp) > 0 && span.Timestamp[0] != nil {
			segment.Start = *span.Timestamp[0]
		}
		if len(span.Timestamp) > 1 && span.Timestamp[1] != nil {
			segment.End = *span.Timestamp[1]
		} else {
			segment.End = segment.Start
		}
		result.Segments = append(result.Segments, segment)
	}
	result.Normalize()
	return result, nil
}
