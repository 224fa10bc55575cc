package transcript

import (
	"encoding/json"
	"strings"
	"testing"
)

func sample() *Transcript {
	t := &Transcript{
		Source:   "talk.wav",
		Language: "en",
		Segments: []Segment{
			{Start: 3.2, End: 5.0, Text: "second segment"},
			{Start: 0, End: 2.5, Text: " first segment "},
			{Start: 6.0, End: 6.5, Text: "   "},
		},
	}
	t.Normalize()
	return t
}

func TestNormalizeOrdersAndCleans(t *testing.T) {
	tr := sample()
	if len(tr.Segments) != 2 {
		t.Fatalf("expected empty segment dropped, got %d", len(tr.Segments))
	}
	if tr.Segments[0].Text != "first segment" {
		t.Fatalf("segments not ordered by start: %+v", tr.Segments)
	}
	if tr.Text != "first segment second segment" {
		t.Fatalf("joined text = %q", tr.Text)
	}
}

func TestNormalizeClampsReversedSpans(t *testing.T) {
	tr := &Transcript{Segments: []Segment{{Start: 5, End: 2, Text: "x"}}}
	tr.Normalize()
	if tr.Segments[0].End != 5 {
		t.Fatalf("expected end clamped to start, got %v", tr.Segments[0].End)
	}
}

func TestRenderSRT(t *testing.T) {
	data, err := Render(sample(), "srt")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "1\n00:00:00,000 --> 00:00:02,500\nfirst segment") {
		t.Errorf("unexpected SRT cue:\n%s", out)
	}
	if !strings.Contains(out, "2\n00:00:03,200 --> 00:00:05,000\nsecond segment") {
		t.Errorf("missing second cue:\n%s", out)
	}
}

func TestRenderVTT(t *testing.T) {
	data, err := Render(sample(), "vtt")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	out := string(data)
	if !strings.HasPrefix(out, "WEBVTT\n\n") {
		t.Errorf("missing WEBVTT header:\n%s", out)
	}
	if !strings.Contains(out, "00:00:00.000 --> 00:00:02.500") {
		t.Errorf("unexpected VTT timestamps:\n%s", out)
	}
}

func TestRenderTXT(t *testing.T) {
	data, err := Render(sample(), "txt")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if string(data) != "first segment second segment\n" {
		t.Errorf("txt = %q", data)
	}
}

func TestRenderJSONRoundTrip(t *testing.T) {
	data, err := Render(sample(), "json")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	var decoded Transcript
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Source != "talk.wav" || len(decoded.Segments) != 2 {
		t.Errorf("round trip mismatch: %+v", decoded)
	}
}

func TestRenderSpeakerLabels(t *testing.T) {
	tr := &Transcript{Segments: []Segment{{Start: 0, End: 1, Text: "hello", Speaker: "SPEAKER_00"}}}
	tr.Normalize()
	data, err := Render(tr, "srt")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(string(data), "[SPEAKER_00] hello") {
		t.Errorf("missing speaker label:\n%s", data)
	}
}

func TestRenderUnsupportedFormat(t *testing.T) {
	if _, err := Render(sample(), "pdf"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestTimestampHourRollover(t *testing.T) {
	if got := srtTimestamp(3661.75); got != "01:01:01,750" {
		t.Errorf("srtTimestamp = %q", got)
	}
	if got := vttTimestamp(3661.75); got != "01:01:01.750" {
		t.Errorf("vttTimestamp = %q", got)
	}
}
