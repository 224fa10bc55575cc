package media

import (
	"context"
	"os/exec"
	"strings"
	"testing"
)

func TestProbeHelpers(t *testing.T) {
	probe := Probe{
		Streams: []Stream{
			{CodecType: "video"},
			{CodecType: "audio", Channels: 2},
		},
		Format: Format{Duration: "123.45"},
	}
	if !probe.HasAudio() {
		t.Fatal("expected audio stream")
	}
	if !probe.HasVideo() {
		t.Fatal("expected video stream")
	}
	if probe.DurationSeconds() != 123.45 {
		t.Fatalf("unexpected duration: %v", probe.DurationSeconds())
	}

	empty := Probe{Format: Format{Duration: "bad"}}
	if empty.HasAudio() || empty.HasVideo() {
		t.Fatal("expected no streams")
	}
	if empty.DurationSeconds() != 0 {
		t.Fatalf("expected 0 for invalid duration, got %v", empty.DurationSeconds())
	}
}

func TestExtensionChecks(t *testing.T) {
	tests := []struct {
		path  string
		audio bool
		video bool
	}{
		{"/in/talk.mp3", true, false},
		{"/in/TALK.WAV", true, false},
		{"/in/talk.mp4", false, true},
		{"/in/talk.mkv", false, true},
		{"/in/talk.pdf", false, false},
		{"/in/noext", false, false},
	}
	for _, tt := range tests {
		if got := IsAudioPath(tt.path); got != tt.audio {
			t.Errorf("IsAudioPath(%q) = %v", tt.path, got)
		}
		if got := IsVideoPath(tt.path); got != tt.video {
			t.Errorf("IsVideoPath(%q) = %v", tt.path, got)
		}
	}
}

func TestInspectParsesJSON(t *testing.T) {
	payload := `{"streams":[{"index":0,"codec_type":"audio","channels":1}],"format":{"filename":"x.wav","duration":"9.5"}}`
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "echo", payload)
	}
	t.Cleanup(func() { commandContext = original })

	probe, err := Inspect(context.Background(), "ffprobe", "/in/x.wav")
	if err != nil {
		t.Fatalf("Inspect returned error: %v", err)
	}
	if !probe.HasAudio() {
		t.Fatal("expected audio stream from payload")
	}
	if probe.DurationSeconds() != 9.5 {
		t.Fatalf("duration = %v", probe.DurationSeconds())
	}
}

func TestInspectEmptyPath(t *testing.T) {
	if _, err := Inspect(context.Background(), "ffprobe", " "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestValidateRejectsUnsupportedExtension(t *testing.T) {
	if _, err := Validate(context.Background(), "ffprobe", "/in/talk.pdf"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestValidateRequiresAudioStream(t *testing.T) {
	payload := `{"streams":[{"index":0,"codec_type":"video"}],"format":{"duration":"10"}}`
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "echo", payload)
	}
	t.Cleanup(func() { commandContext = original })

	if _, err := Validate(context.Background(), "ffprobe", "/in/talk.mp4"); err == nil {
		t.Fatal("expected error when no audio stream present")
	}
}

func TestValidateFlagsVideoForExtraction(t *testing.T) {
	payload := `{"streams":[{"codec_type":"video"},{"codec_type":"audio","channels":2}],"format":{"duration":"42.0"}}`
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "echo", payload)
	}
	t.Cleanup(func() { commandContext = original })

	info, err := Validate(context.Background(), "ffprobe", "/in/talk.mp4")
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if !info.NeedsExtraction {
		t.Fatal("video input should need extraction")
	}
	if info.DurationSeconds != 42.0 {
		t.Fatalf("duration = %v", info.DurationSeconds)
	}
}

func TestExtractAudioArgs(t *testing.T) {
	var captured []string
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		captured = append([]string{name}, args...)
		return exec.CommandContext(ctx, "true")
	}
	t.Cleanup(func() { commandContext = original })

	out, err := ExtractAudio(context.Background(), "ffmpeg", "/in/talk.mp4", "/staging")
	if err != nil {
		t.Fatalf("ExtractAudio returned error: %v", err)
	}
	if out != "/staging/talk.wav" {
		t.Fatalf("output path = %q", out)
	}
	joined := strings.Join(captured, " ")
	for _, want := range []string{"ffmpeg", "-vn", "-ar 16000", "-ac 1", "/staging/talk.wav"} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q: %s", want, joined)
		}
	}
}

func TestExtractAudioRequiresInput(t *testing.T) {
	if _, err := ExtractAudio(context.Background(), "ffmpeg", "", "/staging"); err == nil {
		t.Fatal("expected error for empty input")
	}
	if _, err := ExtractAudio(context.Background(), "ffmpeg", "/in/talk.mp4", ""); err == nil {
		t.Fatal("expected error for empty staging dir")
	}
}
