package whisper

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"scribe/internal/transcript"
)

var commandContext = exec.CommandContext

// ProgressUpdate captures transcriber progress events.
type ProgressUpdate struct {
	Percent float64
	Stage   string
	Message string
}

// Request carries the per-invocation transcription parameters.
type Request struct {
	InputPath        string
	Model            string
	DeviceID         string
	BatchSize        int
	Task             string
	Language         string // empty or "auto" lets the model detect
	Timestamp        string // chunk or word
	HuggingFaceToken string // enables diarization when set
}

// Client defines transcriber behaviour.
type Client interface {
	Transcribe(ctx context.Context, req Request, progress func(ProgressUpdate)) (*transcript.Transcript, error)
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// CLI wraps the insanely-fast-whisper executable.
type CLI struct {
	binary string
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "insanely-fast-whisper"}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Transcribe launches the transcriber and decodes the transcript it writes.
func (c *CLI) Transcribe(ctx context.Context, req Request, progress func(ProgressUpdate)) (*transcript.Transcript, error) {
	if strings.TrimSpace(req.InputPath) == "" {
		return nil, errors.New("input path required")
	}

	workDir, err := os.MkdirTemp("", "scribe-whisper-")
	if err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	defer os.RemoveAll(workDir)
	transcriptPath := filepath.Join(workDir, "transcript.json")

	args := c.buildArgs(req, transcriptPath)
	cmd := commandContext(ctx, c.binary, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start transcriber: %w", err)
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		var payload struct {
			Percent float64 `json:"percent"`
			Stage   string  `json:"stage"`
			Message string  `json:"message"`
		}
		if err := json.Unmarshal(line, &payload); err != nil {
			continue
		}
		if progress != nil {
			progress(ProgressUpdate{Percent: payload.Percent, Stage: payload.Stage, Message: payload.Message})
		}
	}
	if scanErr := scanner.Err(); scanErr != nil {
		_ = cmd.Wait()
		return nil, fmt.Errorf("read transcriber output: %w", scanErr)
	}

	if err := cmd.Wait(); err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	data, err := os.ReadFile(transcriptPath)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}
	result, err := parseOutput(data, req.InputPath)
	if err != nil {
		return nil, err
	}
	if result.Language == "" {
		if lang := strings.TrimSpace(req.Language); lang != "" && !strings.EqualFold(lang, "auto") {
			result.Language = lang
		}
	}
	return result, nil
}

func (c *CLI) buildArgs(req Request, transcriptPath string) []string {
	args := []string{
		"--file-name", req.InputPath,
		"--transcript-path", transcriptPath,
	}
	if req.Model != "" {
		args = append(args, "--model-name", req.Model)
	}
	if req.DeviceID != "" {
		args = append(args, "--device-id", req.DeviceID)
	}
	if req.BatchSize > 0 {
		args = append(args, "--batch-size", strconv.Itoa(req.BatchSize))
	}
	if req.Task != "" {
		args = append(args, "--task", req.Task)
	}
	if req.Timestamp != "" {
		args = append(args, "--timestamp", req.Timestamp)
	}
	if lang := strings.TrimSpace(req.Language); lang != "" && !strings.EqualFold(lang, "auto") {
		args = append(args, "--language", lang)
	}
	if req.HuggingFaceToken != "" {
		args = append(args, "--hf-token", req.HuggingFaceToken)
	}
	return args
}

var _ Client = (*CLI)(nil)
