// Package worker drains the job queue, running one transcription at a time.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"scribe/internal/config"
	"scribe/internal/fileutil"
	"scribe/internal/language"
	"scribe/internal/media"
	"scribe/internal/notify"
	"scribe/internal/queue"
	"scribe/internal/transcript"
	"scribe/internal/whisper"
)

// ErrAlreadyRunning indicates another worker holds the queue lock.
var ErrAlreadyRunning = errors.New("another scribe worker is already running")

// Summary reports the outcome of a drain pass.
type Summary struct {
	Processed int
	Failed    int
	Duration  time.Duration
}

// Worker processes pending jobs sequentially.
type Worker struct {
	cfg         *config.Config
	store       *queue.Store
	transcriber whisper.Client
	notifier    notify.Service
	logger      *slog.Logger
	lock        *flock.Flock
	lockPath    string
}

// New constructs a worker with initialized dependencies.
func New(cfg *config.Config, store *queue.Store, transcriber whisper.Client, notifier notify.Service, logger *slog.Logger) (*Worker, error) {
	if cfg == nil || store == nil || transcriber == nil {
		return nil, errors.New("worker requires config, store, and transcriber")
	}
	if notifier == nil {
		notifier = notify.NewService(cfg)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	lockPath := filepath.Join(cfg.LogDir, "scribe.lock")
	return &Worker{
		cfg:         cfg,
		store:       store,
		transcriber: transcriber,
		notifier:    notifier,
		logger:      logger.With("component", "worker"),
		lock:        flock.New(lockPath),
		lockPath:    lockPath,
	}, nil
}

// Run drains pending jobs under the queue lock and returns a pass summary.
// Jobs left in processing by a previous crash are requeued first.
func (w *Worker) Run(ctx context.Context) (Summary, error) {
	ok, err := w.lock.TryLock()
	if err != nil {
		return Summary{}, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return Summary{}, ErrAlreadyRunning
	}
	defer func() {
		if unlockErr := w.lock.Unlock(); unlockErr != nil {
			w.logger.Warn("failed to release queue lock", "error", unlockErr)
		}
	}()

	requeued, err := w.store.ResetStuck(ctx)
	if err != nil {
		return Summary{}, err
	}
	if requeued > 0 {
		w.logger.Info("requeued interrupted jobs", "count", requeued)
	}

	start := time.Now()
	var summary Summary
	for {
		if err := ctx.Err(); err != nil {
			summary.Duration = time.Since(start)
			return summary, err
		}

		job, err := w.store.ClaimNextPending(ctx)
		if err != nil {
			summary.Duration = time.Since(start)
			return summary, err
		}
		if job == nil {
			break
		}

		if err := w.process(ctx, job); err != nil {
			summary.Failed++
			w.logger.Error("job failed", "job", job.UUID, "source", job.SourcePath, "error", err)
			if markErr := w.store.MarkFailed(ctx, job.ID, err.Error()); markErr != nil {
				w.logger.Error("failed to record job failure", "job", job.UUID, "error", markErr)
			}
			if notifyErr := w.notifier.NotifyError(ctx, err, job.Title); notifyErr != nil {
				w.logger.Warn("notification failed", "error", notifyErr)
			}
			continue
		}
		summary.Processed++
	}
	summary.Duration = time.Since(start)

	if summary.Processed > 0 || summary.Failed > 0 {
		if err := w.notifier.NotifyBatchCompleted(ctx, summary.Processed, summary.Failed, summary.Duration); err != nil {
			w.logger.Warn("notification failed", "error", err)
		}
	}
	return summary, nil
}

func (w *Worker) process(ctx context.Context, job *queue.Job) error {
	w.logger.Info("processing job", "job", job.UUID, "source", job.SourcePath)
	if err := w.notifier.NotifyJobStarted(ctx, job.Title); err != nil {
		w.logger.Warn("notification failed", "error", err)
	}

	if err := w.store.SetProgress(ctx, job.ID, "validating", 0, ""); err != nil {
		return err
	}
	info, err := media.Validate(ctx, w.cfg.FFprobeBin, job.SourcePath)
	if err != nil {
		return fmt.Errorf("validate media: %w", err)
	}

	inputPath := info.Path
	if info.NeedsExtraction {
		if err := w.store.SetProgress(ctx, job.ID, "extracting", 0, "extracting audio track"); err != nil {
			return err
		}
		extracted, err := media.ExtractAudio(ctx, w.cfg.FFmpegBin, info.Path, w.cfg.StagingDir)
		if err != nil {
			return fmt.Errorf("extract audio: %w", err)
		}
		defer os.Remove(extracted)
		inputPath = extracted
	}

	result, err := w.transcriber.Transcribe(ctx, whisper.Request{
		InputPath:        inputPath,
		Model:            w.cfg.Model,
		DeviceID:         w.cfg.DeviceID,
		BatchSize:        w.cfg.BatchSize,
		Task:             w.cfg.Task,
		Language:         w.cfg.Language,
		Timestamp:        w.cfg.Timestamp,
		HuggingFaceToken: w.cfg.HuggingFaceToken,
	}, func(update whisper.ProgressUpdate) {
		if err := w.store.SetProgress(ctx, job.ID, "transcribing", update.Percent, update.Message); err != nil {
			w.logger.Warn("failed to record progress", "job", job.UUID, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("transcribe: %w", err)
	}

	if err := w.store.SetProgress(ctx, job.ID, "rendering", 95, ""); err != nil {
		return err
	}
	outputs, err := w.writeOutputs(job, result)
	if err != nil {
		return fmt.Errorf("write outputs: %w", err)
	}

	if err := w.store.MarkCompleted(ctx, job.ID, result.Language, outputs); err != nil {
		return err
	}
	if err := w.notifier.NotifyJobCompleted(ctx, job.Title, language.DisplayName(result.Language), len(outputs)); err != nil {
		w.logger.Warn("notification failed", "error", err)
	}
	w.logger.Info("job completed", "job", job.UUID, "outputs", len(outputs))
	return nil
}

func (w *Worker) writeOutputs(job *queue.Job, result *transcript.Transcript) ([]string, error) {
	stem := filepath.Base(job.SourcePath)
	stem = stem[:len(stem)-len(filepath.Ext(stem))]

	outputs := make([]string, 0, len(w.cfg.OutputFormats))
	for _, format := range w.cfg.OutputFormats {
		rendered, err := transcript.Render(result, format)
		if err != nil {
			return nil, err
		}
		target := fileutil.UniquePath(filepath.Join(w.cfg.OutputDir, stem+transcript.Extension(format)))
		if err := os.WriteFile(target, rendered, 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", format, err)
		}
		outputs = append(outputs, target)
	}
	return outputs, nil
}
