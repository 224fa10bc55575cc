package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"scribe/internal/config"
	"scribe/internal/media"
	"scribe/internal/notify"
	"scribe/internal/queue"
	"scribe/internal/whisper"
	"scribe/internal/worker"
)

func newTranscribeCommand(ctx *commandContext) *cobra.Command {
	var (
		model       string
		language    string
		task        string
		deviceID    string
		batchSize   int
		timestamp   string
		formats     string
		outputDir   string
		enqueueOnly bool
	)

	cmd := &cobra.Command{
		Use:   "transcribe <file>...",
		Short: "Queue media files and transcribe them now",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flagOverrides := map[string]string{
				"model":      config.KeyModel,
				"language":   config.KeyLanguage,
				"task":       config.KeyTask,
				"device-id":  config.KeyDeviceID,
				"timestamp":  config.KeyTimestamp,
				"formats":    config.KeyOutputFormats,
				"output-dir": config.KeyOutputDir,
			}
			for flag, key := range flagOverrides {
				if cmd.Flags().Changed(flag) {
					value, _ := cmd.Flags().GetString(flag)
					ctx.setOverride(key, value)
				}
			}
			if cmd.Flags().Changed("batch-size") {
				ctx.setOverride(config.KeyBatchSize, strconv.Itoa(batchSize))
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			paths := make([]string, 0, len(args))
			for _, arg := range args {
				path, err := config.ExpandPath(arg)
				if err != nil {
					return err
				}
				if !media.IsAudioPath(path) && !media.IsVideoPath(path) {
					return fmt.Errorf("unsupported file type: %s", arg)
				}
				paths = append(paths, path)
			}

			return ctx.withStore(func(store *queue.Store) error {
				out := cmd.OutOrStdout()
				for _, path := range paths {
					job, err := store.Add(cmd.Context(), path, queue.DeriveTitle(path))
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "Queued %s (%s)\n", job.Title, job.UUID)
				}
				if enqueueOnly {
					return nil
				}

				w, err := worker.New(cfg, store, whisper.NewCLI(whisper.WithBinary(cfg.WhisperBin)), notify.NewService(cfg), logger)
				if err != nil {
					return err
				}
				summary, err := w.Run(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Processed %d, failed %d in %s\n",
					summary.Processed, summary.Failed, summary.Duration.Round(time.Second))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&model, "model", "", "Whisper model name")
	cmd.Flags().StringVar(&language, "language", "", "Language code or auto")
	cmd.Flags().StringVar(&task, "task", "", "transcribe or translate")
	cmd.Flags().StringVar(&deviceID, "device-id", "", "Device id, cpu, or mps")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "Inference batch size")
	cmd.Flags().StringVar(&timestamp, "timestamp", "", "Timestamp granularity (chunk or word)")
	cmd.Flags().StringVar(&formats, "formats", "", "Comma-separated output formats")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for transcript files")
	cmd.Flags().BoolVar(&enqueueOnly, "enqueue-only", false, "Queue the files without processing them")

	return cmd
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Process all pending jobs in the queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *queue.Store) error {
				w, err := worker.New(cfg, store, whisper.NewCLI(whisper.WithBinary(cfg.WhisperBin)), notify.NewService(cfg), logger)
				if err != nil {
					return err
				}
				summary, err := w.Run(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Processed %d, failed %d in %s\n",
					summary.Processed, summary.Failed, summary.Duration.Round(time.Second))
				return nil
			})
		},
	}
}
