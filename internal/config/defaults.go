package config

const (
	defaultModel       = "openai/whisper-large-v3"
	defaultDeviceID    = "0"
	defaultBatchSize   = 24
	defaultTask        = "transcribe"
	defaultLanguage    = "auto"
	defaultTimestamp   = "chunk"
	defaultOutputDir   = "~/.local/share/scribe/output"
	defaultStagingDir  = "~/.local/share/scribe/staging"
	defaultLogDir      = "~/.local/share/scribe/logs"
	defaultFormats     = "json,srt,txt"
	defaultLogLevel    = "info"
	defaultLogFormat   = "console"
	defaultNtfyTimeout = 10
	defaultAPIBind     = "127.0.0.1:8035"
	defaultWhisperBin  = "insanely-fast-whisper"
	defaultFFmpegBin   = "ffmpeg"
	defaultFFprobeBin  = "ffprobe"
)

// Default returns a Config populated with repository defaults. Path fields
// are unexpanded; BuildConfig normalizes them.
func Default() Config {
	return Config{
		Model:         defaultModel,
		DeviceID:      defaultDeviceID,
		BatchSize:     defaultBatchSize,
		Task:          defaultTask,
		Language:      defaultLanguage,
		Timestamp:     defaultTimestamp,
		OutputDir:     defaultOutputDir,
		StagingDir:    defaultStagingDir,
		LogDir:        defaultLogDir,
		OutputFormats: []string{"json", "srt", "txt"},
		LogLevel:      defaultLogLevel,
		LogFormat:     defaultLogFormat,
		NtfyTimeout:   defaultNtfyTimeout,
		APIBind:       defaultAPIBind,
		WhisperBin:    defaultWhisperBin,
		FFmpegBin:     defaultFFmpegBin,
		FFprobeBin:    defaultFFprobeBin,
	}
}
