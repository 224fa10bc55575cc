package config

// Setting names recognized by the typed view. The resolver itself carries
// arbitrary keys; these are the ones scribe acts on.
const (
	KeyModel            = "WHISPER_MODEL"
	KeyDeviceID         = "WHISPER_DEVICE_ID"
	KeyBatchSize        = "WHISPER_BATCH_SIZE"
	KeyTask             = "WHISPER_TASK"
	KeyLanguage         = "WHISPER_LANGUAGE"
	KeyTimestamp        = "WHISPER_TIMESTAMP"
	KeyHuggingFaceToken = "HUGGINGFACE_TOKEN"
	KeyOutputDir        = "OUTPUT_DIR"
	KeyStagingDir       = "STAGING_DIR"
	KeyLogDir           = "LOG_DIR"
	KeyOutputFormats    = "OUTPUT_FORMATS"
	KeyLogLevel         = "LOG_LEVEL"
	KeyLogFormat        = "LOG_FORMAT"
	KeyNtfyTopic        = "NTFY_TOPIC"
	KeyNtfyTimeout      = "NTFY_TIMEOUT"
	KeyAPIBind          = "API_BIND"
	KeyAPIToken         = "API_TOKEN"
	KeyWhisperBin       = "WHISPER_BIN"
	KeyFFmpegBin        = "FFMPEG_BIN"
	KeyFFprobeBin       = "FFPROBE_BIN"
)

// KnownKeys returns every setting name the typed view recognizes, in the
// order used when reading the process environment as a source.
func KnownKeys() []string {
	return []string{
		KeyModel,
		KeyDeviceID,
		KeyBatchSize,
		KeyTask,
		KeyLanguage,
		KeyTimestamp,
		KeyHuggingFaceToken,
		KeyOutputDir,
		KeyStagingDir,
		KeyLogDir,
		KeyOutputFormats,
		KeyLogLevel,
		KeyLogFormat,
		KeyNtfyTopic,
		KeyNtfyTimeout,
		KeyAPIBind,
		KeyAPIToken,
		KeyWhisperBin,
		KeyFFmpegBin,
		KeyFFprobeBin,
	}
}
