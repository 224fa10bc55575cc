// Package transcript models transcription results and renders them to the
// supported output formats (json, srt, vtt, txt).
package transcript
