// Package media inspects and prepares input files before transcription.
//
// Inspection shells out to ffprobe and decodes its JSON report. Validation
// enforces the supported container whitelist and requires at least one audio
// stream. Video containers are transcodable only after their audio track is
// extracted with ffmpeg into the staging directory.
package media
