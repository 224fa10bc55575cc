// Package language normalizes the language identifiers users hand to the
// transcriber.
//
// Whisper accepts two-letter codes; users write anything from "en" to
// "english" to "en-US". Normalize consolidates those mappings in one place
// so the config view, the CLI, and transcript naming agree.
package language
