// Package whisper wraps the insanely-fast-whisper command line tool.
//
// The tool is an external, pre-trained collaborator: scribe builds its
// argument list from resolved settings, streams its JSON progress lines, and
// decodes the transcript file it leaves behind. No model logic lives here.
package whisper
