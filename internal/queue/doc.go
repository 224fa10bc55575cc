// Package queue persists transcription jobs in SQLite.
//
// Jobs move through a small lifecycle: pending, processing, completed,
// failed. The store runs in WAL mode with a busy-retry loop so the CLI,
// the worker, and the API server can share one database file.
package queue
