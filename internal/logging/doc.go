// Package logging builds the slog loggers scribe writes through.
//
// Console output is a single line per record: RFC3339 UTC timestamp, level
// label, optional component prefix, message, then key=value attributes.
// JSON output uses the stock slog JSON handler with ts/msg key names. The
// resolver's diagnostic lines ride the same handlers, so diagnostics look
// like every other informational log line.
package logging
