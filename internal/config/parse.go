package config

import (
	"bufio"
	"io"
	"strings"
)

// parseEntries reads key=value lines from r.
//
// Line rules:
//   - Empty lines and lines starting with # are skipped.
//   - Lines without an = are malformed and skipped; siblings still apply.
//   - The line splits on the first = only; whitespace around key and value
//     is trimmed.
//   - A line with an empty key is malformed and skipped.
func parseEntries(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.Index(line, "=")
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		if key == "" {
			continue
		}
		value := strings.TrimSpace(line[idx+1:])
		entries = append(entries, Entry{Key: key, Value: value})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
