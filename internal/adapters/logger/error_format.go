package logger

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// messager describes an error that can report its own message without the
// chain. This matches the Message() method of zerr.Error (go.trai.ch/zerr
// v0.3.0+). Errors without it fall back to standard handling.
type messager interface {
	Message() string
}

// metadataer describes an error carrying structured metadata, matching the
// Metadata() method of zerr.Error.
type metadataer interface {
	Metadata() map[string]any
}

// errorEntry is one level of an unwrapped error chain.
type errorEntry struct {
	message  string
	metadata map[string]any
}

// collectErrorEntries walks the error chain outermost first. Each zerr error
// contributes its own message and metadata; the first non-zerr error
// contributes its full Error() string and terminates the walk.
func collectErrorEntries(err error) []errorEntry {
	var entries []errorEntry

	current := err
	for current != nil {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, errorEntry{message: current.Error()})
			break
		}

		entry := errorEntry{message: m.Message()}
		if md, ok := current.(metadataer); ok {
			entry.metadata = md.Metadata()
		}
		entries = append(entries, entry)

		current = errors.Unwrap(current)
	}

	return entries
}

// formatErrorEntries renders collected entries hierarchically. The outermost
// message leads, subsequent causes are listed under a "Caused by:" header.
func formatErrorEntries(entries []errorEntry) string {
	var out []string

	for i, entry := range entries {
		lines := strings.Split(entry.message, "\n")
		lines[0] += formatMetadata(entry.metadata)

		if i == 0 {
			out = append(out, "Error: "+lines[0])
			for _, line := range lines[1:] {
				out = append(out, "       "+line)
			}
			continue
		}

		if i == 1 {
			out = append(out, "", "  Caused by:")
		}
		out = append(out, "    → "+lines[0])
		for _, line := range lines[1:] {
			out = append(out, "      "+line)
		}
	}

	return strings.Join(out, "\n")
}

// formatMetadata renders metadata as " (k=v, ...)" with keys sorted for
// stable output. Empty or nil metadata renders as nothing.
func formatMetadata(metadata map[string]any) string {
	if len(metadata) == 0 {
		return ""
	}

	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, metadata[k]))
	}

	return " (" + strings.Join(parts, ", ") + ")"
}
