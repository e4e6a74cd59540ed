// Package realtime mirrors the latest state of an entity into a low-latency
// key-path store watched by live clients. A mirror is a cache: writes are
// last-writer-wins per path and may lag or diverge from the primary store.
package realtime

import (
	"context"
	"strings"
)

type Mirror interface {
	// SetPath replaces the value stored at path with fields.
	SetPath(ctx context.Context, path string, fields map[string]interface{}) error
}

type serverTimestamp struct{}

// ServerTimestamp may be used as a field value; each backend replaces it with
// its own write time.
var ServerTimestamp = serverTimestamp{}

// Path joins segments into a slash separated key path.
func Path(segments ...string) string {
	trimmed := make([]string, 0, len(segments))
	for _, s := range segments {
		s = strings.Trim(s, "/")
		if s != "" {
			trimmed = append(trimmed, s)
		}
	}
	return strings.Join(trimmed, "/")
}

func resolveTimestamps(fields map[string]interface{}, value interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if _, ok := v.(serverTimestamp); ok {
			out[k] = value
			continue
		}
		out[k] = v
	}
	return out
}
