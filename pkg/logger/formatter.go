package logger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// topLevelKeys are entry fields lifted out of "fields" so log pipelines can
// index them directly.
var topLevelKeys = map[string]struct{}{
	"http_request_id": {},
	"user_id":         {},
	"event":           {},
}

// JSONFormatter writes one JSON object per entry. Structured fields go under
// "fields" except the keys listed in topLevelKeys.
type JSONFormatter struct {
	TimestampFormat string
	PrettyPrint     bool
	AppName         string
	Version         string
}

func (f *JSONFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	layout := f.TimestampFormat
	if layout == "" {
		layout = time.RFC3339Nano
	}

	out := map[string]interface{}{
		"ts":    entry.Time.UTC().Format(layout),
		"level": entry.Level.String(),
		"msg":   entry.Message,
	}
	if f.AppName != "" {
		out["app"] = f.AppName
	}
	if f.Version != "" {
		out["version"] = f.Version
	}
	if entry.HasCaller() {
		out["caller"] = fmt.Sprintf("%s:%d", filepath.Base(entry.Caller.File), entry.Caller.Line)
	}

	fields := make(map[string]interface{}, len(entry.Data))
	for k, v := range entry.Data {
		if err, ok := v.(error); ok {
			v = err.Error()
		}
		if _, ok := topLevelKeys[k]; ok {
			out[k] = v
			continue
		}
		fields[k] = v
	}
	if len(fields) > 0 {
		out["fields"] = fields
	}

	buf := entry.Buffer
	if buf == nil {
		buf = &bytes.Buffer{}
	}
	enc := json.NewEncoder(buf)
	if f.PrettyPrint {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("encode log entry: %w", err)
	}
	return buf.Bytes(), nil
}
