package log

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// JSONFormatter renders entries as single-line JSON objects.
type JSONFormatter struct {
	// TimestampFormat overrides the default RFC3339Nano timestamps.
	TimestampFormat string
}

func (f *JSONFormatter) Format(entry *Entry) ([]byte, error) {
	tsFormat := f.TimestampFormat
	if tsFormat == "" {
		tsFormat = time.RFC3339Nano
	}
	data := make(map[string]interface{}, len(entry.Fields)+3)
	for k, v := range entry.Fields {
		data[k] = v
	}
	data["level"] = entry.Level.String()
	data["msg"] = entry.Message
	data["ts"] = entry.Timestamp.Format(tsFormat)

	b, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// TextFormatter renders entries as "ts LEVEL msg key=value ...".
type TextFormatter struct {
	// TimestampFormat overrides the default time-only timestamps.
	TimestampFormat string
}

func (f *TextFormatter) Format(entry *Entry) ([]byte, error) {
	tsFormat := f.TimestampFormat
	if tsFormat == "" {
		tsFormat = "15:04:05.000"
	}

	var sb strings.Builder
	sb.WriteString(entry.Timestamp.Format(tsFormat))
	sb.WriteByte(' ')
	sb.WriteString(entry.Level.String())
	sb.WriteByte(' ')
	sb.WriteString(entry.Message)

	if len(entry.Fields) > 0 {
		keys := make([]string, 0, len(entry.Fields))
		for k := range entry.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteByte(' ')
			sb.WriteString(k)
			sb.WriteByte('=')
			sb.WriteString(fmt.Sprintf("%v", entry.Fields[k]))
		}
	}
	sb.WriteByte('\n')
	return []byte(sb.String()), nil
}
