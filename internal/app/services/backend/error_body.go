package backend

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

// extractErrorMessage turns a backend error body into one line of text.
// It understands {"error": "..."}, {"detail": "..."}, {"message": "..."}
// and field-keyed validation maps such as {"username": ["taken"]}, which
// are flattened to "username: taken".
func extractErrorMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}
	if trimmed[0] != '{' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err == nil {
			return strings.TrimSpace(text)
		}
		return ""
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return ""
	}

	for _, key := range []string{"error", "detail"} {
		if raw, ok := fields[key]; ok {
			if message := flattenValue(raw); message != "" {
				return message
			}
		}
	}
	if raw, ok := fields["errors"]; ok {
		if message := extractErrorMessage(raw); message != "" {
			return message
		}
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		switch key {
		case "success", "status", "status_code", "message", "errors":
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		if message := flattenValue(fields[key]); message != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", key, message))
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, "; ")
	}

	if raw, ok := fields["message"]; ok {
		return flattenValue(raw)
	}
	return ""
}

func flattenValue(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}
	switch trimmed[0] {
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return ""
		}
		return strings.TrimSpace(text)
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return ""
		}
		messages := make([]string, 0, len(items))
		for _, item := range items {
			if message := flattenValue(item); message != "" {
				messages = append(messages, message)
			}
		}
		return strings.Join(messages, ", ")
	case '{':
		return extractErrorMessage(trimmed)
	}
	return ""
}
