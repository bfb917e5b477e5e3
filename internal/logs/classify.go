package logs

import (
	"encoding/json"
	"strings"

	"github.com/cichowlasp/s3-demo/internal/domain"
)

var (
	errorMarkers = []string{"error", "exception", "fail"}
	warnMarkers  = []string{"warn", "caution"}
)

// Classify maps a payload to exactly one severity level. An explicit valid
// level field wins; otherwise the serialized payload is scanned for marker
// substrings. Empty payloads classify as INFO.
func Classify(payload map[string]any) string {
	if len(payload) == 0 {
		return domain.LevelInfo
	}

	if raw, ok := payload["level"].(string); ok {
		switch level := strings.ToUpper(raw); level {
		case domain.LevelInfo, domain.LevelWarn, domain.LevelError:
			return level
		}
	}

	// Heuristic fallback when no structured level is present.
	serialized, err := json.Marshal(payload)
	if err != nil {
		return domain.LevelInfo
	}
	text := strings.ToLower(string(serialized))

	for _, marker := range errorMarkers {
		if strings.Contains(text, marker) {
			return domain.LevelError
		}
	}
	for _, marker := range warnMarkers {
		if strings.Contains(text, marker) {
			return domain.LevelWarn
		}
	}
	return domain.LevelInfo
}
