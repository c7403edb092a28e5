package handler

import (
	"log/slog"
	"net/http"
)

// IsClientError reports whether the status code is in the 4xx range.
func IsClientError(code int) bool {
	return code >= http.StatusBadRequest && code < http.StatusInternalServerError
}

// IsServerError reports whether the status code is 5xx or above.
func IsServerError(code int) bool {
	return code >= http.StatusInternalServerError
}

// LogLevel maps a status code to the level the router fallback logs at:
// warn for client errors, error for server errors, info otherwise.
func LogLevel(code int) slog.Level {
	switch {
	case IsServerError(code):
		return slog.LevelError
	case IsClientError(code):
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
