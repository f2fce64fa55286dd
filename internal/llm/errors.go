package llm

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned when the requested provider has no API key.
var ErrNotConfigured = errors.New("ai provider not configured")

// UpstreamError is a non-2xx answer from a provider.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s api status %d: %s", e.Provider, e.StatusCode, truncate(e.Message, 200))
}

func (e *UpstreamError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
