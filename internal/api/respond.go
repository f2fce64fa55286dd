package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dgallion1/docentia/internal/llm"
	"github.com/dgallion1/docentia/internal/requests"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// jsonError writes {"error", "detail"}. The web client reads detail.
func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg, "detail": msg})
}

// errorStatus maps an error from decoding or generation to a status code.
func errorStatus(err error) int {
	var (
		verrs    validation.Errors
		decErr   *requests.DecodeError
		upstream *llm.UpstreamError
		maxBytes *http.MaxBytesError
	)
	switch {
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &verrs), errors.As(err, &decErr):
		return http.StatusBadRequest
	case errors.Is(err, llm.ErrNotConfigured):
		return http.StatusServiceUnavailable
	case errors.As(err, &upstream):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// writeError reports err with the status errorStatus picks.
func writeError(w http.ResponseWriter, err error) {
	jsonError(w, requests.Describe(err), errorStatus(err))
}
