package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/alexanderramin/neuroplan/internal/llm"
	"github.com/alexanderramin/neuroplan/internal/repository"
	"github.com/alexanderramin/neuroplan/internal/service"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps service and storage errors to an HTTP status and the
// message shown to the client.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrMasterConversation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, service.ErrGenerationFailed):
		return http.StatusInternalServerError, err.Error()
	case errors.Is(err, llm.ErrUnavailable), errors.Is(err, llm.ErrTimeout),
		errors.Is(err, llm.ErrDisabled), errors.Is(err, llm.ErrRetryExhausted), errors.Is(err, llm.ErrGateway),
		errors.Is(err, llm.ErrInvalidOutput):
		return http.StatusBadGateway, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.ErrorContext(r.Context(), "request failed",
			"error", err.Error(), "path", r.URL.Path, "request_id", RequestID(r.Context()))
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

// decodeJSON reads a bounded JSON body into v. An empty body leaves v as is.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}
