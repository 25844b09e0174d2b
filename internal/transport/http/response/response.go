package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/corray333/backend-labs/restaurant/internal/service/errs"
)

const (
	MsgInvalidID     = "Invalid id"
	MsgInvalidJSON   = "Invalid JSON body"
	MsgRouteNotFound = "Route not found"
)

type errorBody struct {
	Error string `json:"error"`
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error sending response", "error", err)
	}
}

// Message writes {"error": msg} with the given status code.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, errorBody{Error: msg})
}

// Error writes err with the status code matching its kind:
// 400 for validation errors, 404 for not found errors and 500 otherwise.
func Error(w http.ResponseWriter, err error) {
	Message(w, StatusOf(err), err.Error())
}

// StatusOf maps a service error to its HTTP status code.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// NotFound answers unknown routes.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	Message(w, http.StatusNotFound, MsgRouteNotFound)
}
