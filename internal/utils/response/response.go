// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Success responses may return any JSON shape (a student, a list, an id).
// Error responses always look like:
//
//	{ "status": "error", "error": "student ID already exists" }
package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/validate"
	"github.com/go-playground/validator/v10"
)

// Response is the standard envelope returned for error cases.
type Response struct {
	Status string `json:"status"` // "ok" or "error"
	Error  string `json:"error"`  // human-readable error detail
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// WriteJSON writes data as JSON with the given HTTP status code.
// Header() must be set before WriteHeader(); the body follows.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into the standard Response shape.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ValidationError turns the validator's per-field errors into one
// Response, joining the user-facing sentence for each failed field:
//
//	{ "status": "error", "error": "student ID must be 3 digits only, grade must be a single uppercase letter" }
func ValidationError(errs validator.ValidationErrors) Response {
	var errMessages []string

	for _, e := range errs {
		errMessages = append(errMessages, validate.Message(e.Field()))
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(errMessages, ", "),
	}
}

// StatusFor maps a storage or validation error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, validate.ErrInvalid),
		errors.Is(err, storage.ErrUnknownField):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrDuplicateID):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// StoreError writes err with the status chosen by StatusFor. Field
// errors are sent as their bare sentence; store errors carry the sentinel
// message so clients never see operation prefixes.
func StoreError(w http.ResponseWriter, err error) error {
	status := StatusFor(err)

	var fe *validate.FieldError
	switch {
	case errors.As(err, &fe):
		return WriteJSON(w, status, GeneralError(fe))
	case errors.Is(err, storage.ErrNotFound):
		return WriteJSON(w, status, GeneralError(storage.ErrNotFound))
	case errors.Is(err, storage.ErrDuplicateID):
		return WriteJSON(w, status, GeneralError(storage.ErrDuplicateID))
	case errors.Is(err, storage.ErrUnknownField):
		return WriteJSON(w, status, GeneralError(storage.ErrUnknownField))
	default:
		return WriteJSON(w, status, GeneralError(err))
	}
}
