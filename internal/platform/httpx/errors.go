package httpx

import (
	"errors"
	"net/http"

	"github.com/perfumaria/catalog-api/internal/shared"
)

type validationResponse struct {
	Message string             `json:"message"`
	Errors  shared.FieldErrors `json:"errors"`
}

// Unauthenticated rejects a request whose bearer token is missing, invalid or expired.
func Unauthenticated(w http.ResponseWriter) {
	Message(w, http.StatusUnauthorized, "Unauthenticated.")
}

// Unauthorized rejects a login attempt with bad credentials.
func Unauthorized(w http.ResponseWriter) {
	JSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
}

// NotFound sends a 404 with a resource-specific message.
func NotFound(w http.ResponseWriter, message string) {
	Message(w, http.StatusNotFound, message)
}

// ValidationFailed sends the field error set as a 422 response.
func ValidationFailed(w http.ResponseWriter, fields shared.FieldErrors) {
	JSON(w, http.StatusUnprocessableEntity, validationResponse{
		Message: "The given data was invalid.",
		Errors:  fields,
	})
}

// RespondError maps domain errors to their HTTP representations.
func RespondError(w http.ResponseWriter, err error, notFoundMessage string) {
	if ve, ok := shared.AsValidationError(err); ok {
		ValidationFailed(w, ve.Fields)
		return
	}
	switch {
	case errors.Is(err, shared.ErrNotFound):
		NotFound(w, notFoundMessage)
	case errors.Is(err, shared.ErrInvalidCredentials):
		Unauthorized(w)
	case errors.Is(err, shared.ErrUnauthenticated):
		Unauthenticated(w)
	default:
		Message(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}
