package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/ahmedwebmail/online-shop/pkg/errors"
	"github.com/ahmedwebmail/online-shop/pkg/validator"
)

// Response is the standard success envelope.
type Response struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// ErrorBody carries the machine-readable code and human-readable message.
type ErrorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// WriteJSON writes a success envelope with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Response{Success: true, Data: data})
}

// WriteError maps an error to its HTTP status and writes an error envelope.
func WriteError(w http.ResponseWriter, err error) {
	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		WriteValidationError(w, verr)
		return
	}

	code := "INTERNAL"
	message := "internal server error"

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		code = appErr.Code
		message = appErr.Message
	} else {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			code, message = "NOT_FOUND", "resource not found"
		case errors.Is(err, apperrors.ErrAlreadyExists):
			code, message = "ALREADY_EXISTS", "resource already exists"
		case errors.Is(err, apperrors.ErrInvalidInput):
			code, message = "INVALID_INPUT", "invalid input"
		case errors.Is(err, apperrors.ErrConflict):
			code, message = "CONFLICT", "conflict"
		}
	}

	writeErrorBody(w, apperrors.HTTPStatus(err), ErrorBody{Code: code, Message: message})
}

// WriteValidationError writes a 400 with per-field validation messages.
func WriteValidationError(w http.ResponseWriter, verr *validator.ValidationError) {
	writeErrorBody(w, http.StatusBadRequest, ErrorBody{
		Code:    "INVALID_INPUT",
		Message: "validation failed",
		Fields:  verr.Fields(),
	})
}

func writeErrorBody(w http.ResponseWriter, status int, body ErrorBody) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Success: false, Error: body})
}
