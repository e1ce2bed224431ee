package dto

import "net/http"

// General error codes
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeUnauthorized is used when identity headers are missing or malformed
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeForbidden is used when the actor's role lacks permission
	ErrCodeForbidden = "FORBIDDEN"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed here fall back to the category prefix rules in
// GetHTTPStatus.
var ErrorCodeHTTPStatus = map[string]int{
	// General
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	// Missing resources -> 404 Not Found
	ErrCodeNotFound:     http.StatusNotFound,
	"STORE_NOT_FOUND":   http.StatusNotFound,
	"PRODUCT_NOT_FOUND": http.StatusNotFound,
	"ORDER_NOT_FOUND":   http.StatusNotFound,
	"METHOD_NOT_FOUND":  http.StatusNotFound,

	// Business rule violations -> 422 Unprocessable Entity
	"INSUFFICIENT_STOCK":     http.StatusUnprocessableEntity,
	"ILLEGAL_TRANSITION":     http.StatusUnprocessableEntity,
	"AMOUNT_MISMATCH":        http.StatusUnprocessableEntity,
	"INVALID_PAYMENT_METHOD": http.StatusUnprocessableEntity,
	"DUPLICATE_PRODUCT":      http.StatusUnprocessableEntity,
	"EMPTY_ORDER":            http.StatusUnprocessableEntity,
	"INVALID_STATE":          http.StatusUnprocessableEntity,
	"PRODUCT_REFERENCED":     http.StatusUnprocessableEntity,

	// Duplicates -> 409 Conflict
	"ALREADY_EXISTS": http.StatusConflict,
	"METHOD_EXISTS":  http.StatusConflict,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Validation codes (INVALID_*) map to 400; anything unknown is a 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	if len(code) > 8 && code[:8] == "INVALID_" {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
