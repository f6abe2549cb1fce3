package dto

import "net/http"

// General error codes
const (
	ErrCodeUnknown    = "UNKNOWN"
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
)

// Auth error codes
const (
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "TOKEN_INVALID"
)

// Resource error codes
const (
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeConflict      = "CONFLICT"
)

// Checkout and cart error codes. These mirror the domain error codes
// one to one so clients can branch on them.
const (
	ErrCodeEmptyCart          = "EMPTY_CART"
	ErrCodeMissingPhone       = "MISSING_PHONE"
	ErrCodeMissingField       = "MISSING_FIELD"
	ErrCodeCheckoutInProgress = "CHECKOUT_IN_PROGRESS"
	ErrCodeProductUnavailable = "PRODUCT_UNAVAILABLE"

	ErrCodeOrderCreationFailed = "ORDER_CREATION_FAILED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:    http.StatusInternalServerError,
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeValidation: http.StatusBadRequest,
	ErrCodeBadRequest: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,

	// Checkout guards -> 400 Bad Request: the submission itself is
	// rejected before any write
	ErrCodeEmptyCart:    http.StatusBadRequest,
	ErrCodeMissingPhone: http.StatusBadRequest,
	ErrCodeMissingField: http.StatusBadRequest,

	// A second submit while one is in flight
	ErrCodeCheckoutInProgress: http.StatusConflict,

	// Order write failed downstream; the collaborator's message is
	// carried through to the client
	ErrCodeOrderCreationFailed: http.StatusInternalServerError,

	// Business rule violations -> 422 Unprocessable Entity
	ErrCodeProductUnavailable: http.StatusUnprocessableEntity,
	"INVALID_STATE":           http.StatusUnprocessableEntity,

	// Malformed domain input -> 400 Bad Request
	"INVALID_INPUT":         http.StatusBadRequest,
	"INVALID_PRODUCT":       http.StatusBadRequest,
	"INVALID_PRODUCT_NAME":  http.StatusBadRequest,
	"INVALID_PRICE":         http.StatusBadRequest,
	"INVALID_QUANTITY":      http.StatusBadRequest,
	"INVALID_ORDER":         http.StatusBadRequest,
	"INVALID_STATUS":        http.StatusBadRequest,
	"INVALID_SHIPPING_TIER": http.StatusBadRequest,
	"INVALID_SHIPPING_COST": http.StatusBadRequest,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not mapped.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
