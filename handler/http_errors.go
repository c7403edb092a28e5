// Package handler provides the HTTP error vocabulary shared by route
// handlers and the router's error chain. Handlers return these errors; the
// error middleware and the router fallback turn them into responses with
// the right status code.
package handler

import "net/http"

// HTTPError is an error carrying an HTTP status code and a stable machine
// key. The key doubles as the response body written by the router fallback,
// so it should stay short and lowercase (e.g. "not_found").
type HTTPError struct {
	Code int
	Key  string
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Key
}

// StatusCode returns the HTTP status code for the error.
func (e HTTPError) StatusCode() int {
	return e.Code
}

// Common client errors.
var (
	ErrBadRequest       = HTTPError{Code: http.StatusBadRequest, Key: "bad_request"}
	ErrUnauthorized     = HTTPError{Code: http.StatusUnauthorized, Key: "unauthorized"}
	ErrForbidden        = HTTPError{Code: http.StatusForbidden, Key: "forbidden"}
	ErrNotFound         = HTTPError{Code: http.StatusNotFound, Key: "not_found"}
	ErrMethodNotAllowed = HTTPError{Code: http.StatusMethodNotAllowed, Key: "method_not_allowed"}
	ErrConflict         = HTTPError{Code: http.StatusConflict, Key: "conflict"}
	ErrGone             = HTTPError{Code: http.StatusGone, Key: "gone"}
	ErrUnprocessable    = HTTPError{Code: http.StatusUnprocessableEntity, Key: "unprocessable_entity"}
	ErrTooManyRequests  = HTTPError{Code: http.StatusTooManyRequests, Key: "too_many_requests"}
)

// Common server errors.
var (
	ErrInternal           = HTTPError{Code: http.StatusInternalServerError, Key: "internal_server_error"}
	ErrNotImplemented     = HTTPError{Code: http.StatusNotImplemented, Key: "not_implemented"}
	ErrBadGateway         = HTTPError{Code: http.StatusBadGateway, Key: "bad_gateway"}
	ErrServiceUnavailable = HTTPError{Code: http.StatusServiceUnavailable, Key: "service_unavailable"}
	ErrGatewayTimeout     = HTTPError{Code: http.StatusGatewayTimeout, Key: "gateway_timeout"}
)

// NewHTTPError creates a custom HTTP error with the given status code and
// machine key.
//
//	err := handler.NewHTTPError(http.StatusPaymentRequired, "subscription_expired")
func NewHTTPError(code int, key string) HTTPError {
	return HTTPError{Code: code, Key: key}
}
