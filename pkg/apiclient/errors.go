package apiclient

import (
	"fmt"
	"net/http"
)

// ErrorType classifies an API failure for the caller
type ErrorType string

const (
	ErrorTypeTimeout        ErrorType = "TIMEOUT_ERROR"
	ErrorTypeNetwork        ErrorType = "NETWORK_ERROR"
	ErrorTypeAuthentication ErrorType = "AUTHENTICATION_ERROR"
	ErrorTypeAuthorization  ErrorType = "AUTHORIZATION_ERROR"
	ErrorTypeNotFound       ErrorType = "NOT_FOUND_ERROR"
	ErrorTypeConflict       ErrorType = "CONFLICT_ERROR"
	ErrorTypeRateLimit      ErrorType = "RATE_LIMIT_ERROR"
	ErrorTypeServer         ErrorType = "SERVER_ERROR"
	ErrorTypeUnknown        ErrorType = "UNKNOWN_ERROR"
)

// APIError is the normalized error surfaced for every failed call
type APIError struct {
	Type       ErrorType
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (%d): %s", e.Type, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// classifyStatus maps an HTTP status code to an error type
func classifyStatus(status int) ErrorType {
	switch {
	case status == http.StatusUnauthorized:
		return ErrorTypeAuthentication
	case status == http.StatusForbidden:
		return ErrorTypeAuthorization
	case status == http.StatusNotFound:
		return ErrorTypeNotFound
	case status == http.StatusConflict:
		return ErrorTypeConflict
	case status == http.StatusTooManyRequests:
		return ErrorTypeRateLimit
	case status >= 500:
		return ErrorTypeServer
	}
	return ErrorTypeUnknown
}
