package client

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes failures surfaced by the API client
type ErrorKind string

const (
	// KindNetwork means the request never reached the server or no response came back
	KindNetwork ErrorKind = "network"
	// KindHTTP means the server answered with a non-2xx status
	KindHTTP ErrorKind = "http"
	// KindValidation means a client-side precondition failed before any request was sent
	KindValidation ErrorKind = "validation"
	// KindExport means the export endpoint answered with a non-2xx status
	KindExport ErrorKind = "export"
	// KindInvalidResponse means a 2xx body could not be decoded
	KindInvalidResponse ErrorKind = "invalid_response"
	// KindRequest means the request itself could not be encoded or built
	KindRequest ErrorKind = "request"
)

// RequestError is the single error type returned by every client operation
type RequestError struct {
	Kind       ErrorKind
	Op         string
	StatusCode int
	Body       string
	Message    string
	Cause      error
}

// Error implements the error interface
func (e *RequestError) Error() string {
	switch e.Kind {
	case KindHTTP, KindExport:
		msg := e.Message
		if msg == "" {
			msg = e.Body
		}
		return fmt.Sprintf("%s: API error (%d): %s", e.Op, e.StatusCode, msg)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s (%v)", e.Op, e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *RequestError) Unwrap() error {
	return e.Cause
}

// UserMessage returns a user-friendly error message
func (e *RequestError) UserMessage() string {
	switch e.Kind {
	case KindNetwork:
		return "Unable to connect to API. Please check that the scraping service is running."
	case KindHTTP:
		if e.Message != "" {
			return fmt.Sprintf("Request failed (%d): %s", e.StatusCode, e.Message)
		}
		return fmt.Sprintf("Request failed with status %d", e.StatusCode)
	case KindValidation:
		return e.Message
	case KindExport:
		return fmt.Sprintf("Export failed (%d)", e.StatusCode)
	case KindInvalidResponse:
		return "Received an invalid response from the API."
	case KindRequest:
		return "Could not build the API request. Please check the configured API URL."
	default:
		return e.Message
	}
}

// UserMessage unwraps a RequestError into its friendly message and falls
// back to err.Error() for anything else.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.UserMessage()
	}
	return err.Error()
}

func kindOf(err error) ErrorKind {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Kind
	}
	return ""
}

func IsNetwork(err error) bool         { return kindOf(err) == KindNetwork }
func IsHTTP(err error) bool            { return kindOf(err) == KindHTTP }
func IsValidation(err error) bool      { return kindOf(err) == KindValidation }
func IsExport(err error) bool          { return kindOf(err) == KindExport }
func IsInvalidResponse(err error) bool { return kindOf(err) == KindInvalidResponse }
func IsRequest(err error) bool         { return kindOf(err) == KindRequest }

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.StatusCode
	}
	return 0
}

func newNetworkError(op string, cause error) *RequestError {
	return &RequestError{
		Kind:    KindNetwork,
		Op:      op,
		Message: "request failed",
		Cause:   cause,
	}
}

func newHTTPError(op string, status int, body []byte) *RequestError {
	return &RequestError{
		Kind:       KindHTTP,
		Op:         op,
		StatusCode: status,
		Body:       string(body),
		Message:    errorMessage(body),
	}
}

func newExportError(op string, status int, body []byte) *RequestError {
	return &RequestError{
		Kind:       KindExport,
		Op:         op,
		StatusCode: status,
		Body:       string(body),
		Message:    errorMessage(body),
	}
}

func newValidationError(op, message string) *RequestError {
	return &RequestError{
		Kind:    KindValidation,
		Op:      op,
		Message: message,
	}
}

func newInvalidResponseError(op, message string, cause error) *RequestError {
	return &RequestError{
		Kind:    KindInvalidResponse,
		Op:      op,
		Message: message,
		Cause:   cause,
	}
}

func newRequestError(op, message string, cause error) *RequestError {
	return &RequestError{
		Kind:    KindRequest,
		Op:      op,
		Message: message,
		Cause:   cause,
	}
}
