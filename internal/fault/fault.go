// Package fault classifies failures into a fixed set of categories, each with
// a message that is safe to show to the user.
package fault

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
)

// Category is the kind of failure as seen by the user.
type Category string

const (
	CategoryNetwork    Category = "network"
	CategoryTimeout    Category = "timeout"
	CategoryAuth       Category = "auth"
	CategoryNotFound   Category = "not_found"
	CategoryValidation Category = "validation"
	CategoryServer     Category = "server"
	CategoryUnknown    Category = "unknown"
)

// User-facing messages, one per category.
const (
	MsgNetwork    = "Unable to connect to the server. Please check your internet connection."
	MsgTimeout    = "Request timed out. Please try again."
	MsgAuth       = "Your session has expired. Please reconfigure your API key."
	MsgNotFound   = "The requested resource was not found."
	MsgServer     = "An error occurred on the server. Please try again later."
	MsgUnknown    = "An unexpected error occurred. Please try again."
	MsgValidation = "Please check your input and try again."
)

// ErrAPIKeyMissing is returned before any authenticated request when no key is configured.
var ErrAPIKeyMissing = &Error{
	Category: CategoryAuth,
	Message:  "API Key is not configured. Please set it in configuration.",
}

// Error is a classified failure.
// StatusCode is zero when the failure did not come with an HTTP status.
type Error struct {
	Category   Category
	Message    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Category, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New creates an already classified error.
func New(category Category, message string) *Error {
	return &Error{Category: category, Message: message}
}

// Validation creates a validation error carrying a message meant for end users.
func Validation(message string) *Error {
	return New(CategoryValidation, message)
}

// StatusError is the raw failure for a non-2xx HTTP response.
type StatusError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *StatusError) Error() string {
	return e.Message
}

var (
	timeoutMarkers = []string{"timeout", "deadline exceeded"}
	networkMarkers = []string{"fetch", "network", "econnrefused", "connection refused", "no such host", "connection reset"}
	authMarkers    = []string{"unauthorized", "authentication"}
)

// Classify maps any failure to an *Error. It never fails; unknown shapes map to
// CategoryUnknown. An error that already carries an *Error is returned as is.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var classified *Error
	if errors.As(err, &classified) {
		return classified
	}

	status := 0
	var se *StatusError
	if errors.As(err, &se) {
		status = se.StatusCode
	}

	msg := strings.ToLower(err.Error())

	switch {
	case isAbort(err) || containsAny(msg, timeoutMarkers):
		return &Error{Category: CategoryTimeout, Message: MsgTimeout, StatusCode: status, Cause: err}
	case isConnFailure(err) || containsAny(msg, networkMarkers):
		return &Error{Category: CategoryNetwork, Message: MsgNetwork, StatusCode: status, Cause: err}
	case containsAny(msg, authMarkers):
		return &Error{Category: CategoryAuth, Message: MsgAuth, StatusCode: status, Cause: err}
	}

	switch status {
	case 401:
		return &Error{Category: CategoryAuth, Message: MsgAuth, StatusCode: status, Cause: err}
	case 404:
		return &Error{Category: CategoryNotFound, Message: MsgNotFound, StatusCode: status, Cause: err}
	case 422:
		// the server's validation message is written for end users
		m := se.Message
		if m == "" {
			m = MsgValidation
		}
		return &Error{Category: CategoryValidation, Message: m, StatusCode: status, Cause: err}
	case 500, 502, 503, 504:
		return &Error{Category: CategoryServer, Message: MsgServer, StatusCode: status, Cause: err}
	}

	return &Error{Category: CategoryUnknown, Message: MsgUnknown, StatusCode: status, Cause: err}
}

// CategoryOf returns the category of err, classifying it if needed.
func CategoryOf(err error) Category {
	if err == nil {
		return ""
	}
	return Classify(err).Category
}

// Message returns the user-safe message for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	return Classify(err).Message
}

func isAbort(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func isConnFailure(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var op *net.OpError
	if errors.As(err, &op) {
		return true
	}
	var dns *net.DNSError
	return errors.As(err, &dns)
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
