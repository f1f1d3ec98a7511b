package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var NotFound = errors.New("Not found")

// AlreadyFinalized rejects vote mutation on a post whose notification
// already fired. The vote state is frozen at that point.
var AlreadyFinalized = errors.New("Post voting is closed")

// EndpointGone marks a push registration the push service reports as
// permanently expired or unsubscribed. Fan-out prunes it and moves on.
var EndpointGone = errors.New("Push endpoint gone")

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// IsNotFound matches both the NotFound sentinel and any status error
// carrying a 404, which is how the storage layer reports missing rows.
func IsNotFound(err error) bool {
	var statusErr *ErrorWithStatusCode
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusNotFound
	}
	return errors.Is(err, NotFound)
}

// Check if err is instance of T for custom error types
func Is[T error](err error) bool {
	if _, ok := err.(T); ok {
		return true
	}
	return false
}

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Validation error: %s", e.Message)
}
