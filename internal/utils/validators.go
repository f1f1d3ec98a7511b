package utils

import (
	"net/http"
	"unicode/utf8"

	"github.com/crier-dev/crier/internal/errors"
)

type CredentialsValidator struct{}

// Registration form rules: 2-25 characters for both fields.
func (e *CredentialsValidator) Username(username string) error {
	n := utf8.RuneCountInString(username)
	if n < 2 || n > 25 {
		return &errors.ErrorWithStatusCode{Message: "Username must be between 2 and 25 characters long", StatusCode: http.StatusBadRequest}
	}
	return nil
}

func (e *CredentialsValidator) Password(password string) error {
	n := utf8.RuneCountInString(password)
	if n < 2 || n > 25 {
		return &errors.ErrorWithStatusCode{Message: "Password must be between 2 and 25 characters long", StatusCode: http.StatusBadRequest}
	}
	return nil
}

type BoardValidator struct{}

func (e *BoardValidator) Name(name string) error {
	n := utf8.RuneCountInString(name)
	if n == 0 {
		return &errors.ErrorWithStatusCode{Message: "Board name is required", StatusCode: http.StatusBadRequest}
	}
	if n > 50 {
		return &errors.ErrorWithStatusCode{Message: "Board name is too long", StatusCode: http.StatusBadRequest}
	}
	return nil
}

func (e *BoardValidator) Threshold(percent int) error {
	if percent < 1 || percent > 100 {
		return &errors.ErrorWithStatusCode{Message: "Vote threshold must be between 1 and 100", StatusCode: http.StatusBadRequest}
	}
	return nil
}

type PostValidator struct{}

func (e *PostValidator) Subject(subject string) error {
	n := utf8.RuneCountInString(subject)
	if n == 0 {
		return &errors.ErrorWithStatusCode{Message: "Post subject is required", StatusCode: http.StatusBadRequest}
	}
	if n > 200 {
		return &errors.ErrorWithStatusCode{Message: "Post subject is too long", StatusCode: http.StatusBadRequest}
	}
	return nil
}

func (e *PostValidator) Description(description string) error {
	if utf8.RuneCountInString(description) > 10000 {
		return &errors.ErrorWithStatusCode{Message: "Post description is too long", StatusCode: http.StatusBadRequest}
	}
	return nil
}

type CommentValidator struct{}

func (e *CommentValidator) Message(message string) error {
	n := utf8.RuneCountInString(message)
	if n == 0 {
		return &errors.ErrorWithStatusCode{Message: "Comment message is required", StatusCode: http.StatusBadRequest}
	}
	if n > 5000 {
		return &errors.ErrorWithStatusCode{Message: "Comment message is too long", StatusCode: http.StatusBadRequest}
	}
	return nil
}
