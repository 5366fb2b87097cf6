package service

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Local validation failures, surfaced before any request is sent.
var (
	errInvalidEmail    = errors.New("a valid email address is required")
	errInvalidPassword = errors.New("password must be at least 6 characters")
	errInvalidAvatar   = errors.New("avatar URL is required")
)

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	return errors.As(err, target)
}
