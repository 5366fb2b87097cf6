package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators registers CLI-specific validation rules.
// Must be called before validating Config.
func RegisterCustomValidators(v *validator.Validate) error {
	// http_origin: validates "http(s)://host[:port]" with no path
	if err := v.RegisterValidation("http_origin", validateHTTPOrigin); err != nil {
		return fmt.Errorf("failed to register http_origin validator: %w", err)
	}
	return nil
}

// validateHTTPOrigin validates an asset origin: an absolute http(s) URL
// with no path component, e.g. "http://localhost:8080".
func validateHTTPOrigin(fl validator.FieldLevel) bool {
	origin := fl.Field().String()
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != "" && (u.Path == "" || u.Path == "/")
}

// Validate validates the Config using struct tags plus the duration fields
// that the tags cannot express.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())

	if err := RegisterCustomValidators(v); err != nil {
		return err
	}

	if err := v.Struct(c); err != nil {
		return formatValidationErrors(err)
	}

	return c.validateDurations()
}

// validateDurations checks the string-typed duration fields parse.
func (c *Config) validateDurations() error {
	if _, err := time.ParseDuration(c.API.Timeout); err != nil {
		return fmt.Errorf("api.timeout: %w", err)
	}
	if c.API.CacheTTL != "0" {
		if _, err := time.ParseDuration(c.API.CacheTTL); err != nil {
			return fmt.Errorf("api.cache_ttl: %w", err)
		}
	}
	if _, err := time.ParseDuration(c.History.Retention); err != nil {
		return fmt.Errorf("history.retention: %w", err)
	}
	return nil
}

// formatValidationErrors converts validator.ValidationErrors to
// user-friendly messages.
func formatValidationErrors(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var messages []string
		for _, e := range validationErrors {
			messages = append(messages, formatSingleValidationError(e))
		}
		return errors.New(strings.Join(messages, "; "))
	}
	return err
}

func formatSingleValidationError(e validator.FieldError) string {
	field := e.Namespace()
	tag := e.Tag()

	switch tag {
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "hostname_port":
		return fmt.Sprintf("%s must be a valid host:port", field)
	case "http_origin":
		return fmt.Sprintf("%s must be an http(s) origin without a path", field)
	default:
		return fmt.Sprintf("%s failed validation: %s", field, tag)
	}
}
