package jwt

import (
	"errors"
	"fmt"
)

// Predefined errors for token parsing and validation. Low-level methods
// surface the specific kind so callers can branch; the Validate
// convenience function collapses all of them to false.
var (
	// Structural errors
	ErrEmptyToken     = errors.New("empty token: token string cannot be empty")
	ErrTokenTooLarge  = errors.New("token too large: maximum 8192 characters allowed")
	ErrMalformedToken = errors.New("malformed token: expected exactly three dot-separated segments")
	ErrInvalidSegment = errors.New("invalid segment: not base64url-encoded JSON")

	// Header errors
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm: only HS256 is accepted")

	// Validation errors
	ErrTokenExpired      = errors.New("token has expired")
	ErrTokenNotYetValid  = errors.New("token is not valid yet")
	ErrSignatureMismatch = errors.New("invalid token: signature verification failed")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrInvalidSecret = errors.New("invalid secret key")
)

// BuildError reports a builder misconfiguration detected at Build time,
// such as a missing header field or a secret violating the key policy.
type BuildError struct {
	Field   string // The builder field that failed validation
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *BuildError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("build failed for field '%s': %s: %v", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("build failed for field '%s': %s", e.Field, e.Message)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}
