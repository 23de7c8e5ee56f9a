package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrAccountNotFound         = errors.New("account not found")
	ErrSecretNotFound          = errors.New("secret not found")
	ErrDuplicateEmail          = errors.New("duplicate email")
	ErrInvalidEmail            = errors.New("invalid email")
	ErrInvalidToken            = errors.New("invalid refresh token")
	ErrTokenRevoked            = errors.New("refresh token revoked")
	ErrRateLimited             = errors.New("rate limited")
	ErrForbidden               = errors.New("forbidden")
	ErrOAuthCancelled          = errors.New("oauth login cancelled")
	ErrLoginInProgress         = errors.New("oauth login already in progress")
	ErrImportSourceUnavailable = errors.New("import source unavailable")
	ErrMalformedImport         = errors.New("malformed import source")
	ErrAmbiguousAccount        = errors.New("ambiguous account reference")
)

// RateLimitError is returned when the provider answers 429. RetryAfter is
// zero when the response carried no usable delay.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter <= 0 {
		return ErrRateLimited.Error()
	}
	delay := e.RetryAfter.Round(time.Millisecond)
	if delay >= time.Second {
		delay = delay.Round(time.Second)
	}
	return fmt.Sprintf("%s, retry in %s", ErrRateLimited, delay)
}

func (e *RateLimitError) Unwrap() error {
	return ErrRateLimited
}

// IsPermanent reports whether retrying the operation cannot succeed without
// user action.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrTokenRevoked) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrInvalidToken)
}

func IsRetryable(err error) bool {
	return errors.Is(err, ErrRateLimited)
}
