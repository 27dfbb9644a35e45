// api/errors/auth_errors.go
package errors

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidCredentials is deliberately generic so responses never reveal
	// whether the email exists.
	ErrInvalidCredentials = errors.New("these credentials do not match our records")

	ErrLoginNotPermittedForType = errors.New("password login is reserved for workspace owners and platform admins")
	ErrAccountDisabled          = errors.New("your account has been disabled")
	ErrPrincipalNotFound        = errors.New("principal not found")
	ErrSessionNotFound          = errors.New("session not found")
)

// RateLimitedError is returned while the lockout window for a throttle key is
// active. RetryAfter carries the remaining cooldown.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("too many login attempts, try again in %d seconds", int(e.RetryAfter.Seconds()))
}

// DisplayMinutes returns the cooldown rounded up to whole minutes for display.
func (e *RateLimitedError) DisplayMinutes() int {
	mins := int(e.RetryAfter.Minutes())
	if e.RetryAfter%time.Minute != 0 {
		mins++
	}
	if mins < 1 {
		mins = 1
	}
	return mins
}

// ValidationError carries field-level messages for malformed login input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}
