// api/errors/auth_errors_test.go
package errors_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	orbit_errors "github.com/orbitpm/api/errors"
)

func TestRateLimitedError_DisplayMinutes(t *testing.T) {
	cases := []struct {
		retryAfter time.Duration
		want       int
	}{
		{30 * time.Second, 1},
		{60 * time.Second, 1},
		{61 * time.Second, 2},
		{119 * time.Second, 2},
		{2 * time.Minute, 2},
		{0, 1},
	}
	for _, tc := range cases {
		err := &orbit_errors.RateLimitedError{RetryAfter: tc.retryAfter}
		assert.Equal(t, tc.want, err.DisplayMinutes(), "retryAfter=%s", tc.retryAfter)
	}
}
