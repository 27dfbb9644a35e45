// api/auth/clientip_test.go
package auth_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orbitpm/api/auth"
)

func TestClientIP(t *testing.T) {
	t.Run("ForwardedForWins", func(t *testing.T) {
		headers := http.Header{}
		headers.Set("X-Forwarded-For", "203.0.113.7")
		headers.Set("X-Real-Ip", "198.51.100.9")
		assert.Equal(t, "203.0.113.7", auth.ClientIP(headers, "192.0.2.1:4444"))
	})

	t.Run("LeftMostPublicAddressInChain", func(t *testing.T) {
		headers := http.Header{}
		headers.Set("X-Forwarded-For", "10.0.0.5, 203.0.113.7, 172.16.0.1")
		assert.Equal(t, "203.0.113.7", auth.ClientIP(headers, "192.0.2.1:4444"))
	})

	t.Run("PrivateAndReservedRejected", func(t *testing.T) {
		headers := http.Header{}
		headers.Set("X-Forwarded-For", "10.0.0.5, 127.0.0.1, 169.254.0.10")
		headers.Set("X-Real-Ip", "198.51.100.9")
		assert.Equal(t, "198.51.100.9", auth.ClientIP(headers, "192.0.2.1:4444"))
	})

	t.Run("FallsBackToRemoteAddr", func(t *testing.T) {
		assert.Equal(t, "192.0.2.1", auth.ClientIP(http.Header{}, "192.0.2.1:4444"))
	})

	t.Run("GarbageHeaderIgnored", func(t *testing.T) {
		headers := http.Header{}
		headers.Set("X-Forwarded-For", "not-an-ip")
		assert.Equal(t, "192.0.2.1", auth.ClientIP(headers, "192.0.2.1:4444"))
	})
}
