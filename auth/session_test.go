// api/auth/session_test.go
package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitpm/api/auth"
	orbit_errors "github.com/orbitpm/api/errors"
	"github.com/orbitpm/api/model"
)

func newSessions(t *testing.T) *auth.RedisSessionManager {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return auth.NewRedisSessionManager(client, []byte("test-signing-key"), time.Hour)
}

func TestRedisSessionManager(t *testing.T) {
	ctx := context.Background()
	principal := &model.Principal{ID: "comp-1", Type: model.TypeCompany}

	t.Run("EstablishAndResolve", func(t *testing.T) {
		sessions := newSessions(t)
		token, err := sessions.Establish(ctx, principal)
		require.NoError(t, err)

		principalID, err := sessions.PrincipalID(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "comp-1", principalID)
	})

	t.Run("InvalidateKillsSession", func(t *testing.T) {
		sessions := newSessions(t)
		token, err := sessions.Establish(ctx, principal)
		require.NoError(t, err)
		require.NoError(t, sessions.Invalidate(ctx, token))

		_, err = sessions.PrincipalID(ctx, token)
		assert.ErrorIs(t, err, orbit_errors.ErrSessionNotFound)
	})

	t.Run("RegenerateRotatesToken", func(t *testing.T) {
		sessions := newSessions(t)
		oldToken, err := sessions.Establish(ctx, principal)
		require.NoError(t, err)

		newToken, err := sessions.RegenerateToken(ctx, oldToken, principal)
		require.NoError(t, err)
		assert.NotEqual(t, oldToken, newToken)

		// Old token is dead, new one resolves.
		_, err = sessions.PrincipalID(ctx, oldToken)
		assert.ErrorIs(t, err, orbit_errors.ErrSessionNotFound)
		principalID, err := sessions.PrincipalID(ctx, newToken)
		require.NoError(t, err)
		assert.Equal(t, "comp-1", principalID)
	})

	t.Run("ForeignTokenRejected", func(t *testing.T) {
		sessions := newSessions(t)
		_, err := sessions.PrincipalID(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, orbit_errors.ErrSessionNotFound)
	})

	t.Run("EmptyKeyGetsEphemeralKey", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { client.Close() })

		// An unconfigured signing key must not degrade to signing with an
		// empty HMAC secret.
		sessions := auth.NewRedisSessionManager(client, nil, time.Hour)
		token, err := sessions.Establish(ctx, principal)
		require.NoError(t, err)
		principalID, err := sessions.PrincipalID(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "comp-1", principalID)

		// A second manager generates a different ephemeral key, so tokens do
		// not transfer between them and none are verifiable with "".
		other := auth.NewRedisSessionManager(client, nil, time.Hour)
		_, err = other.PrincipalID(ctx, token)
		assert.ErrorIs(t, err, orbit_errors.ErrSessionNotFound)
	})
}
