// api/auth/session.go
package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	orbit_errors "github.com/orbitpm/api/errors"
	logger "github.com/orbitpm/api/logging"
	"github.com/orbitpm/api/model"
)

// SessionManager abstracts the session/identity provider. Every login rotates
// the token; every rejection path invalidates whatever was established.
type SessionManager interface {
	Establish(ctx context.Context, p *model.Principal) (string, error)
	Invalidate(ctx context.Context, token string) error
	RegenerateToken(ctx context.Context, token string, p *model.Principal) (string, error)
	PrincipalID(ctx context.Context, token string) (string, error)
}

const sessionPrefix = "session:"

// RedisSessionManager stores session state in Redis and hands out signed JWTs
// referencing it. A token is only live while its session key exists.
type RedisSessionManager struct {
	client     *redis.Client
	signingKey []byte
	ttl        time.Duration
}

func NewRedisSessionManager(client *redis.Client, signingKey []byte, ttl time.Duration) *RedisSessionManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if len(signingKey) == 0 {
		// Never sign with an empty key. The ephemeral key invalidates all
		// sessions on restart, so deployments must configure auth.sessionKey.
		signingKey = make([]byte, 32)
		if _, err := rand.Read(signingKey); err != nil {
			panic(fmt.Sprintf("failed to generate session signing key: %v", err))
		}
		logger.Warn("No session signing key configured, generated an ephemeral one")
	}
	return &RedisSessionManager{client: client, signingKey: signingKey, ttl: ttl}
}

func (m *RedisSessionManager) Establish(ctx context.Context, p *model.Principal) (string, error) {
	sessionID := uuid.NewString()
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   p.ID,
		ID:        sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	if err := m.client.Set(ctx, sessionPrefix+sessionID, p.ID, m.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	return token, nil
}

func (m *RedisSessionManager) Invalidate(ctx context.Context, token string) error {
	claims, err := m.parse(token)
	if err != nil {
		// Nothing to tear down for a token we never issued.
		return nil
	}
	if err := m.client.Del(ctx, sessionPrefix+claims.ID).Err(); err != nil {
		return fmt.Errorf("failed to invalidate session: %w", err)
	}
	return nil
}

func (m *RedisSessionManager) RegenerateToken(ctx context.Context, token string, p *model.Principal) (string, error) {
	if err := m.Invalidate(ctx, token); err != nil {
		return "", err
	}
	return m.Establish(ctx, p)
}

func (m *RedisSessionManager) PrincipalID(ctx context.Context, token string) (string, error) {
	claims, err := m.parse(token)
	if err != nil {
		return "", orbit_errors.ErrSessionNotFound
	}
	principalID, err := m.client.Get(ctx, sessionPrefix+claims.ID).Result()
	if err == redis.Nil {
		return "", orbit_errors.ErrSessionNotFound
	} else if err != nil {
		return "", fmt.Errorf("failed to read session: %w", err)
	}
	return principalID, nil
}

func (m *RedisSessionManager) parse(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.signingKey, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	return claims, nil
}
