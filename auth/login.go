// api/auth/login.go

// Package auth implements password-form authentication with a rate-limited
// lockout window, post-match policy gates and an audit side effect.
package auth

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/orbitpm/api/audit"
	orbit_errors "github.com/orbitpm/api/errors"
	logger "github.com/orbitpm/api/logging"
	"github.com/orbitpm/api/model"
	"github.com/orbitpm/api/util"
)

// PrincipalFinder resolves principals by email for credential checks.
type PrincipalFinder interface {
	FindByEmail(ctx context.Context, email string) (*model.Principal, error)
}

// LockoutNotifier is told when a throttle key transitions into lockout.
type LockoutNotifier interface {
	NotifyLockout(ctx context.Context, email, ip string, availableIn time.Duration) error
}

// Config carries the lockout window settings.
type Config struct {
	MaxAttempts     int
	LockoutDuration time.Duration
}

// Service is the login guard. All state it touches across requests lives in
// the rate limiter and the login-history store.
type Service struct {
	principals PrincipalFinder
	limiter    RateLimiter
	sessions   SessionManager
	auditSvc   audit.Service
	notifier   LockoutNotifier
	validation *util.ValidationUtil
	cfg        Config
}

func NewService(
	principals PrincipalFinder,
	limiter RateLimiter,
	sessions SessionManager,
	auditSvc audit.Service,
	notifier LockoutNotifier,
	validation *util.ValidationUtil,
	cfg Config,
) *Service {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.LockoutDuration <= 0 {
		cfg.LockoutDuration = time.Minute
	}
	return &Service{
		principals: principals,
		limiter:    limiter,
		sessions:   sessions,
		auditSvc:   auditSvc,
		notifier:   notifier,
		validation: validation,
		cfg:        cfg,
	}
}

// Login runs the full authentication state machine and returns the principal
// and a fresh session token. Every rejection path tears down any
// partially-established session before surfacing its error.
func (s *Service) Login(ctx context.Context, req LoginRequest, meta RequestMeta) (*model.Principal, string, error) {
	if err := s.validation.ValidateStruct(req); err != nil {
		return nil, "", err
	}

	key := ThrottleKey(req.Email, meta.IP)

	locked, err := s.limiter.TooManyAttempts(ctx, key, s.cfg.MaxAttempts)
	if err != nil {
		logger.Error("Throttle check failed", zap.Error(err), zap.String("key", key))
		return nil, "", orbit_errors.ErrInternalServer
	}
	if locked {
		retryAfter, err := s.limiter.AvailableIn(ctx, key)
		if err != nil {
			logger.Error("Failed to read lockout cooldown", zap.Error(err), zap.String("key", key))
			retryAfter = s.cfg.LockoutDuration
		}
		// Rejected before any credential comparison.
		s.recordAttempt(ctx, "", req.Email, meta, audit.OutcomeBlocked)
		return nil, "", &orbit_errors.RateLimitedError{RetryAfter: retryAfter}
	}

	principal, err := s.principals.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, orbit_errors.ErrPrincipalNotFound) {
			s.registerFailure(ctx, key, req.Email, meta)
			s.recordAttempt(ctx, "", req.Email, meta, audit.OutcomeFailed)
			return nil, "", orbit_errors.ErrInvalidCredentials
		}
		logger.Error("Failed to look up principal", zap.Error(err), zap.String("email", req.Email))
		return nil, "", orbit_errors.ErrInternalServer
	}

	if bcrypt.CompareHashAndPassword([]byte(principal.PasswordHash), []byte(req.Password)) != nil {
		s.registerFailure(ctx, key, req.Email, meta)
		s.recordAttempt(ctx, principal.ID, req.Email, meta, audit.OutcomeFailed)
		return nil, "", orbit_errors.ErrInvalidCredentials
	}

	token, err := s.sessions.Establish(ctx, principal)
	if err != nil {
		logger.Error("Failed to establish session", zap.Error(err), zap.String("principalID", principal.ID))
		return nil, "", orbit_errors.ErrInternalServer
	}

	// Post-match gates: credentials are valid but policy may still deny.
	if !principal.CanLoginDirectly() {
		if err := s.teardown(ctx, token, principal.ID); err != nil {
			return nil, "", orbit_errors.ErrInternalServer
		}
		s.recordAttempt(ctx, principal.ID, req.Email, meta, audit.OutcomeFailed)
		return nil, "", orbit_errors.ErrLoginNotPermittedForType
	}
	if !principal.LoginEnabled || principal.Status != model.StatusActive {
		if err := s.teardown(ctx, token, principal.ID); err != nil {
			return nil, "", orbit_errors.ErrInternalServer
		}
		s.recordAttempt(ctx, principal.ID, req.Email, meta, audit.OutcomeFailed)
		return nil, "", orbit_errors.ErrAccountDisabled
	}

	if err := s.limiter.Clear(ctx, key); err != nil {
		logger.Warn("Failed to clear throttle counter", zap.Error(err), zap.String("key", key))
	}

	// Rotate the token on every successful login.
	token, err = s.sessions.RegenerateToken(ctx, token, principal)
	if err != nil {
		logger.Error("Failed to rotate session token", zap.Error(err), zap.String("principalID", principal.ID))
		return nil, "", orbit_errors.ErrInternalServer
	}

	s.recordAttempt(ctx, principal.ID, req.Email, meta, audit.OutcomeSuccess)

	logger.Info("Principal logged in",
		zap.String("principalID", principal.ID),
		zap.String("type", principal.Type),
		zap.String("ip", meta.IP))
	return principal, token, nil
}

// Logout invalidates the session for a token.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Invalidate(ctx, token)
}

// registerFailure increments the throttle counter and fires the lockout
// notification when the key crosses the threshold.
func (s *Service) registerFailure(ctx context.Context, key, email string, meta RequestMeta) {
	count, err := s.limiter.Hit(ctx, key, s.cfg.LockoutDuration)
	if err != nil {
		logger.Error("Failed to increment throttle counter", zap.Error(err), zap.String("key", key))
		return
	}
	if count == int64(s.cfg.MaxAttempts) {
		retryAfter, err := s.limiter.AvailableIn(ctx, key)
		if err != nil {
			retryAfter = s.cfg.LockoutDuration
		}
		if err := s.notifier.NotifyLockout(ctx, email, meta.IP, retryAfter); err != nil {
			logger.Warn("Failed to send lockout notification", zap.Error(err), zap.String("email", email))
		}
	}
}

// recordAttempt persists the history entry. Audit failures are diagnostics
// only; they never fail the login operation.
func (s *Service) recordAttempt(ctx context.Context, principalID, email string, meta RequestMeta, outcome string) {
	err := s.auditSvc.RecordAttempt(ctx, audit.Attempt{
		PrincipalID: principalID,
		Email:       email,
		IP:          meta.IP,
		UserAgent:   meta.UserAgent,
		Referrer:    meta.Referrer,
		Outcome:     outcome,
	})
	if err != nil {
		logger.Warn("Failed to record login attempt", zap.Error(err), zap.String("email", email))
	}
}

// teardown invalidates a partially-established session. No rejection ever
// surfaces while a session the store still acknowledges is live.
func (s *Service) teardown(ctx context.Context, token, principalID string) error {
	if err := s.sessions.Invalidate(ctx, token); err != nil {
		logger.Error("Failed to tear down session", zap.Error(err), zap.String("principalID", principalID))
		return err
	}
	return nil
}
