// api/audit/service.go
package audit

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/mssola/useragent"
	"go.uber.org/zap"

	"github.com/orbitpm/api/geoip"
	logger "github.com/orbitpm/api/logging"
)

// Attempt is the raw material of one login-history entry.
type Attempt struct {
	PrincipalID string
	Email       string
	IP          string
	UserAgent   string
	Referrer    string
	Outcome     string
}

// Service records login attempts. Geolocation and user-agent enrichment are
// best-effort side effects; their failure never fails the enclosing login.
type Service interface {
	RecordAttempt(ctx context.Context, attempt Attempt) error
	History(ctx context.Context, from, to time.Time, principalID string) ([]LoginHistory, error)
}

type service struct {
	repo       Repository
	geo        geoip.Resolver
	geoTimeout time.Duration
}

func NewService(repo Repository, geo geoip.Resolver, geoTimeout time.Duration) Service {
	if geoTimeout <= 0 {
		geoTimeout = 10 * time.Second
	}
	return &service{repo: repo, geo: geo, geoTimeout: geoTimeout}
}

func (s *service) RecordAttempt(ctx context.Context, attempt Attempt) error {
	entry := LoginHistory{
		ID:           uuid.NewString(),
		PrincipalID:  attempt.PrincipalID,
		Email:        attempt.Email,
		IP:           attempt.IP,
		Outcome:      attempt.Outcome,
		Timestamp:    time.Now().UTC(),
		LookupStatus: geoip.StatusFail,
	}

	if attempt.Outcome == OutcomeSuccess {
		s.enrich(ctx, &entry, attempt)
	}

	if err := s.repo.Record(ctx, entry); err != nil {
		logger.Error("Failed to persist login history entry",
			zap.Error(err),
			zap.String("principalID", attempt.PrincipalID),
			zap.String("outcome", attempt.Outcome))
		return err
	}

	logger.Debug("Login history entry recorded",
		zap.String("principalID", attempt.PrincipalID),
		zap.String("outcome", attempt.Outcome),
		zap.String("ip", attempt.IP))
	return nil
}

func (s *service) History(ctx context.Context, from, to time.Time, principalID string) ([]LoginHistory, error) {
	return s.repo.Query(ctx, from, to, principalID)
}

// enrich fills geolocation, browser and referrer metadata. Lookup failure or
// timeout degrades to the fail-status placeholder.
func (s *service) enrich(ctx context.Context, entry *LoginHistory, attempt Attempt) {
	lookupCtx, cancel := context.WithTimeout(ctx, s.geoTimeout)
	defer cancel()

	loc, err := s.geo.Lookup(lookupCtx, attempt.IP)
	if err != nil {
		logger.Warn("Geolocation lookup failed, recording unknown location",
			zap.Error(err),
			zap.String("ip", attempt.IP))
		loc = geoip.Unknown(attempt.IP)
	}
	entry.LookupStatus = loc.Status
	entry.Country = loc.Country
	entry.Region = loc.Region
	entry.City = loc.City
	entry.Lat = loc.Lat
	entry.Lon = loc.Lon
	entry.Timezone = loc.Timezone
	entry.ISP = loc.ISP
	entry.Org = loc.Org

	if attempt.UserAgent != "" {
		ua := useragent.New(attempt.UserAgent)
		name, version := ua.Browser()
		entry.Browser = name
		entry.BrowserVersion = version
		entry.OS = ua.OS()
		if ua.Mobile() {
			entry.Device = "mobile"
		} else {
			entry.Device = "desktop"
		}
	}

	if attempt.Referrer != "" {
		if ref, err := url.Parse(attempt.Referrer); err == nil {
			entry.ReferrerHost = ref.Host
			entry.ReferrerPath = ref.Path
		}
	}
}
