// test/mock/audit.go
package mock

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/orbitpm/api/audit"
	"github.com/orbitpm/api/geoip"
)

// MockAuditService is a mock implementation of audit.Service
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) RecordAttempt(ctx context.Context, attempt audit.Attempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockAuditService) History(ctx context.Context, from, to time.Time, principalID string) ([]audit.LoginHistory, error) {
	args := m.Called(ctx, from, to, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]audit.LoginHistory), args.Error(1)
}

// MockGeoResolver is a mock implementation of geoip.Resolver
type MockGeoResolver struct {
	mock.Mock
}

func (m *MockGeoResolver) Lookup(ctx context.Context, ip string) (geoip.Location, error) {
	args := m.Called(ctx, ip)
	return args.Get(0).(geoip.Location), args.Error(1)
}

// MockAuditRepository is a mock implementation of audit.Repository
type MockAuditRepository struct {
	mock.Mock

	Entries []audit.LoginHistory
}

func (m *MockAuditRepository) Record(ctx context.Context, entry audit.LoginHistory) error {
	args := m.Called(ctx, entry)
	if args.Error(0) == nil {
		m.Entries = append(m.Entries, entry)
	}
	return args.Error(0)
}

func (m *MockAuditRepository) Query(ctx context.Context, from, to time.Time, principalID string) ([]audit.LoginHistory, error) {
	args := m.Called(ctx, from, to, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]audit.LoginHistory), args.Error(1)
}
