// test/mock/auth.go
package mock

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/orbitpm/api/model"
)

// MockPrincipalFinder is a mock implementation of auth.PrincipalFinder
type MockPrincipalFinder struct {
	mock.Mock
}

func (m *MockPrincipalFinder) FindByEmail(ctx context.Context, email string) (*model.Principal, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Principal), args.Error(1)
}

// MockSessionManager is a mock implementation of auth.SessionManager
type MockSessionManager struct {
	mock.Mock
}

func (m *MockSessionManager) Establish(ctx context.Context, p *model.Principal) (string, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Error(1)
}

func (m *MockSessionManager) Invalidate(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockSessionManager) RegenerateToken(ctx context.Context, token string, p *model.Principal) (string, error) {
	args := m.Called(ctx, token, p)
	return args.String(0), args.Error(1)
}

func (m *MockSessionManager) PrincipalID(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

// MockLockoutNotifier is a mock implementation of auth.LockoutNotifier
type MockLockoutNotifier struct {
	mock.Mock
}

func (m *MockLockoutNotifier) NotifyLockout(ctx context.Context, email, ip string, availableIn time.Duration) error {
	args := m.Called(ctx, email, ip, availableIn)
	return args.Error(0)
}
