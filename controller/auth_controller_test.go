// api/controller/auth_controller_test.go
package controller_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	tmock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/orbitpm/api/auth"
	"github.com/orbitpm/api/authz"
	"github.com/orbitpm/api/controller"
	"github.com/orbitpm/api/dao"
	logger "github.com/orbitpm/api/logging"
	"github.com/orbitpm/api/model"
	"github.com/orbitpm/api/scope"
	"github.com/orbitpm/api/test/mock"
	"github.com/orbitpm/api/util"
)

func TestMain(m *testing.M) {
	logger.InitLogger(os.TempDir())
	defer logger.Sync()
	os.Exit(m.Run())
}

type fixture struct {
	router     *gin.Engine
	principals *mock.MockPrincipalFinder
	sessions   *mock.MockSessionManager
	auditSvc   *mock.MockAuditService
}

func setup(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	f := &fixture{
		principals: new(mock.MockPrincipalFinder),
		sessions:   new(mock.MockSessionManager),
		auditSvc:   new(mock.MockAuditService),
	}
	notifier := new(mock.MockLockoutNotifier)
	notifier.On("NotifyLockout", tmock.Anything, tmock.Anything, tmock.Anything, tmock.Anything).Return(nil)

	loginService := auth.NewService(
		f.principals,
		auth.NewRedisRateLimiter(client),
		f.sessions,
		f.auditSvc,
		notifier,
		util.NewValidationUtil(),
		auth.Config{MaxAttempts: 5, LockoutDuration: time.Minute},
	)

	registry := authz.DefaultRegistry()
	evaluator := authz.NewEvaluator(registry)
	resources := dao.NewResourceDAO(nil, scope.NewScoper(registry))
	authController := controller.NewAuthController(loginService, f.sessions, dao.NewPrincipalDAO(nil), dao.NewWorkspaceDAO(nil), resources, evaluator)

	f.router = gin.New()
	authController.RegisterRoutes(f.router)
	return f
}

func postLogin(f *fixture, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "203.0.113.7:50000"
	f.router.ServeHTTP(w, req)
	return w
}

func TestAuthController_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	principal := &model.Principal{
		ID:           "comp-1",
		Email:        "owner@acme.test",
		Type:         model.TypeCompany,
		Status:       model.StatusActive,
		LoginEnabled: true,
		PasswordHash: string(hash),
	}

	t.Run("Login_Success", func(t *testing.T) {
		f := setup(t)
		f.principals.On("FindByEmail", tmock.Anything, principal.Email).Return(principal, nil)
		f.sessions.On("Establish", tmock.Anything, tmock.Anything).Return("session-1", nil)
		f.sessions.On("RegenerateToken", tmock.Anything, "session-1", tmock.Anything).Return("session-2", nil)
		f.auditSvc.On("RecordAttempt", tmock.Anything, tmock.Anything).Return(nil)

		w := postLogin(f, `{"email":"owner@acme.test","password":"secret"}`)
		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.JSONEq(t, `"session-2"`, string(resp["token"]))
	})

	t.Run("Login_Failure_Validation", func(t *testing.T) {
		f := setup(t)
		w := postLogin(f, `{"email":"not-an-email","password":"x"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Login_Failure_BadCredentials", func(t *testing.T) {
		f := setup(t)
		f.principals.On("FindByEmail", tmock.Anything, principal.Email).Return(principal, nil)
		f.auditSvc.On("RecordAttempt", tmock.Anything, tmock.Anything).Return(nil)

		w := postLogin(f, `{"email":"owner@acme.test","password":"wrong"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Login_Failure_RateLimited", func(t *testing.T) {
		f := setup(t)
		f.principals.On("FindByEmail", tmock.Anything, principal.Email).Return(principal, nil)
		f.auditSvc.On("RecordAttempt", tmock.Anything, tmock.Anything).Return(nil)

		for i := 0; i < 5; i++ {
			postLogin(f, `{"email":"owner@acme.test","password":"wrong"}`)
		}
		w := postLogin(f, `{"email":"owner@acme.test","password":"secret"}`)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
	})

	t.Run("Login_Failure_MemberType", func(t *testing.T) {
		f := setup(t)
		member := &model.Principal{
			ID:           "mem-1",
			Email:        "dev@acme.test",
			Type:         model.TypeMember,
			Status:       model.StatusActive,
			LoginEnabled: true,
			PasswordHash: string(hash),
		}
		f.principals.On("FindByEmail", tmock.Anything, member.Email).Return(member, nil)
		f.sessions.On("Establish", tmock.Anything, tmock.Anything).Return("session-1", nil)
		f.sessions.On("Invalidate", tmock.Anything, "session-1").Return(nil)
		f.auditSvc.On("RecordAttempt", tmock.Anything, tmock.Anything).Return(nil)

		w := postLogin(f, `{"email":"dev@acme.test","password":"secret"}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestAuthController_Logout(t *testing.T) {
	f := setup(t)
	f.sessions.On("Invalidate", tmock.Anything, "session-2").Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/auth/logout", nil)
	req.Header.Set("Authorization", "session-2")
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	f.sessions.AssertCalled(t, "Invalidate", tmock.Anything, "session-2")
}
