// api/controller/auth_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orbitpm/api/auth"
	"github.com/orbitpm/api/authz"
	"github.com/orbitpm/api/dao"
	orbit_errors "github.com/orbitpm/api/errors"
	"github.com/orbitpm/api/middleware"
	"github.com/orbitpm/api/util"
)

// AuthController exposes the login guard and the permission bundle for the
// authenticated principal. The application's CRUD surface lives elsewhere;
// only authentication and authorization enter through here.
type AuthController struct {
	loginService *auth.Service
	sessions     auth.SessionManager
	principals   *dao.PrincipalDAO
	workspaces   *dao.WorkspaceDAO
	resources    *dao.ResourceDAO
	evaluator    *authz.Evaluator
}

func NewAuthController(loginService *auth.Service, sessions auth.SessionManager, principals *dao.PrincipalDAO, workspaces *dao.WorkspaceDAO, resources *dao.ResourceDAO, evaluator *authz.Evaluator) *AuthController {
	return &AuthController{
		loginService: loginService,
		sessions:     sessions,
		principals:   principals,
		workspaces:   workspaces,
		resources:    resources,
		evaluator:    evaluator,
	}
}

// RegisterRoutes registers the API routes
func (ac *AuthController) RegisterRoutes(r *gin.Engine) {
	routes := r.Group("/auth")
	{
		routes.POST("/login", ac.Login)
		routes.POST("/logout", ac.Logout)
		routes.GET("/me/permissions/:module", ac.Authenticated(), ac.ModulePermissions)
		routes.GET("/me/projects", ac.Authenticated(), ac.VisibleProjects)
		routes.GET("/me/workspaces/:id/role", ac.Authenticated(), ac.WorkspaceRole)
	}
}

// Authenticated resolves the session token into a principal on the context.
func (ac *AuthController) Authenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		principalID, err := ac.sessions.PrincipalID(c, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated"})
			c.Abort()
			return
		}
		principal, err := ac.principals.GetPrincipal(c, principalID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated"})
			c.Abort()
			return
		}
		middleware.SetPrincipal(c, principal)
		c.Next()
	}
}

// ModulePermissions endpoint returns the CRUD permission bundle for a module.
func (ac *AuthController) ModulePermissions(c *gin.Context) {
	principal := middleware.PrincipalFromContext(c)
	module := c.Param("module")
	c.JSON(http.StatusOK, ac.evaluator.ModulePermissions(principal, module))
}

// VisibleProjects endpoint lists the projects the authenticated principal may
// see, optionally narrowed to one workspace via ?workspace_id=.
func (ac *AuthController) VisibleProjects(c *gin.Context) {
	principal := middleware.PrincipalFromContext(c)
	projects, err := ac.resources.ListProjects(c, principal, c.Query("workspace_id"))
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list projects", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// WorkspaceRole endpoint returns the authenticated principal's role inside a
// workspace, together with the modules that role may touch.
func (ac *AuthController) WorkspaceRole(c *gin.Context) {
	principal := middleware.PrincipalFromContext(c)
	role, err := ac.workspaces.MemberRole(c, c.Param("id"), principal.ID)
	if err != nil {
		switch {
		case errors.Is(err, orbit_errors.ErrWorkspaceNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, orbit_errors.ErrNotWorkspaceMember):
			c.JSON(http.StatusForbidden, gin.H{"error": orbit_errors.ErrPermissionDenied.Error()})
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to resolve workspace role", err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"role":    role,
		"modules": authz.ModulesForRole(role),
	})
}

// Login endpoint
func (ac *AuthController) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid login payload", err)
		return
	}

	meta := auth.RequestMeta{
		IP:        auth.ClientIP(c.Request.Header, c.Request.RemoteAddr),
		UserAgent: c.Request.UserAgent(),
		Referrer:  c.Request.Referer(),
	}

	principal, token, err := ac.loginService.Login(c, req, meta)
	if err != nil {
		var validationErr *orbit_errors.ValidationError
		var rateLimitedErr *orbit_errors.RateLimitedError
		switch {
		case errors.As(err, &validationErr):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": validationErr.Fields})
		case errors.As(err, &rateLimitedErr):
			c.Header("Retry-After", rateLimitedErr.RetryAfter.String())
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":           err.Error(),
				"retry_after":     int(rateLimitedErr.RetryAfter.Seconds()),
				"display_minutes": rateLimitedErr.DisplayMinutes(),
			})
		case errors.Is(err, orbit_errors.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"errors": gin.H{"email": err.Error()}})
		case errors.Is(err, orbit_errors.ErrLoginNotPermittedForType),
			errors.Is(err, orbit_errors.ErrAccountDisabled):
			c.JSON(http.StatusForbidden, gin.H{"errors": gin.H{"email": err.Error()}})
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Login failed", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"principal": principal,
	})
}

// Logout endpoint
func (ac *AuthController) Logout(c *gin.Context) {
	token := c.GetHeader("Authorization")
	if err := ac.loginService.Logout(c, token); err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Logout failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}
