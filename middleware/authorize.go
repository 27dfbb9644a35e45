// api/middleware/authorize.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orbitpm/api/authz"
	orbit_errors "github.com/orbitpm/api/errors"
	"github.com/orbitpm/api/model"
)

const principalContextKey = "principal"

// SetPrincipal stores the authenticated principal on the request context.
// Session resolution happens upstream; the middleware here only consumes it.
func SetPrincipal(c *gin.Context, p *model.Principal) {
	c.Set(principalContextKey, p)
}

// PrincipalFromContext returns the authenticated principal, or nil.
func PrincipalFromContext(c *gin.Context) *model.Principal {
	value, exists := c.Get(principalContextKey)
	if !exists {
		return nil
	}
	principal, ok := value.(*model.Principal)
	if !ok {
		return nil
	}
	return principal
}

// RequirePermission rejects the request with a generic 403 unless the
// principal resolves the named permission. No detail on which rule failed.
func RequirePermission(evaluator *authz.Evaluator, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := PrincipalFromContext(c)
		if !evaluator.HasPermission(principal, permission) {
			c.JSON(http.StatusForbidden, gin.H{"error": orbit_errors.ErrPermissionDenied.Error()})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAnyPermission passes if any of the named permissions resolves true.
func RequireAnyPermission(evaluator *authz.Evaluator, permissions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := PrincipalFromContext(c)
		if !evaluator.HasAnyPermission(principal, permissions) {
			c.JSON(http.StatusForbidden, gin.H{"error": orbit_errors.ErrPermissionDenied.Error()})
			c.Abort()
			return
		}
		c.Next()
	}
}
