package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"logiprofit/internal/core/apperror"
	appctx "logiprofit/internal/core/context"
	"logiprofit/internal/core/tenant"
)

// JWTValidator validates access tokens and returns the user they belong to.
// Implemented by auth.JWTService.
type JWTValidator interface {
	ValidateToken(tokenString string) (*appctx.UserContext, error)
}

// Auth middleware validates the Bearer token and injects UserContext.
// Must run after TenantDB so the tenant-match check can compare against
// the tenant resolved from the X-Tenant-ID header.
func Auth(validator JWTValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := extractUser(c, validator)
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		// Token issued for one tenant must not work against another.
		if reqTenant := tenant.GetTenantID(c.Request.Context()); reqTenant != "" && reqTenant != user.TenantID {
			_ = c.Error(apperror.NewForbidden("tenant mismatch"))
			c.Abort()
			return
		}

		ctx := appctx.WithUser(c.Request.Context(), user)
		c.Request = c.Request.WithContext(ctx)

		c.Set("user_id", user.UserID)
		c.Set("user_email", user.Email)

		c.Next()
	}
}

// OptionalAuth injects UserContext when a valid token is present but does
// not reject unauthenticated requests.
func OptionalAuth(validator JWTValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := extractUser(c, validator)
		if err == nil {
			ctx := appctx.WithUser(c.Request.Context(), user)
			c.Request = c.Request.WithContext(ctx)
			c.Set("user_id", user.UserID)
		}
		c.Next()
	}
}

// RequireRole rejects requests whose user lacks all of the given roles.
// Admin users pass regardless.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := appctx.GetUser(c.Request.Context())
		if user == nil {
			_ = c.Error(apperror.NewUnauthorized("authentication required"))
			c.Abort()
			return
		}
		if user.IsAdmin {
			c.Next()
			return
		}
		for _, required := range roles {
			for _, r := range user.Roles {
				if r == required {
					c.Next()
					return
				}
			}
		}
		_ = c.Error(apperror.NewForbidden("insufficient role").WithDetail("required", roles))
		c.Abort()
	}
}

func extractUser(c *gin.Context, validator JWTValidator) (*appctx.UserContext, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, apperror.NewUnauthorized("authorization header is required")
	}

	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return nil, apperror.NewUnauthorized("invalid authorization header format")
	}

	user, err := validator.ValidateToken(token)
	if err != nil {
		return nil, apperror.NewUnauthorized("invalid or expired token")
	}
	return user, nil
}
