package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const contextIdentity = "identity"

// IdentityLookup re-reads the caller from the store so a stale role
// claim in the token cannot outlive a role change.
type IdentityLookup func(ctx context.Context, id uuid.UUID) (*domain.Identity, error)

// Middleware resolves the bearer credential into an Identity and
// attaches it to the request. Handlers fetch the Identity with
// IdentityFrom and pass it to services as an explicit argument.
func Middleware(tokens *TokenManager, lookup IdentityLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "not authorized, no token"})
			return
		}

		tokenStr := header
		if strings.HasPrefix(header, "Bearer ") {
			tokenStr = strings.TrimPrefix(header, "Bearer ")
		}

		identity, err := tokens.ValidateToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid or expired token"})
			return
		}

		if lookup != nil {
			identity, err = lookup(c.Request.Context(), identity.ID)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "user not found"})
				return
			}
		}

		c.Set(contextIdentity, *identity)
		c.Next()
	}
}

// RequireOwner gates owner-only routes. It runs after Middleware.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok || identity.Role != domain.RoleOwner {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "owners only"})
			return
		}
		c.Next()
	}
}

func IdentityFrom(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(contextIdentity)
	if !ok {
		return domain.Identity{}, false
	}
	identity, ok := v.(domain.Identity)
	return identity, ok
}
