package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/domain/identity"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const ContextPrincipal = "principal"

type PrincipalResolver interface {
	Execute(ctx context.Context, token string) (*identity.Principal, error)
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", true
	}
	return strings.TrimSpace(parts[1]), true
}

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware(resolver PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, present := bearerToken(c)
		if !present || token == "" {
			httperr.Respond(c, httperr.ErrUnauthorized("unauthorized"))
			c.Abort()
			return
		}

		p, err := resolver.Execute(c.Request.Context(), token)
		if err != nil {
			httperr.Respond(c, err)
			c.Abort()
			return
		}

		c.Set(ContextPrincipal, p)
		c.Next()
	}
}

// OptionalAuthMiddleware lets anonymous requests through as guests. A header
// that is present but invalid is still rejected.
func OptionalAuthMiddleware(resolver PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, present := bearerToken(c)
		if !present {
			c.Next()
			return
		}
		if token == "" {
			httperr.Respond(c, httperr.ErrUnauthorized("unauthorized"))
			c.Abort()
			return
		}

		p, err := resolver.Execute(c.Request.Context(), token)
		if err != nil {
			httperr.Respond(c, err)
			c.Abort()
			return
		}

		c.Set(ContextPrincipal, p)
		c.Next()
	}
}

// Principal returns the caller, or nil for guests.
func Principal(c *gin.Context) *identity.Principal {
	v, ok := c.Get(ContextPrincipal)
	if !ok {
		return nil
	}
	p, _ := v.(*identity.Principal)
	return p
}
