package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cetprep/cetprep-backend/internal/response"
	"github.com/cetprep/cetprep-backend/internal/service"
)

const (
	// ContextKeyClaims is the Gin context key for attempt token claims.
	ContextKeyClaims = "claims"
)

// RequireAttemptToken validates the per-attempt token from the Authorization
// header, falling back to the ?token= query parameter for WebSocket upgrade
// requests, which cannot send headers from a browser.
func RequireAttemptToken(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractToken(c)
		if tokenStr == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		claims, err := tokens.ValidateAttemptToken(tokenStr)
		if err != nil {
			if errors.Is(err, service.ErrTokenExpired) {
				response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenExpired)
				return
			}
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}

		// The token is a capability for exactly one attempt: the ID in the
		// path must be the one the token was minted for.
		if attemptID := c.Param("attempt_id"); attemptID != "" && attemptID != claims.AttemptID {
			response.AbortFail(c, http.StatusForbidden, response.ErrAttemptMismatch)
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetClaims retrieves the attempt claims from the Gin context.
func GetClaims(c *gin.Context) *service.AttemptClaims {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil
	}
	claims, ok := val.(*service.AttemptClaims)
	if !ok {
		return nil
	}
	return claims
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}
	return c.Query("token")
}
