package middleware

import (
	"net/http"
	"strings"

	"food-rescue-api/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const claimsKey = "claims"

// TokenVerifier resolves a bearer token into its identity claim
type TokenVerifier interface {
	Verify(tokenStr string) (*token.Claims, error)
}

// AuthRequired validates the bearer token and injects its claims into context.
// Every rejection uses the same generic body; the reason is only logged.
func AuthRequired(verifier TokenVerifier, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access denied. No token provided"})
			return
		}

		claims, err := verifier.Verify(tokenStr)
		if err != nil {
			logger.Warn("token rejected",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	tok := strings.TrimSpace(parts[1])
	return tok, tok != ""
}

// GetClaims returns the identity attached by AuthRequired
func GetClaims(c *gin.Context) (*token.Claims, bool) {
	val, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := val.(*token.Claims)
	return claims, ok
}

// GetUserID extracts caller user ID from context
func GetUserID(c *gin.Context) uint {
	claims, ok := GetClaims(c)
	if !ok {
		return 0
	}
	return claims.UserID
}
