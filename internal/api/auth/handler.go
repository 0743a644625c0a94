package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/pkg/jwt"
)

const (
	userIDKey   = "user_id"
	usernameKey = "username"
)

// IdentityMiddleware reads an optional Bearer token. Requests without an
// Authorization header pass through anonymously; a present but invalid
// token is rejected. An empty secret disables token checks.
func IdentityMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || secret == "" {
			c.Next()
			return
		}

		token, err := jwt.ExtractTokenFromHeader(authHeader)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := jwt.ValidateToken(secret, token)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				c.JSON(http.StatusUnauthorized, gin.H{"detail": "Token has expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token"})
			}
			c.Abort()
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(usernameKey, claims.Username)
		c.Next()
	}
}

// Username returns the caller's username, or "" for anonymous requests.
func Username(c *gin.Context) string {
	return c.GetString(usernameKey)
}

// CurrentUser reports who the service thinks the caller is
func CurrentUser(c *gin.Context) {
	username := Username(c)
	if username == "" {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"user_id":       c.GetString(userIDKey),
		"username":      username,
	})
}
