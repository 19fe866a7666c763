package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

const userIDKey = contextKey("userID")

// callerHeader carries the authenticated user's ID, set by the gateway
// that owns authentication and the permission matrix. This core trusts
// its caller's scoping; it only requires that an identity is present so
// audit fields are never empty.
const callerHeader = "X-User-ID"

// RequireCaller rejects requests that arrive without a caller identity
// and stores the identity in both contexts for handlers and services.
func RequireCaller() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(callerHeader)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing caller identity"})
			return
		}
		c.Set(string(userIDKey), userID)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), userIDKey, userID))
		c.Next()
	}
}

// GetUserIDFromContext retrieves the caller's user ID from the gin
// context, falling back to the request context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		if v := c.Request.Context().Value(userIDKey); v != nil {
			return v.(string), true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}
	return userID, true
}
