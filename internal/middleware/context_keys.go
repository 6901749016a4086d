package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the requesting user's ID in the context.
const userIDKey = contextKey("userID")

// defaultUserID is used for audit attribution when the client sends no
// X-User-ID header. There is no authentication; the header only labels who
// wrote a row.
const defaultUserID = "anonymous"

// UserAttributionMiddleware reads the optional X-User-ID header and stores it
// in the context for audit fields.
func UserAttributionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			userID = defaultUserID
		}
		c.Set(string(userIDKey), userID)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), userIDKey, userID))
		c.Next()
	}
}

// GetUserIDFromContext retrieves the requesting user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		userIDCtxVal := c.Request.Context().Value(userIDKey)
		if userIDCtxVal != nil {
			return userIDCtxVal.(string), true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}

	return userID, true
}
