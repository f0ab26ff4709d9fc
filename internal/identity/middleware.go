package identity

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type contextKey string

const callerContextKey contextKey = "filestoreCaller"

// Middleware extracts the caller identity from the Authorization header
// and aborts with 401 before any handler runs when it is missing or
// undecodable.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		token := extractBearerToken(authHeader)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		caller, err := FromToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		SetCaller(c, caller)
		c.Next()
	}
}

// SetCaller stores the caller on the request context. Exposed so tests
// can stand in for the middleware.
func SetCaller(c *gin.Context, caller Caller) {
	c.Set(string(callerContextKey), caller)
}

// CallerFrom extracts the authenticated caller from the request context.
func CallerFrom(c *gin.Context) (Caller, bool) {
	value, exists := c.Get(string(callerContextKey))
	if !exists {
		return Caller{}, false
	}
	caller, ok := value.(Caller)
	return caller, ok
}

func extractBearerToken(header string) string {
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
