package middleware

import (
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"community-board/internal/gateway"
)

const ContextSessionKey = "session"

// ResolveSession resolves a bearer token into a live session and stores
// it on the context. It never aborts: public endpoints run fine without
// a session and the services decide what requires one.
func ResolveSession(gw *gateway.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token != "" {
			session, err := gw.CurrentSession(c.Request.Context(), token)
			if err != nil {
				log.Printf("resolve session failed: %v", err)
			} else if session != nil {
				c.Set(ContextSessionKey, session)
			}
		}
		c.Next()
	}
}

// SessionFrom returns the resolved session, or nil when the request is
// unauthenticated.
func SessionFrom(c *gin.Context) *gateway.Session {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil
	}
	session, ok := value.(*gateway.Session)
	if !ok {
		return nil
	}
	return session
}

func bearerToken(c *gin.Context) string {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	const prefix = "Bearer "
	if !strings.HasPrefix(authHeader, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))
}
