package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"perso/profile-api/security"
)

// SessionCookie carries the signed session token, http-only. LoggedInCookie
// is a plain marker the frontend reads to decide what to render.
const (
	SessionCookie  = "session_token"
	LoggedInCookie = "logged_in"
)

// NewSessionMiddleware resolves the session cookie into a request-scoped
// user. A missing, expired or otherwise invalid token leaves the request
// anonymous and lets it continue, rejecting is RequireAuth's job.
func NewSessionMiddleware(sessions *security.Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(SessionCookie)
		if err != nil || tokenStr == "" {
			c.Next()
			return
		}

		user := sessions.Parse(tokenStr)
		if user == nil {
			c.Next()
			return
		}

		c.Set("session", user)
		c.Set("userID", user.ID)
		c.Next()
	}
}

// RequireAuth aborts anonymous requests. Must run after the session
// middleware.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		if _, ok := c.Get("session"); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message":   "Authentification requise.",
				"requestID": requestID,
			})
			return
		}

		c.Next()
	}
}

// SessionUser returns the resolved session user, or nil for anonymous
// requests
func SessionUser(c *gin.Context) *security.SessionUser {
	v, ok := c.Get("session")
	if !ok {
		return nil
	}

	u, _ := v.(*security.SessionUser)
	return u
}
