package middleware

import (
	"net/http"

	"telemarketing/internal"
	"telemarketing/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookie names the cookie carrying the session ID
	SessionCookie = "tm_session"
	// SessionKey is the gin context key holding the *session.Session
	SessionKey = "session"
)

// EnsureSession attaches the caller's session to the context, creating one
// (and setting its cookie) when the cookie is missing, unknown or expired.
func EnsureSession(store *session.Store) gin.HandlerFunc {
	logger := internal.DefaultLogger.With("EnsureSession")
	return func(c *gin.Context) {
		id, _ := c.Cookie(SessionCookie)
		sess, created := store.GetOrCreate(id)
		if created {
			if id != "" {
				logger.Debug("session %s unknown or expired, issued %s", id, sess.ID)
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, sess.ID, 0, "/", "", false, true)
		}
		c.Set(SessionKey, sess)
		c.Next()
	}
}

// Session returns the session attached by EnsureSession
func Session(c *gin.Context) *session.Session {
	if v, ok := c.Get(SessionKey); ok {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	return nil
}
