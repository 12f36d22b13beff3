package middleware

import (
	"net/http"
	"time"

	"handchart/internal/session"

	"github.com/gin-gonic/gin"
)

// SessionCookie names the cookie that carries the chart session id
const SessionCookie = "handchart_session"

const sessionKey = "handchart.session"

// EnsureSession attaches the caller's chart session to the request, creating
// one (and setting the cookie) when the cookie is missing, unknown or expired.
// Routes that never read session state should not use it.
func EnsureSession(manager *session.Manager, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, _ := c.Cookie(SessionCookie)

		s, created := manager.GetOrCreate(raw)
		if created {
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, s.ID().String(), int(ttl.Seconds()), "/", "", false, true)
		}

		c.Set(sessionKey, s)
		c.Next()
	}
}

// CurrentSession returns the session EnsureSession attached, or nil
func CurrentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*session.Session)
	return s
}
