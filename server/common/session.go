package common

import (
	"github.com/gin-gonic/gin"

	"github.com/AntaresQAQ/tywzoj/internal/model"
)

const (
	sessionContextKey   = "session"
	requestIDContextKey = "request_id"
)

// Session is the resolved login attached to an authenticated request.
type Session struct {
	Key  string
	ID   int64
	User *model.User
}

// SetSession attaches the resolved session to the request context.
func SetSession(c *gin.Context, s *Session) {
	c.Set(sessionContextKey, s)
}

// CurrentSession returns the request's session, or nil when the request is
// unauthenticated.
func CurrentSession(c *gin.Context) *Session {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	s, _ := v.(*Session)
	return s
}

// CurrentUser returns the authenticated user, or nil.
func CurrentUser(c *gin.Context) *model.User {
	if s := CurrentSession(c); s != nil {
		return s.User
	}
	return nil
}

// SetRequestID stores the request id for log correlation.
func SetRequestID(c *gin.Context, id string) {
	c.Set(requestIDContextKey, id)
}

// RequestID returns the request id assigned by the middleware, or "".
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDContextKey)
}
