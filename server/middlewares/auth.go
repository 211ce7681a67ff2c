// Package middlewares holds the gin middleware chain of the API server.
package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AntaresQAQ/tywzoj/internal/auth"
	"github.com/AntaresQAQ/tywzoj/server/common"
)

// Auth resolves the bearer session key of each request and attaches the
// session to the gin context. An absent, invalid or revoked key leaves the
// request unauthenticated without failing it; downstream handlers decide
// whether login is required. Only a store or database outage aborts with 500.
func Auth(sessions *auth.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionKey, ok := bearerToken(c.GetHeader("Authorization"))
		if ok {
			sessionID, user, err := sessions.Resolve(c.Request.Context(), sessionKey)
			if err != nil {
				common.InternalErrorResp(c, err)
				c.Abort()
				return
			}
			if user != nil {
				common.SetSession(c, &common.Session{
					Key:  sessionKey,
					ID:   sessionID,
					User: user,
				})
			}
		}

		c.Next()
	}
}

// AuthRequired rejects unauthenticated requests. Must run after [Auth].
func AuthRequired(c *gin.Context) {
	if common.CurrentSession(c) == nil {
		common.ErrorResp(c, http.StatusUnauthorized, common.CodeAuthNotLoggedIn, "Login required.")
		c.Abort()
		return
	}
	c.Next()
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}
