package handles

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AntaresQAQ/tywzoj/internal/auth"
	"github.com/AntaresQAQ/tywzoj/server/common"
)

type listSessionsResponse struct {
	Sessions         []auth.SessionInfo `json:"sessions"`
	CurrentSessionID int64              `json:"currentSessionId"`
}

// ListMySessions handles GET /api/auth/sessions: all active logins of the
// current user, for the "manage devices" page.
func ListMySessions(c *gin.Context) {
	session := common.CurrentSession(c)

	infos, err := sessions.ListSessions(c.Request.Context(), session.User.ID)
	if err != nil {
		common.InternalErrorResp(c, err)
		return
	}

	common.SuccessResp(c, listSessionsResponse{
		Sessions:         infos,
		CurrentSessionID: session.ID,
	})
}

type revokeSessionRequest struct {
	SessionID int64 `json:"sessionId" binding:"required"`
}

// RevokeMySession handles POST /api/auth/sessions/revoke: logs out one device
// of the current user. Revoking an already-gone session succeeds silently.
func RevokeMySession(c *gin.Context) {
	session := common.CurrentSession(c)

	var req revokeSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SessionID <= 0 {
		common.ErrorResp(c, http.StatusBadRequest, common.CodeValidationError, "Invalid session id.")
		return
	}

	if err := sessions.Revoke(c.Request.Context(), session.User.ID, req.SessionID); err != nil {
		common.InternalErrorResp(c, err)
		return
	}

	common.SuccessResp(c, gin.H{})
}
