package handles

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AntaresQAQ/tywzoj/internal/model"
	"github.com/AntaresQAQ/tywzoj/server/common"
)

// GetMetrics handles GET /api/meta/metrics, admin only.
func GetMetrics(c *gin.Context) {
	user := common.CurrentUser(c)
	if !model.CheckIsAllowed(user.Level, model.PermissionManageSite) {
		common.ErrorResp(c, http.StatusForbidden, common.CodePermissionDenied, "Permission denied.")
		return
	}

	common.SuccessResp(c, counters.Snapshot())
}
