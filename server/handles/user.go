package handles

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AntaresQAQ/tywzoj/internal/db"
	"github.com/AntaresQAQ/tywzoj/internal/model"
	"github.com/AntaresQAQ/tywzoj/server/common"
)

const maxUserListTake = 100

// UserMeta is the user shape returned to clients. Email is included only for
// the user themselves, managers, or accounts that opted into a public email.
type UserMeta struct {
	ID                   int64           `json:"id"`
	Username             string          `json:"username"`
	Email                string          `json:"email,omitempty"`
	Nickname             string          `json:"nickname"`
	Gender               string          `json:"gender"`
	Information          string          `json:"information"`
	Level                model.UserLevel `json:"level"`
	AcceptedProblemCount int64           `json:"acceptedProblemCount"`
	SubmissionCount      int64           `json:"submissionCount"`
	Rating               int64           `json:"rating"`
	RegistrationTime     int64           `json:"registrationTime"`
}

func userMeta(user, viewer *model.User) UserMeta {
	meta := UserMeta{
		ID:                   user.ID,
		Username:             user.Username,
		Nickname:             user.Nickname,
		Gender:               user.Gender,
		Information:          user.Information,
		Level:                user.Level,
		AcceptedProblemCount: user.AcceptedProblemCount,
		SubmissionCount:      user.SubmissionCount,
		Rating:               user.Rating,
		RegistrationTime:     user.RegistrationTime.UnixMilli(),
	}
	if user.PublicEmail || canManageUser(user, viewer) {
		meta.Email = user.Email
	}
	return meta
}

// canManageUser reports whether viewer may manage target: themselves, or a
// strictly higher-leveled user-manager.
func canManageUser(target, viewer *model.User) bool {
	if viewer == nil {
		return false
	}
	if viewer.ID == target.ID {
		return true
	}
	return model.CheckIsAllowed(viewer.Level, model.PermissionManageUser) && viewer.Level > target.Level
}

// GetUserDetail handles GET /api/user/detail.
func GetUserDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil || id <= 0 {
		common.ErrorResp(c, http.StatusBadRequest, common.CodeValidationError, "Invalid user id.")
		return
	}

	user, err := db.GetUserByID(c.Request.Context(), id)
	if err != nil {
		common.InternalErrorResp(c, err)
		return
	}
	if user == nil {
		common.ErrorResp(c, http.StatusNotFound, common.CodeUserNoSuchUser, "No such user.")
		return
	}

	common.SuccessResp(c, userMeta(user, common.CurrentUser(c)))
}

type getUserListResponse struct {
	Users []UserMeta `json:"users"`
	Count int64      `json:"count"`
}

// GetUserList handles GET /api/user/list with sortBy/skip/take pagination.
func GetUserList(c *gin.Context) {
	sortBy := c.DefaultQuery("sortBy", "rating")
	switch sortBy {
	case "id", "rating", "acceptedProblemCount":
	default:
		common.ErrorResp(c, http.StatusBadRequest, common.CodeValidationError, "Invalid sort key.")
		return
	}
	skip, _ := strconv.Atoi(c.DefaultQuery("skipCount", "0"))
	take, err := strconv.Atoi(c.DefaultQuery("takeCount", "50"))
	if err != nil || take <= 0 || skip < 0 {
		common.ErrorResp(c, http.StatusBadRequest, common.CodeValidationError, "Invalid pagination.")
		return
	}
	if take > maxUserListTake {
		common.ErrorResp(c, http.StatusBadRequest, common.CodeTakeTooMany, "Requested too many users.")
		return
	}

	users, count, err := db.ListUsers(c.Request.Context(), sortBy, skip, take)
	if err != nil {
		common.InternalErrorResp(c, err)
		return
	}

	viewer := common.CurrentUser(c)
	metas := make([]UserMeta, len(users))
	for i := range users {
		metas[i] = userMeta(&users[i], viewer)
	}
	common.SuccessResp(c, getUserListResponse{Users: metas, Count: count})
}
