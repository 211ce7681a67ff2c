package handles

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AntaresQAQ/tywzoj/internal/auth"
	"github.com/AntaresQAQ/tywzoj/internal/db"
	"github.com/AntaresQAQ/tywzoj/internal/metrics"
	"github.com/AntaresQAQ/tywzoj/internal/model"
	"github.com/AntaresQAQ/tywzoj/server/common"
)

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token string   `json:"token"`
	User  UserMeta `json:"userBaseDetail"`
}

// Login handles POST /api/auth/login. Accepts username or email plus
// password and answers with a fresh session token.
func Login(c *gin.Context) {
	if common.CurrentUser(c) != nil {
		common.ErrorResp(c, http.StatusBadRequest, common.CodeAuthAlreadyLoggedIn, "Already logged in.")
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResp(c, http.StatusBadRequest, common.CodeValidationError, "Invalid request body.")
		return
	}

	ctx := c.Request.Context()
	var (
		user *model.User
		err  error
	)
	switch {
	case req.Username != "":
		user, err = db.GetUserByUsername(ctx, req.Username)
	case req.Email != "":
		user, err = db.GetUserByEmail(ctx, req.Email)
	default:
		common.ErrorResp(c, http.StatusBadRequest, common.CodeValidationError, "Username or email required.")
		return
	}
	if err != nil {
		common.InternalErrorResp(c, err)
		return
	}
	if user == nil {
		counters.Inc(metrics.LoginFailure)
		common.ErrorResp(c, http.StatusBadRequest, common.CodeAuthNoSuchUser, "No such user.")
		return
	}
	if !model.CheckIsAllowed(user.Level, model.PermissionAccessSite) {
		common.ErrorResp(c, http.StatusForbidden, common.CodePermissionDenied, "Permission denied.")
		return
	}

	userAuth, err := db.GetAuthByUserID(ctx, user.ID)
	if err != nil {
		common.InternalErrorResp(c, err)
		return
	}
	if userAuth == nil || !auth.CheckPassword(userAuth.Password, req.Password) {
		counters.Inc(metrics.LoginFailure)
		common.ErrorResp(c, http.StatusBadRequest, common.CodeAuthWrongPassword, "Wrong password.")
		return
	}

	token, err := sessions.Create(ctx, user, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		common.InternalErrorResp(c, err)
		return
	}

	counters.Inc(metrics.LoginSuccess)
	common.SuccessResp(c, loginResponse{Token: token, User: userMeta(user, user)})
}

// Logout handles POST /api/auth/logout, ending the current session.
func Logout(c *gin.Context) {
	session := common.CurrentSession(c)
	if session == nil {
		common.ErrorResp(c, http.StatusUnauthorized, common.CodeAuthNotLoggedIn, "Not logged in.")
		return
	}

	if err := sessions.End(c.Request.Context(), session.Key); err != nil {
		common.InternalErrorResp(c, err)
		return
	}

	counters.Inc(metrics.Logout)
	common.SuccessResp(c, gin.H{})
}

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=24"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=32"`
}

// Register handles POST /api/auth/register: creates the account and logs the
// new user straight in.
func Register(c *gin.Context) {
	if common.CurrentUser(c) != nil {
		common.ErrorResp(c, http.StatusBadRequest, common.CodeAuthAlreadyLoggedIn, "Already logged in.")
		return
	}

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResp(c, http.StatusBadRequest, common.CodeValidationError, "Invalid request body.")
		return
	}

	ctx := c.Request.Context()
	if available, err := db.CheckUsernameAvailability(ctx, req.Username); err != nil {
		common.InternalErrorResp(c, err)
		return
	} else if !available {
		common.ErrorResp(c, http.StatusBadRequest, common.CodeAuthDuplicateUsername, "Username already taken.")
		return
	}
	if available, err := db.CheckEmailAvailability(ctx, req.Email); err != nil {
		common.InternalErrorResp(c, err)
		return
	} else if !available {
		common.ErrorResp(c, http.StatusBadRequest, common.CodeAuthDuplicateEmail, "Email already taken.")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		common.InternalErrorResp(c, err)
		return
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Level:    model.LevelGeneral,
	}
	if err := db.RegisterUser(ctx, user, hash); err != nil {
		common.InternalErrorResp(c, err)
		return
	}

	token, err := sessions.Create(ctx, user, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		common.InternalErrorResp(c, err)
		return
	}

	counters.Inc(metrics.Register)
	common.SuccessResp(c, loginResponse{Token: token, User: userMeta(user, user)})
}

type sessionInfoResponse struct {
	UserBaseDetail *UserMeta `json:"userBaseDetail"`
}

// GetSessionInfo handles GET /api/auth/sessionInfo. The token comes in as a
// query parameter so the frontend can probe a cached token before attaching
// it as a header; an invalid token is an ordinary null answer, never an error.
func GetSessionInfo(c *gin.Context) {
	_, user, err := sessions.Resolve(c.Request.Context(), c.Query("token"))
	if err != nil {
		common.InternalErrorResp(c, err)
		return
	}

	resp := sessionInfoResponse{}
	if user != nil {
		meta := userMeta(user, user)
		resp.UserBaseDetail = &meta
	}
	common.SuccessResp(c, resp)
}

type resetPasswordRequest struct {
	UserID      int64  `json:"userId"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword" binding:"required,min=6,max=32"`
}

// ResetPassword handles POST /api/auth/resetPassword.
//
// Changing one's own password requires the old password and keeps only the
// current session alive. A manager resetting someone else's password revokes
// every session of the target, forcing a fresh login everywhere.
func ResetPassword(c *gin.Context) {
	session := common.CurrentSession(c)
	if session == nil {
		common.ErrorResp(c, http.StatusUnauthorized, common.CodeAuthNotLoggedIn, "Not logged in.")
		return
	}
	currentUser := session.User

	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResp(c, http.StatusBadRequest, common.CodeValidationError, "Invalid request body.")
		return
	}

	ctx := c.Request.Context()
	target := currentUser
	if req.UserID != 0 && req.UserID != currentUser.ID {
		var err error
		target, err = db.GetUserByID(ctx, req.UserID)
		if err != nil {
			common.InternalErrorResp(c, err)
			return
		}
		if target == nil {
			common.ErrorResp(c, http.StatusNotFound, common.CodeUserNoSuchUser, "No such user.")
			return
		}
	}

	if target.ID == currentUser.ID {
		userAuth, err := db.GetAuthByUserID(ctx, target.ID)
		if err != nil {
			common.InternalErrorResp(c, err)
			return
		}
		if userAuth == nil || !auth.CheckPassword(userAuth.Password, req.OldPassword) {
			common.ErrorResp(c, http.StatusBadRequest, common.CodeAuthWrongPassword, "Wrong password.")
			return
		}
		if err := sessions.RevokeAllExcept(ctx, target.ID, session.ID); err != nil {
			common.InternalErrorResp(c, err)
			return
		}
	} else {
		if !canManageUser(target, currentUser) {
			common.ErrorResp(c, http.StatusForbidden, common.CodePermissionDenied, "Permission denied.")
			return
		}
		if err := sessions.RevokeAllExcept(ctx, target.ID, 0); err != nil {
			common.InternalErrorResp(c, err)
			return
		}
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		common.InternalErrorResp(c, err)
		return
	}
	if err := db.UpdatePassword(ctx, target.ID, hash); err != nil {
		common.InternalErrorResp(c, err)
		return
	}

	common.SuccessResp(c, gin.H{})
}
