// Package common holds the response envelope, error codes and request-scoped
// session helpers shared by all handlers.
package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorCode identifies a failure to the frontend independent of HTTP status.
// Do NOT modify existing codes; clients match on them.
type ErrorCode int

const (
	CodeUnknown          ErrorCode = -1
	CodeAuthRequired     ErrorCode = 401
	CodePermissionDenied ErrorCode = 403
	CodeServerError      ErrorCode = 500
	CodeValidationError  ErrorCode = 1001
	CodeTakeTooMany      ErrorCode = 1002

	// Auth (50xx)
	CodeAuthNoSuchUser        ErrorCode = 5000
	CodeAuthWrongPassword     ErrorCode = 5001
	CodeAuthAlreadyLoggedIn   ErrorCode = 5002
	CodeAuthNotLoggedIn       ErrorCode = 5003
	CodeAuthDuplicateUsername ErrorCode = 5004
	CodeAuthDuplicateEmail    ErrorCode = 5005
	CodeAuthNoSuchSession     ErrorCode = 5009

	// User (51xx)
	CodeUserNoSuchUser ErrorCode = 5100
)

type errorBody struct {
	Error ErrorCode `json:"error"`
	Msg   string    `json:"msg,omitempty"`
}

// SuccessResp writes data as the JSON response body. Handlers respond with
// their DTO directly; only errors carry an envelope.
func SuccessResp(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// ErrorResp writes an error envelope with the given HTTP status.
func ErrorResp(c *gin.Context, status int, code ErrorCode, msg string) {
	c.JSON(status, errorBody{Error: code, Msg: msg})
}

// InternalErrorResp logs err and reports an opaque server error. Used for
// store and database outages; the cause never reaches the client.
func InternalErrorResp(c *gin.Context, err error) {
	logrus.WithField("request_id", RequestID(c)).WithError(err).Error("request failed")
	ErrorResp(c, http.StatusInternalServerError, CodeServerError, "Internal server error.")
}
