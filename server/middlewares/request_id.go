package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AntaresQAQ/tywzoj/server/common"
)

const requestIDHeader = "X-Request-ID"

// RequestID assigns each request a correlation id, preferring one supplied by
// the reverse proxy, and echoes it in the response.
func RequestID(c *gin.Context) {
	id := c.GetHeader(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	common.SetRequestID(c, id)
	c.Header(requestIDHeader, id)
	c.Next()
}
