package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AbortWithBadGateway sends a 502 Bad Gateway response and aborts the request.
// Used when the notification provider rejects a well-formed request.
func AbortWithBadGateway(c *gin.Context, message string, details map[string]interface{}) {
	c.AbortWithStatusJSON(http.StatusBadGateway, NewAPIError(message, details))
}
