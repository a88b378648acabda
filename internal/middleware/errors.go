package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/floorsheet/internal/domain/dto"
)

// ErrorHandler renders errors attached with c.Error once the handler chain
// returns. A dto.ErrorResponse is written as-is; anything else becomes a 500.
// Nothing is written if the handler already produced a response.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}
	err := c.Errors.Last().Err

	status := http.StatusInternalServerError
	if c.Writer.Status() >= http.StatusBadRequest {
		status = c.Writer.Status()
	}

	var resp dto.ErrorResponse
	if !errors.As(err, &resp) {
		resp = dto.NewErrorResponse("Internal server error", err)
	}
	c.JSON(status, resp)
}

// AbortWithError stops the chain and writes status with the standard error
// body. The error is also recorded on the context for the request logger.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
