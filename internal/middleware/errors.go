package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/spimexpulse/internal/domain/dto"
)

// ErrorHandler renders errors collected through c.Error when the handler
// chain finished without writing a response.
//
// A dto.ErrorResponse is rendered as is; any other error becomes a generic
// 500 body. A status below 400 set by the handler is promoted to 500.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	status := c.Writer.Status()
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}

	var resp dto.ErrorResponse
	if !errors.As(err, &resp) {
		resp = dto.NewErrorResponse("internal server error", err)
	}
	c.AbortWithStatusJSON(status, resp)
}

// AbortWithError records err on the context and aborts with a JSON
// dto.ErrorResponse built from msg and err.
func AbortWithError(c *gin.Context, status int, msg string, err error) {
	resp := dto.NewErrorResponse(msg, err)
	_ = c.Error(resp)
	c.AbortWithStatusJSON(status, resp)
}
