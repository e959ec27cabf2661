package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/guttosm/finny/internal/domain/dto"
	"github.com/guttosm/finny/internal/logger"
)

// ErrorHandler converts errors attached with c.Error into JSON responses when the
// handler did not write one itself.
//
// Mapping:
//   - request deadline exceeded → 504
//   - validator.ValidationErrors or bind errors → 400 with the validation message
//   - dto.ErrorResponse → 500 with its message
//   - anything else → 500 "Internal server error"
func ErrorHandler(c *gin.Context) {
	c.Next()

	if c.Writer.Written() {
		return
	}

	if errors.Is(c.Request.Context().Err(), context.DeadlineExceeded) {
		c.AbortWithStatusJSON(http.StatusGatewayTimeout, dto.NewErrorResponse(dto.MsgRequestTimeout))
		return
	}

	if len(c.Errors) == 0 {
		return
	}
	err := c.Errors.Last()

	var ve validator.ValidationErrors
	if errors.As(err.Err, &ve) || err.IsType(gin.ErrorTypeBind) {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error()))
		return
	}

	var er dto.ErrorResponse
	if errors.As(err.Err, &er) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, er)
		return
	}

	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(dto.MsgInternalError))
}

// AbortWithError logs err with the request id, attaches it to the context for the
// request logger, and aborts with {"error": message}. err never reaches the client.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		l := logger.WithRequestID(GetRequestID(c))
		l.Warn().Err(err).Int("status", status).Msg(message)
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message))
}
