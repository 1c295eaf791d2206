package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	pkgErrors "ecomart-chatbot/pkg/errors"
)

// OK writes a 200 envelope carrying data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Resp{
		ErrorCode: CodeSuccess,
		Message:   MessageSuccess,
		Data:      data,
	})
}

// Error writes err as an envelope. An *errors.HTTPError anywhere in the chain sets the
// status and error_code; anything else is a 400 with CodeBadRequest.
// details, when non-nil, is returned under "errors".
func Error(c *gin.Context, err error, details any) {
	status, code := http.StatusBadRequest, CodeBadRequest
	var httpErr *pkgErrors.HTTPError
	if errors.As(err, &httpErr) {
		status, code = httpErr.StatusCode, httpErr.StatusCode
	}

	c.JSON(status, Resp{
		ErrorCode: code,
		Message:   err.Error(),
		Errors:    details,
	})
}

// Unauthorized aborts the chain with 401.
func Unauthorized(c *gin.Context) {
	abort(c, http.StatusUnauthorized, MessageUnauthorized)
}

// TooManyRequests aborts the chain with 429.
func TooManyRequests(c *gin.Context) {
	abort(c, http.StatusTooManyRequests, MessageTooManyRequests)
}

func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Resp{
		ErrorCode: status,
		Message:   msg,
	})
}
