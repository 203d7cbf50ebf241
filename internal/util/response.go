package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is a free-form JSON object body.
type Response map[string]interface{}

// business error codes, returned next to the HTTP status
const (
	CodeInvalidParam = 40001
	CodeDuplicate    = 40002
	CodeAuth         = 40101
	CodeNotFound     = 40401
	CodeServerErr    = 50001
)

// Success writes data as a 200 JSON body.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Error writes {"code": code, "detail": msg} with the given status.
func Error(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, gin.H{
		"code":   code,
		"detail": msg,
	})
}

// Abort is Error followed by c.Abort, for middleware.
func Abort(c *gin.Context, httpStatus int, code int, msg string) {
	Error(c, httpStatus, code, msg)
	c.Abort()
}
