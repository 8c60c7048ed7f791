package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

var kindStatus = map[Kind]int{
	KindValidation: http.StatusBadRequest,
	KindConflict:   http.StatusConflict,
	KindForbidden:  http.StatusForbidden,
	KindNotFound:   http.StatusNotFound,
	KindExpired:    http.StatusGone,

	KindUnauthorized: http.StatusUnauthorized,
}

var kindMessage = map[Kind]string{
	KindValidation: "Invalid request.",
	KindConflict:   "The request conflicts with the current state.",
	KindForbidden:  "Not allowed.",
	KindNotFound:   "Not found.",
	KindExpired:    "The deadline for this action has passed.",

	KindUnauthorized: "Invalid credentials.",
}

// Respond writes err as a JSON error. Anything that is not a BusinessError
// is logged and answered with an opaque 500.
func Respond(c *gin.Context, logger zerolog.Logger, err error) {
	if IsExclusionConflict(err) {
		Write(c, http.StatusConflict, "time_conflict", kindMessage[KindConflict])
		return
	}

	kind := KindOf(err)
	if status, ok := kindStatus[kind]; ok {
		Write(c, status, err.Error(), kindMessage[kind])
		return
	}

	logger.Error().
		Err(err).
		Str("request_id", c.GetString("request_id")).
		Str("path", c.Request.URL.Path).
		Msg("request failed")
	Internal(c, "internal_error", "Internal error.")
}
