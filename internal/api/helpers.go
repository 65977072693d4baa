package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/bjo163/pairlink/internal/relay"
)

// errJSON writes the flat error shape the clients parse.
func errJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"error": msg})
}

// writeError maps relay error kinds to status codes. Internal detail stays in
// the log, the client gets a generic message.
func writeError(c echo.Context, err error) error {
	switch {
	case relay.IsValidation(err):
		return errJSON(c, http.StatusBadRequest, err.Error())
	case relay.IsNotFound(err):
		return errJSON(c, http.StatusNotFound, err.Error())
	default:
		zap.L().Error("request failed",
			zap.String("path", c.Request().URL.Path),
			zap.Error(err))
		return errJSON(c, http.StatusInternalServerError, "Internal server error")
	}
}

// parsePairID accepts the id as a JSON string or number. Snowflake ids exceed
// the float64 safe-integer range, so clients send them as strings.
func parsePairID(v interface{}) int64 {
	id, err := cast.ToInt64E(v)
	if err != nil {
		return 0
	}
	return id
}
