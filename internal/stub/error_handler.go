// Package stub is a local stand-in for the production-records backend. It
// serves the slice of the real API the client uses (auth lifecycle and
// registros de envases) from memory, so the CLI can be developed and demoed
// with no services running.
package stub

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// errorEnvelope matches the real backend's error shape. Message is a single
// string for most errors and a list for validation failures.
type errorEnvelope struct {
	StatusCode int    `json:"statusCode"`
	Message    any    `json:"message"`
	Error      string `json:"error"`
}

// NewHTTPErrorHandler renders every error as the backend's envelope and logs
// unexpected ones without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		var message any = "Internal server error"

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			message = he.Message
		} else {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("unhandled error")
		}

		_ = c.JSON(code, errorEnvelope{
			StatusCode: code,
			Message:    message,
			Error:      http.StatusText(code),
		})
	}
}
