package http

import (
	"net/http"

	"arenoexpress/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

var statusByKind = map[errs.Kind]int{
	errs.KindNotFound:         http.StatusNotFound,
	errs.KindAccessDenied:     http.StatusForbidden,
	errs.KindInvalidState:     http.StatusConflict,
	errs.KindValidationFailed: http.StatusBadRequest,
	errs.KindConflict:         http.StatusConflict,
	errs.KindInternal:         http.StatusInternalServerError,
}

// writeError renders err by its kind. Internal failures are logged and never
// expose their cause.
func (s *Server) writeError(c echo.Context, err error) error {
	kind := errs.KindOf(err)
	code := statusByKind[kind]
	msg := err.Error()
	if kind == errs.KindInternal {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
		msg = http.StatusText(code)
	}
	return c.JSON(code, Error{Code: code, Kind: kind.String(), Message: msg})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Kind:    errs.KindValidationFailed.String(),
		Message: msg,
	})
}
