package http

import (
	"errors"
	"strings"

	"arenoexpress/internal/core/domain/model/access"
	"arenoexpress/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Identity is asserted by the gateway in front of this service.
const (
	HeaderActorID   = "X-Actor-ID"
	HeaderActorRole = "X-Actor-Role"
)

const actorKey = "actor"

var errMissingActor = errs.NewAccessDeniedErrorWithCause("request",
	errors.New("missing "+HeaderActorID+" or "+HeaderActorRole+" header"))

// requireActor resolves the caller from the identity headers. Requests
// without a valid identity never reach a handler.
func (s *Server) requireActor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		rawID := strings.TrimSpace(c.Request().Header.Get(HeaderActorID))
		rawRole := strings.TrimSpace(c.Request().Header.Get(HeaderActorRole))
		if rawID == "" || rawRole == "" {
			return s.writeError(c, errMissingActor)
		}
		id, err := parseUUID("actor id", rawID)
		if err != nil {
			return s.writeError(c, errs.NewAccessDeniedErrorWithCause("request", err))
		}
		role, err := access.ParseRole(strings.ToLower(rawRole))
		if err != nil {
			return s.writeError(c, err)
		}
		actor, err := access.NewActor(id, role)
		if err != nil {
			return s.writeError(c, err)
		}
		c.Set(actorKey, actor)
		return next(c)
	}
}

func actorOf(c echo.Context) access.Actor {
	actor, _ := c.Get(actorKey).(access.Actor)
	return actor
}
