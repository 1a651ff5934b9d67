package http

import (
	"net/http"

	"arenoexpress/internal/core/application/usecases/commands"

	"github.com/labstack/echo/v4"
)

// AddPackage handles POST /api/v1/shipments/:id/packages.
func (s *Server) AddPackage(c echo.Context) error {
	id, err := parseUUID("shipment id", c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	req, ok := bind[PackageRequest](c)
	if !ok {
		return badRequest(c, "Invalid request body")
	}
	details, err := req.toDetails()
	if err != nil {
		return s.writeError(c, err)
	}
	cmd, err := commands.NewAddPackageCommand(actorOf(c), id, details)
	if err != nil {
		return s.writeError(c, err)
	}
	p, err := s.h.Packages.HandleAdd(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toPackageResponse(p))
}

// UpdatePackage handles PATCH /api/v1/packages/:id. The body replaces every
// editable field.
func (s *Server) UpdatePackage(c echo.Context) error {
	id, err := parseUUID("package id", c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	req, ok := bind[PackageRequest](c)
	if !ok {
		return badRequest(c, "Invalid request body")
	}
	details, err := req.toDetails()
	if err != nil {
		return s.writeError(c, err)
	}
	cmd, err := commands.NewUpdatePackageCommand(actorOf(c), id, details)
	if err != nil {
		return s.writeError(c, err)
	}
	p, err := s.h.Packages.HandleUpdate(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toPackageResponse(p))
}

// AddPackagePhoto handles POST /api/v1/packages/:id/photos.
func (s *Server) AddPackagePhoto(c echo.Context) error {
	id, err := parseUUID("package id", c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	req, ok := bind[PhotoRequest](c)
	if !ok {
		return badRequest(c, "Invalid request body")
	}
	cmd, err := commands.NewAddPackagePhotoCommand(actorOf(c), id, req.Ref)
	if err != nil {
		return s.writeError(c, err)
	}
	p, err := s.h.Packages.HandleAddPhoto(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toPackageResponse(p))
}
