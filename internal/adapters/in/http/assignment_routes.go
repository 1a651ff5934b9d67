package http

import (
	"net/http"

	"arenoexpress/internal/core/application/usecases/commands"
	"arenoexpress/internal/core/domain/model/assignment"
	"arenoexpress/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// CreateAssignment handles POST /api/v1/shipments/:id/assignments.
func (s *Server) CreateAssignment(c echo.Context) error {
	id, err := parseUUID("shipment id", c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	req, ok := bind[CreateAssignmentRequest](c)
	if !ok {
		return badRequest(c, "Invalid request body")
	}
	driverID, err := parseUUID("driver_id", req.DriverID)
	if err != nil {
		return s.writeError(c, err)
	}
	assignmentType, err := assignment.ParseType(req.AssignmentType)
	if err != nil {
		return s.writeError(c, err)
	}
	var vehicleID *kernel.UUID
	if req.VehicleID != nil {
		v, err := parseUUID("vehicle_id", *req.VehicleID)
		if err != nil {
			return s.writeError(c, err)
		}
		vehicleID = &v
	}
	cmd, err := commands.NewCreateAssignmentCommand(actorOf(c), id, driverID, assignmentType,
		vehicleID, req.Notes, req.EstimatedDuration)
	if err != nil {
		return s.writeError(c, err)
	}
	a, err := s.h.CreateAssignment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toAssignmentResponse(a))
}

// assignmentAction handles POST /api/v1/assignments/:id/{action}.
func (s *Server) assignmentAction(action commands.AssignmentAction) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseUUID("assignment id", c.Param("id"))
		if err != nil {
			return s.writeError(c, err)
		}
		req, ok := bind[AssignmentActionRequest](c)
		if !ok {
			return badRequest(c, "Invalid request body")
		}
		loc, err := kernel.NewLocation(req.Location)
		if err != nil {
			return s.writeError(c, err)
		}
		cmd, err := commands.NewAssignmentActionCommand(actorOf(c), id, action, loc, req.Reason)
		if err != nil {
			return s.writeError(c, err)
		}
		a, err := s.h.AssignmentAction.Handle(c.Request().Context(), cmd)
		if err != nil {
			return s.writeError(c, err)
		}
		return c.JSON(http.StatusOK, toAssignmentResponse(a))
	}
}
