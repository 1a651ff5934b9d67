package http

import (
	"net/http"
	"strings"

	"arenoexpress/internal/core/application/usecases/commands"
	"arenoexpress/internal/core/application/usecases/queries"
	"arenoexpress/internal/core/domain/model/kernel"
	"arenoexpress/internal/core/domain/model/shipment"
	"arenoexpress/internal/core/domain/model/tracking"
	"arenoexpress/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// PublicTrack handles GET /track/:trackingNumber. Any failure to find the
// shipment, including a malformed number, is the same plain not found.
func (s *Server) PublicTrack(c echo.Context) error {
	query, err := queries.NewPublicTrackQuery(c.Param("trackingNumber"))
	if err != nil {
		return c.JSON(http.StatusNotFound, Error{Code: http.StatusNotFound, Kind: errs.KindNotFound.String(), Message: "not found"})
	}
	view, err := s.h.PublicTrack.Handle(c.Request().Context(), query)
	if err != nil {
		if errs.KindOf(err) == errs.KindNotFound {
			return c.JSON(http.StatusNotFound, Error{Code: http.StatusNotFound, Kind: errs.KindNotFound.String(), Message: "not found"})
		}
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, view)
}

// BookShipment handles POST /api/v1/shipments.
func (s *Server) BookShipment(c echo.Context) error {
	req, ok := bind[BookShipmentRequest](c)
	if !ok {
		return badRequest(c, "Invalid request body")
	}
	params, err := req.toParams()
	if err != nil {
		return s.writeError(c, err)
	}
	cmd, err := commands.NewBookShipmentCommand(actorOf(c), params)
	if err != nil {
		return s.writeError(c, err)
	}
	result, err := s.h.BookShipment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toBookingResponse(result))
}

// TrackShipment handles GET /api/v1/shipments/track/:trackingNumber.
func (s *Server) TrackShipment(c echo.Context) error {
	query, err := queries.NewTrackShipmentQuery(actorOf(c), c.Param("trackingNumber"))
	if err != nil {
		return s.writeError(c, err)
	}
	details, err := s.h.Shipments.HandleTrack(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toShipmentDetailsResponse(details))
}

// GetShipment handles GET /api/v1/shipments/:id.
func (s *Server) GetShipment(c echo.Context) error {
	id, err := parseUUID("shipment id", c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	query, err := queries.NewGetShipmentQuery(actorOf(c), id)
	if err != nil {
		return s.writeError(c, err)
	}
	details, err := s.h.Shipments.HandleGet(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toShipmentDetailsResponse(details))
}

// GetHistory handles GET /api/v1/shipments/:id/history.
func (s *Server) GetHistory(c echo.Context) error {
	id, err := parseUUID("shipment id", c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	query, err := queries.NewGetTrackingHistoryQuery(actorOf(c), id)
	if err != nil {
		return s.writeError(c, err)
	}
	history, err := s.h.Shipments.HandleHistory(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toHistoryResponse(history))
}

// DeleteShipment handles DELETE /api/v1/shipments/:id.
func (s *Server) DeleteShipment(c echo.Context) error {
	id, err := parseUUID("shipment id", c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	cmd, err := commands.NewDeleteShipmentCommand(actorOf(c), id)
	if err != nil {
		return s.writeError(c, err)
	}
	if err = s.h.DeleteShipment.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// TransitionStatus handles POST /api/v1/shipments/:id/status.
func (s *Server) TransitionStatus(c echo.Context) error {
	id, err := parseUUID("shipment id", c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	req, ok := bind[TransitionRequest](c)
	if !ok {
		return badRequest(c, "Invalid request body")
	}
	target, err := shipment.ParseStatus(req.Status)
	if err != nil {
		return s.writeError(c, err)
	}
	loc, err := kernel.NewLocation(req.Location)
	if err != nil {
		return s.writeError(c, err)
	}
	cmd, err := commands.NewTransitionStatusCommand(actorOf(c), id, target, loc, req.Notes)
	if err != nil {
		return s.writeError(c, err)
	}
	updated, err := s.h.TransitionStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toShipmentResponse(updated))
}

// RecordPickup handles POST /api/v1/shipments/:id/pickup.
func (s *Server) RecordPickup(c echo.Context) error {
	id, err := parseUUID("shipment id", c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	req, ok := bind[EvidenceRequest](c)
	if !ok {
		return badRequest(c, "Invalid request body")
	}
	evidence, err := req.toEvidence()
	if err != nil {
		return s.writeError(c, err)
	}
	cmd, err := commands.NewRecordPickupCommand(actorOf(c), id, evidence)
	if err != nil {
		return s.writeError(c, err)
	}
	updated, err := s.h.RecordPickup.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toShipmentResponse(updated))
}

// RecordDelivery handles POST /api/v1/shipments/:id/delivery.
func (s *Server) RecordDelivery(c echo.Context) error {
	id, err := parseUUID("shipment id", c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	req, ok := bind[EvidenceRequest](c)
	if !ok {
		return badRequest(c, "Invalid request body")
	}
	kind := shipment.Delivered
	if strings.TrimSpace(req.Kind) != "" {
		if kind, err = shipment.ParseStatus(req.Kind); err != nil {
			return s.writeError(c, err)
		}
	}
	evidence, err := req.toEvidence()
	if err != nil {
		return s.writeError(c, err)
	}
	cmd, err := commands.NewRecordDeliveryCommand(actorOf(c), id, kind, evidence)
	if err != nil {
		return s.writeError(c, err)
	}
	updated, err := s.h.RecordDelivery.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toShipmentResponse(updated))
}

// AssignAgent handles POST /api/v1/shipments/:id/agent.
func (s *Server) AssignAgent(c echo.Context) error {
	id, err := parseUUID("shipment id", c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	req, ok := bind[AssignAgentRequest](c)
	if !ok {
		return badRequest(c, "Invalid request body")
	}
	agentID, err := parseUUID("agent_id", req.AgentID)
	if err != nil {
		return s.writeError(c, err)
	}
	cmd, err := commands.NewAssignAgentCommand(actorOf(c), id, agentID)
	if err != nil {
		return s.writeError(c, err)
	}
	updated, err := s.h.AssignAgent.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toShipmentResponse(updated))
}

// RecordTrackingEvent handles POST /api/v1/shipments/:id/events.
func (s *Server) RecordTrackingEvent(c echo.Context) error {
	id, err := parseUUID("shipment id", c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	req, ok := bind[TrackingEventRequest](c)
	if !ok {
		return badRequest(c, "Invalid request body")
	}
	eventType, err := tracking.ParseEventType(req.EventType)
	if err != nil {
		return s.writeError(c, err)
	}
	loc, err := kernel.NewLocation(req.Location)
	if err != nil {
		return s.writeError(c, err)
	}
	cmd, err := commands.NewRecordTrackingEventCommand(actorOf(c), id, eventType, loc,
		req.Description, req.Metadata, req.Timestamp)
	if err != nil {
		return s.writeError(c, err)
	}
	event, err := s.h.RecordTrackingEvent.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toEventResponse(event))
}
