// Package http exposes the shipment lifecycle over a JSON API built on echo.
package http

import (
	"log/slog"
	"net/http"

	"arenoexpress/internal/core/application/usecases/commands"
	"arenoexpress/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// Handlers are the use cases the API dispatches to.
type Handlers struct {
	BookShipment        commands.BookShipmentCommandHandler
	DeleteShipment      commands.DeleteShipmentCommandHandler
	TransitionStatus    commands.TransitionStatusCommandHandler
	RecordPickup        commands.RecordPickupCommandHandler
	RecordDelivery      commands.RecordDeliveryCommandHandler
	AssignAgent         commands.AssignAgentCommandHandler
	RecordTrackingEvent commands.RecordTrackingEventCommandHandler
	Packages            commands.PackageCommandHandler
	CreateAssignment    commands.CreateAssignmentCommandHandler
	AssignmentAction    commands.AssignmentActionCommandHandler
	CreatePayment       commands.CreatePaymentCommandHandler
	PaymentAction       commands.PaymentActionCommandHandler

	PublicTrack queries.PublicTrackQueryHandler
	Shipments   queries.ShipmentQueryHandler
}

// Server coordinates between HTTP requests and the application use cases.
type Server struct {
	h      Handlers
	doc    *APIDoc
	logger *slog.Logger
}

func NewServer(h Handlers, doc *APIDoc, logger *slog.Logger) *Server {
	return &Server{h: h, doc: doc, logger: logger.With("component", "http")}
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	s.doc.mountDocs(e)
	e.GET("/track/:trackingNumber", s.PublicTrack)

	api := e.Group("/api/v1", s.requireActor, s.doc.validateRequests)

	api.POST("/shipments", s.BookShipment)
	api.GET("/shipments/track/:trackingNumber", s.TrackShipment)
	api.GET("/shipments/:id", s.GetShipment)
	api.DELETE("/shipments/:id", s.DeleteShipment)
	api.GET("/shipments/:id/history", s.GetHistory)
	api.POST("/shipments/:id/status", s.TransitionStatus)
	api.POST("/shipments/:id/pickup", s.RecordPickup)
	api.POST("/shipments/:id/delivery", s.RecordDelivery)
	api.POST("/shipments/:id/agent", s.AssignAgent)
	api.POST("/shipments/:id/events", s.RecordTrackingEvent)

	api.POST("/shipments/:id/packages", s.AddPackage)
	api.PATCH("/packages/:id", s.UpdatePackage)
	api.POST("/packages/:id/photos", s.AddPackagePhoto)

	api.POST("/shipments/:id/assignments", s.CreateAssignment)
	for name, action := range map[string]commands.AssignmentAction{
		"accept":   commands.AcceptAssignment,
		"start":    commands.StartAssignment,
		"complete": commands.CompleteAssignment,
		"cancel":   commands.CancelAssignment,
		"fail":     commands.FailAssignment,
	} {
		api.POST("/assignments/:id/"+name, s.assignmentAction(action))
	}

	api.POST("/shipments/:id/payments", s.CreatePayment)
	api.GET("/payments/:id", s.GetPayment)
	for name, action := range map[string]commands.PaymentAction{
		"complete": commands.CompletePayment,
		"fail":     commands.FailPayment,
		"refund":   commands.RefundPayment,
		"cancel":   commands.CancelPayment,
	} {
		api.POST("/payments/:id/"+name, s.paymentAction(action))
	}
}

// bind decodes the request body into req. An empty body leaves req zero.
func bind[T any](c echo.Context) (T, bool) {
	var req T
	if err := c.Bind(&req); err != nil {
		return req, false
	}
	return req, true
}
