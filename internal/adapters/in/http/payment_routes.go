package http

import (
	"net/http"

	"arenoexpress/internal/core/application/usecases/commands"
	"arenoexpress/internal/core/application/usecases/queries"
	"arenoexpress/internal/core/domain/model/payment"

	"github.com/labstack/echo/v4"
)

// CreatePayment handles POST /api/v1/shipments/:id/payments. The payer is
// the caller.
func (s *Server) CreatePayment(c echo.Context) error {
	id, err := parseUUID("shipment id", c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	req, ok := bind[CreatePaymentRequest](c)
	if !ok {
		return badRequest(c, "Invalid request body")
	}
	paymentType, err := payment.ParseType(req.PaymentType)
	if err != nil {
		return s.writeError(c, err)
	}
	method, err := payment.ParseMethod(req.PaymentMethod)
	if err != nil {
		return s.writeError(c, err)
	}
	amount, err := parseMoney(req.Amount)
	if err != nil {
		return s.writeError(c, err)
	}
	cmd, err := commands.NewCreatePaymentCommand(actorOf(c), id, paymentType, amount, method,
		payment.GatewayResponse(req.GatewayResponse))
	if err != nil {
		return s.writeError(c, err)
	}
	p, err := s.h.CreatePayment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toPaymentResponse(p))
}

// GetPayment handles GET /api/v1/payments/:id.
func (s *Server) GetPayment(c echo.Context) error {
	id, err := parseUUID("payment id", c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	query, err := queries.NewGetPaymentQuery(actorOf(c), id)
	if err != nil {
		return s.writeError(c, err)
	}
	p, err := s.h.Shipments.HandlePayment(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toPaymentResponse(p))
}

// paymentAction handles POST /api/v1/payments/:id/{action}.
func (s *Server) paymentAction(action commands.PaymentAction) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseUUID("payment id", c.Param("id"))
		if err != nil {
			return s.writeError(c, err)
		}
		req, ok := bind[PaymentActionRequest](c)
		if !ok {
			return badRequest(c, "Invalid request body")
		}
		cmd, err := commands.NewPaymentActionCommand(actorOf(c), id, action, req.Reason,
			payment.GatewayResponse(req.GatewayResponse))
		if err != nil {
			return s.writeError(c, err)
		}
		p, err := s.h.PaymentAction.Handle(c.Request().Context(), cmd)
		if err != nil {
			return s.writeError(c, err)
		}
		return c.JSON(http.StatusOK, toPaymentResponse(p))
	}
}
