package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/cryptobloom/backend/internal/api/dto"
	"github.com/cryptobloom/backend/internal/auth"
	"github.com/cryptobloom/backend/internal/domain"
	"github.com/cryptobloom/backend/internal/service"
	apperrors "github.com/cryptobloom/backend/pkg/util"
)

// TradesHandler exposes the simulated trading ledger.
type TradesHandler struct {
	trades *service.TradeService
}

// NewTradesHandler constructs handler.
func NewTradesHandler(tradeService *service.TradeService) *TradesHandler {
	return &TradesHandler{trades: tradeService}
}

// Execute handles POST /api/trades.
func (h *TradesHandler) Execute(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.TradeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	trade, err := h.trades.Execute(c.Context(), identity.UserID, service.TradeInput{
		Type:     domain.TradeType(req.Type),
		Currency: req.Currency,
		Amount:   req.Amount,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"trade": dto.NewTradeResponse(trade)})
}

// List handles GET /api/trades.
func (h *TradesHandler) List(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	trades, err := h.trades.ListForUser(c.Context(), identity.UserID, limit, offset)
	if err != nil {
		return err
	}

	items := make([]dto.TradeResponse, 0, len(trades))
	for i := range trades {
		items = append(items, dto.NewTradeResponse(&trades[i]))
	}
	return c.JSON(fiber.Map{"trades": items})
}

// Cancel handles POST /api/trades/:id/cancel.
func (h *TradesHandler) Cancel(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	trade, err := h.trades.Cancel(c.Context(), identity.UserID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"trade": dto.NewTradeResponse(trade)})
}
