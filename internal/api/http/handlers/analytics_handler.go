package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cryptobloom/backend/internal/auth"
	"github.com/cryptobloom/backend/internal/service"
	apperrors "github.com/cryptobloom/backend/pkg/util"
)

// AnalyticsHandler exposes portfolio summaries.
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
}

// NewAnalyticsHandler constructs handler.
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analyticsService}
}

// Portfolio handles GET /api/analytics/portfolio.
func (h *AnalyticsHandler) Portfolio(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	summary, err := h.analytics.Portfolio(c.Context(), identity.UserID)
	if err != nil {
		return err
	}

	currencies := make([]fiber.Map, 0, len(summary.Currencies))
	for _, v := range summary.Currencies {
		currencies = append(currencies, fiber.Map{
			"currency": v.Currency,
			"trades":   v.Trades,
			"amount":   v.Amount,
			"notional": v.Notional,
		})
	}

	return c.JSON(fiber.Map{
		"wallet_balance": summary.WalletBalance,
		"currencies":     currencies,
		"order_spend":    summary.OrderSpend,
	})
}
