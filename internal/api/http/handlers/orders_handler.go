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

// OrdersHandler exposes flower checkout endpoints.
type OrdersHandler struct {
	orders *service.OrderService
}

// NewOrdersHandler constructs handler.
func NewOrdersHandler(orderService *service.OrderService) *OrdersHandler {
	return &OrdersHandler{orders: orderService}
}

// Checkout handles POST /api/orders.
func (h *OrdersHandler) Checkout(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	items := make([]service.CheckoutItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.CheckoutItem{FlowerID: item.FlowerID, Quantity: item.Quantity})
	}

	order, err := h.orders.Checkout(c.Context(), identity.UserID, service.CheckoutInput{
		Items: items,
		ShippingAddress: domain.ShippingAddress{
			Street:  req.ShippingAddress.Street,
			City:    req.ShippingAddress.City,
			State:   req.ShippingAddress.State,
			ZipCode: req.ShippingAddress.ZipCode,
			Country: req.ShippingAddress.Country,
		},
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"order": dto.NewOrderResponse(order)})
}

// List handles GET /api/orders.
func (h *OrdersHandler) List(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	orders, err := h.orders.ListForUser(c.Context(), identity.UserID, limit, offset)
	if err != nil {
		return err
	}

	items := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, dto.NewOrderResponse(&orders[i]))
	}
	return c.JSON(fiber.Map{"orders": items})
}

// Get handles GET /api/orders/:id.
func (h *OrdersHandler) Get(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	order, err := h.orders.GetForUser(c.Context(), identity.UserID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"order": dto.NewOrderResponse(order)})
}
