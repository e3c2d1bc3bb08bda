package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/cryptobloom/backend/internal/api/dto"
	"github.com/cryptobloom/backend/internal/domain"
	"github.com/cryptobloom/backend/internal/observability"
	"github.com/cryptobloom/backend/internal/service"
	apperrors "github.com/cryptobloom/backend/pkg/util"
)

// AdminHandler exposes moderator/admin endpoints. Routes using it are
// registered behind the staff role gate.
type AdminHandler struct {
	users   *service.UserService
	flowers *service.FlowerService
	orders  *service.OrderService
	metrics *observability.Metrics
}

// NewAdminHandler constructs handler.
func NewAdminHandler(userService *service.UserService, flowerService *service.FlowerService, orderService *service.OrderService, metrics *observability.Metrics) *AdminHandler {
	return &AdminHandler{users: userService, flowers: flowerService, orders: orderService, metrics: metrics}
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	users, err := h.users.ListUsers(c.Context(), limit, offset)
	if err != nil {
		return err
	}

	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"users": items})
}

// DeactivateUser handles POST /api/admin/users/:id/deactivate.
func (h *AdminHandler) DeactivateUser(c *fiber.Ctx) error {
	if err := h.users.Deactivate(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "user deactivated"})
}

// ReactivateUser handles POST /api/admin/users/:id/reactivate.
func (h *AdminHandler) ReactivateUser(c *fiber.Ctx) error {
	if err := h.users.Reactivate(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "user reactivated"})
}

// CreateFlower handles POST /api/admin/flowers.
func (h *AdminHandler) CreateFlower(c *fiber.Ctx) error {
	var req dto.FlowerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	flower, err := h.flowers.CreateFlower(c.Context(), flowerInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"flower": dto.NewFlowerResponse(flower)})
}

// UpdateFlower handles PATCH /api/admin/flowers/:id.
func (h *AdminHandler) UpdateFlower(c *fiber.Ctx) error {
	var req dto.FlowerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	flower, err := h.flowers.UpdateFlower(c.Context(), c.Params("id"), flowerInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"flower": dto.NewFlowerResponse(flower)})
}

// UpdateOrderStatus handles PATCH /api/admin/orders/:id/status.
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	var req dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	order, err := h.orders.UpdateStatus(c.Context(), c.Params("id"), domain.OrderStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"order": dto.NewOrderResponse(order)})
}

// Metrics handles GET /api/admin/analytics.
func (h *AdminHandler) Metrics(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"requests": h.metrics.Snapshot()})
}

func flowerInput(req dto.FlowerRequest) service.FlowerInput {
	return service.FlowerInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    domain.FlowerCategory(req.Category),
		Image:       req.Image,
		Stock:       req.Stock,
		Rating:      req.Rating,
		IsActive:    req.IsActive,
	}
}
