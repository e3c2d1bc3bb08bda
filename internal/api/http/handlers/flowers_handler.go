package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cryptobloom/backend/internal/api/dto"
	"github.com/cryptobloom/backend/internal/service"
)

// FlowersHandler exposes public catalog endpoints.
type FlowersHandler struct {
	flowers *service.FlowerService
}

// NewFlowersHandler constructs handler.
func NewFlowersHandler(flowerService *service.FlowerService) *FlowersHandler {
	return &FlowersHandler{flowers: flowerService}
}

// List handles GET /api/flowers.
func (h *FlowersHandler) List(c *fiber.Ctx) error {
	flowers, err := h.flowers.ListCatalog(c.Context(), c.Query("category"))
	if err != nil {
		return err
	}

	items := make([]dto.FlowerResponse, 0, len(flowers))
	for i := range flowers {
		items = append(items, dto.NewFlowerResponse(&flowers[i]))
	}
	return c.JSON(fiber.Map{"flowers": items})
}

// Get handles GET /api/flowers/:id.
func (h *FlowersHandler) Get(c *fiber.Ctx) error {
	flower, err := h.flowers.GetFlower(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"flower": dto.NewFlowerResponse(flower)})
}
