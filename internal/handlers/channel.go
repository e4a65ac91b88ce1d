package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/channelgrid/server/internal/database"
	"github.com/channelgrid/server/internal/services"
)

type ChannelHandler struct {
	service *services.ChannelService
}

func NewChannelHandler(db *database.DB) *ChannelHandler {
	return &ChannelHandler{
		service: services.NewChannelService(db),
	}
}

func SetupChannelRoutes(router fiber.Router, db *database.DB) {
	h := NewChannelHandler(db)

	router.Get("/by-domain/:domain", h.GetByDomain)
	router.Get("/:slug", h.GetBySlug)
}

// GetBySlug godoc
// @Summary Get channel by slug
// @Tags channels
// @Accept json
// @Produce json
// @Param slug path string true "Channel slug"
// @Success 200 {object} models.Channel
// @Router /channels/{slug} [get]
func (h *ChannelHandler) GetBySlug(c *fiber.Ctx) error {
	channel, err := h.service.GetBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Channel not found"})
	}
	return c.JSON(channel)
}

// GetByDomain godoc
// @Summary Get channel by custom domain
// @Tags channels
// @Accept json
// @Produce json
// @Param domain path string true "Custom domain"
// @Success 200 {object} models.Channel
// @Router /channels/by-domain/{domain} [get]
func (h *ChannelHandler) GetByDomain(c *fiber.Ctx) error {
	channel, err := h.service.GetByDomain(c.UserContext(), c.Params("domain"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Channel not found"})
	}
	return c.JSON(channel)
}
