package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/channelgrid/server/internal/config"
	"github.com/channelgrid/server/internal/database"
	"github.com/channelgrid/server/internal/logger"
	"github.com/channelgrid/server/internal/middleware"
	"github.com/channelgrid/server/internal/search"
)

// Per-request ceiling on datastore time; a timeout surfaces as a normal
// search failure envelope.
const searchTimeout = 10 * time.Second

type SearchHandler struct {
	engine *search.Engine
	cfg    *config.Config
}

func NewSearchHandler(db *database.DB, cfg *config.Config) *SearchHandler {
	return &SearchHandler{
		engine: search.NewGormEngine(db.DB, logger.GetLogger("search")),
		cfg:    cfg,
	}
}

func SetupSearchRoutes(router fiber.Router, db *database.DB, cfg *config.Config) *SearchHandler {
	h := NewSearchHandler(db, cfg)

	router.Get("/search", h.Search)
	return h
}

// Search godoc
// @Summary Search channels
// @Description Free-text channel search: zip codes, domains, "City State" pairs and plain text all work from the single q parameter
// @Tags channels
// @Accept json
// @Produce json
// @Param q query string false "Search query"
// @Param sort query string false "Sort key: relevance, distance, population, city_name, state_name, country_name, custom_domain, status"
// @Param status query string false "Filter by channel status"
// @Param country query string false "Filter by country code"
// @Param state query string false "Filter by state code"
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param radius query int false "Radius in miles, zip searches only"
// @Success 200 {object} search.Result
// @Router /channels/search [get]
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		// Legacy parameter name used by older embeds.
		query = c.Query("search")
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	perPage, _ := strconv.Atoi(c.Query("per_page", "0"))
	limit, _ := strconv.Atoi(c.Query("limit", "0"))
	radius, _ := strconv.Atoi(c.Query("radius", "0"))
	debug := c.Query("debug") == "true"

	tier := middleware.SearchContextFrom(c)
	if debug && tier == search.ContextEndUser {
		// Debug output leaks query detail; end users don't get it.
		debug = false
	}

	opts := search.Options{
		Context: tier,
		Limit:   limit,
		Page:    page,
		PerPage: perPage,
		Sort:    c.Query("sort"),
		Status:  c.Query("status"),
		Country: c.Query("country"),
		State:   c.Query("state"),
		Radius:  radius,
		Debug:   debug,
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), searchTimeout)
	defer cancel()

	result := h.engine.Search(ctx, query, opts)
	return c.JSON(result)
}

// InvalidateCache godoc
// @Summary Invalidate the search result cache
// @Description Called by the channel sync job after data mutations
// @Tags internal
// @Param X-API-Key header string true "Internal API Key"
// @Success 200 {object} map[string]interface{}
// @Router /internal/search-cache [delete]
func (h *SearchHandler) InvalidateCache(c *fiber.Ctx) error {
	before := h.engine.CacheSize()
	h.engine.InvalidateCache()
	return c.JSON(fiber.Map{
		"cleared": before,
	})
}
