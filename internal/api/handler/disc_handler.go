package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/discgolf/storefront/internal/core/domain"
	"github.com/discgolf/storefront/internal/core/ports"
)

// DiscHandler handles HTTP requests for the disc catalog.
type DiscHandler struct {
	service ports.DiscService
}

func NewDiscHandler(service ports.DiscService) *DiscHandler {
	return &DiscHandler{service: service}
}

// --- Request / Response types ---

type discRequest struct {
	ID       int     `json:"id"`
	Color    string  `json:"color" validate:"required"`
	Weight   int     `json:"weight" validate:"gt=0"`
	Type     string  `json:"type" validate:"required"`
	Price    float64 `json:"price" validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"gte=0"`
}

func (r discRequest) toDomain() *domain.Disc {
	return &domain.Disc{
		ID:       r.ID,
		Color:    r.Color,
		Weight:   r.Weight,
		Type:     r.Type,
		Price:    r.Price,
		Quantity: r.Quantity,
	}
}

// List handles GET /discs.
func (h *DiscHandler) List(c echo.Context) error {
	discs, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, discs)
}

// Get handles GET /discs/:id.
func (h *DiscHandler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}
	disc, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, disc)
}

// SearchByType handles GET /discs/?type=driver — substring match on the
// disc type, case-insensitive.
func (h *DiscHandler) SearchByType(c echo.Context) error {
	discs, err := h.service.SearchByType(c.Request().Context(), c.QueryParam("type"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, discs)
}

// Filter handles GET /discs/filter?search=term&mode=N. The mode picks
// which attribute the term matches against; unknown modes fall back to
// price.
func (h *DiscHandler) Filter(c echo.Context) error {
	mode, err := strconv.Atoi(c.QueryParam("mode"))
	if err != nil {
		mode = int(domain.FilterPrice)
	}
	discs, err := h.service.Filter(c.Request().Context(), c.QueryParam("search"), domain.FilterMode(mode))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, discs)
}

// Create handles POST /discs.
func (h *DiscHandler) Create(c echo.Context) error {
	var req discRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	disc, err := h.service.Create(c.Request().Context(), req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, disc)
}

// Update handles PUT /discs — full replacement keyed by the body's id.
func (h *DiscHandler) Update(c echo.Context) error {
	var req discRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	disc, err := h.service.Update(c.Request().Context(), req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, disc)
}

// Delete handles DELETE /discs/:id.
func (h *DiscHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
