package handler

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/discgolf/storefront/internal/core/ports"
)

// CartHandler handles HTTP requests for cart maintenance and the
// check/purchase protocol.
type CartHandler struct {
	service ports.CartService
}

func NewCartHandler(service ports.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// Create handles POST /carts. The body is the owner's username, sent
// either bare or as a JSON string literal.
func (h *CartHandler) Create(c echo.Context) error {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	username := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username is required")
	}

	cart, err := h.service.Create(c.Request().Context(), username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, cart)
}

// List handles GET /carts.
func (h *CartHandler) List(c echo.Context) error {
	carts, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, carts)
}

// FindByUsername handles GET /carts/?username=alice.
func (h *CartHandler) FindByUsername(c echo.Context) error {
	carts, err := h.service.FindByUsername(c.Request().Context(), c.QueryParam("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, carts)
}

// Get handles GET /carts/:id.
func (h *CartHandler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}
	cart, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}

// Delete handles DELETE /carts/:id.
func (h *CartHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Contents handles GET /carts/:username/contents — the cart lines joined
// against the catalog, each disc carrying its requested quantity.
func (h *CartHandler) Contents(c echo.Context) error {
	discs, err := h.service.Contents(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, discs)
}

// Cost handles GET /carts/getCost/:username.
func (h *CartHandler) Cost(c echo.Context) error {
	cost, err := h.service.Cost(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cost)
}

// Count handles GET /carts/getCount/:username.
func (h *CartHandler) Count(c echo.Context) error {
	count, err := h.service.Count(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, count)
}

// AddDisc handles PUT /carts/addDisc/:username/:id.
func (h *CartHandler) AddDisc(c echo.Context) error {
	discID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}
	cart, err := h.service.AddDisc(c.Request().Context(), c.Param("username"), discID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}

// RemoveDisc handles PUT /carts/removeDisc/:username/:id.
func (h *CartHandler) RemoveDisc(c echo.Context) error {
	discID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}
	cart, err := h.service.RemoveDisc(c.Request().Context(), c.Param("username"), discID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}

// UpdateQuantity handles PUT /carts/updateDiscQuantity/:username/:id/:quantity/:mode.
// Mode 0 sets the quantity outright, 1 adds, 2 subtracts; a resulting
// quantity of zero or less removes the line.
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	discID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}
	quantity, err := strconv.Atoi(c.Param("quantity"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "quantity must be an integer")
	}
	mode, err := strconv.Atoi(c.Param("mode"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "mode must be an integer")
	}

	cart, err := h.service.UpdateQuantity(c.Request().Context(), c.Param("username"), discID, quantity, mode)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}

// CheckCart handles GET /carts/checkCart/:username — the advisory check
// phase. The response lists the discs that cannot be fulfilled in full,
// each reported at its available quantity; an empty list means the whole
// cart is purchasable as requested.
func (h *CartHandler) CheckCart(c echo.Context) error {
	conflicts, err := h.service.CheckCart(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, conflicts)
}

// PurchaseCart handles PUT /carts/purchase/:username — the commit phase.
// Each line is fulfilled up to current stock and the response carries the
// lines actually bought. The commit is authoritative: it may fulfil less
// than a preceding check promised.
func (h *CartHandler) PurchaseCart(c echo.Context) error {
	purchased, err := h.service.PurchaseCart(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, purchased)
}

// CheckOne handles GET /carts/checkOne/:username/:id. Replies with the
// conflicting disc at its available quantity, or a JSON null when the
// line can be fulfilled as requested.
func (h *CartHandler) CheckOne(c echo.Context) error {
	discID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}
	conflict, err := h.service.CheckOne(c.Request().Context(), c.Param("username"), discID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, conflict)
}

// PurchaseOne handles PUT /carts/purchaseOne/:username/:id.
func (h *CartHandler) PurchaseOne(c echo.Context) error {
	discID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}
	purchased, err := h.service.PurchaseOne(c.Request().Context(), c.Param("username"), discID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, purchased)
}
