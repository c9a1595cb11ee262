package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/discgolf/storefront/internal/core/domain"
	"github.com/discgolf/storefront/internal/core/ports"
)

// LessonHandler handles HTTP requests for lessons and booking.
type LessonHandler struct {
	service ports.LessonService
}

func NewLessonHandler(service ports.LessonService) *LessonHandler {
	return &LessonHandler{service: service}
}

// --- Request / Response types ---

type lessonRequest struct {
	ID          int     `json:"id"`
	Username    *string `json:"username"`
	Title       string  `json:"title" validate:"required"`
	Description string  `json:"description"`
	Days        string  `json:"days" validate:"required"`
	StartDate   string  `json:"startDate" validate:"required"`
	EndDate     string  `json:"endDate" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
}

func (r lessonRequest) toDomain() *domain.Lesson {
	return &domain.Lesson{
		ID:          r.ID,
		Username:    r.Username,
		Title:       r.Title,
		Description: r.Description,
		Days:        r.Days,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Price:       r.Price,
	}
}

// List handles GET /lessons.
func (h *LessonHandler) List(c echo.Context) error {
	lessons, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, lessons)
}

// Get handles GET /lessons/:id.
func (h *LessonHandler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}
	lesson, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, lesson)
}

// OnDate handles GET /lessons/dates/?date=MM/DD/YYYY — lessons whose
// schedule includes the given date.
func (h *LessonHandler) OnDate(c echo.Context) error {
	lessons, err := h.service.OnDate(c.Request().Context(), c.QueryParam("date"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, lessons)
}

// ByUser handles GET /lessons/user/:username — lessons the user has booked.
func (h *LessonHandler) ByUser(c echo.Context) error {
	lessons, err := h.service.ByUser(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, lessons)
}

// Create handles POST /lessons.
func (h *LessonHandler) Create(c echo.Context) error {
	var req lessonRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	lesson, err := h.service.Create(c.Request().Context(), req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, lesson)
}

// Update handles PUT /lessons — full replacement keyed by the body's id.
// Setting the username claims the single subscriber slot; a lesson already
// claimed by someone else replies 409.
func (h *LessonHandler) Update(c echo.Context) error {
	var req lessonRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	lesson, err := h.service.Update(c.Request().Context(), req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, lesson)
}

// Delete handles DELETE /lessons/:id.
func (h *LessonHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
