package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/discgolf/storefront/internal/core/domain"
	"github.com/discgolf/storefront/internal/core/ports"
)

// UserHandler handles HTTP requests for accounts and the login/logout flow.
type UserHandler struct {
	auth ports.AuthService
}

func NewUserHandler(auth ports.AuthService) *UserHandler {
	return &UserHandler{auth: auth}
}

// --- Request / Response types ---

type signUpRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updateUserRequest struct {
	ID       int    `json:"id" validate:"required"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password"`
	Admin    bool   `json:"isAdmin"`
	LoggedIn bool   `json:"loggedIn"`
}

// Login handles GET /users/:username/login/:password.
//
// Credentials travel in the URL path; this mirrors the wire contract the
// storefront clients were built against. Replies 202 so callers can tell a
// login apart from a plain user fetch.
//
// @Summary      Log a user in
// @Tags         users
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Param        password  path      string  true  "Password"
// @Success      202       {object}  domain.User
// @Failure      401       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /users/{username}/login/{password} [get]
func (h *UserHandler) Login(c echo.Context) error {
	user, err := h.auth.Login(c.Request().Context(), c.Param("username"), c.Param("password"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, user)
}

// Logout handles GET /users/:username/logout.
func (h *UserHandler) Logout(c echo.Context) error {
	if err := h.auth.Logout(c.Request().Context(), c.Param("username")); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

// SignUp handles POST /users. A cart for the new account is not created
// here; clients create one right after signing up.
func (h *UserHandler) SignUp(c echo.Context) error {
	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.auth.SignUp(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// List handles GET /users.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.auth.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get handles GET /users/:username.
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.auth.GetUser(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update handles PUT /users. A non-empty password is re-hashed; an empty
// one leaves the stored hash untouched.
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.auth.UpdateUser(c.Request().Context(), &domain.User{
		ID:           req.ID,
		Username:     req.Username,
		PasswordHash: req.Password,
		Admin:        req.Admin,
		LoggedIn:     req.LoggedIn,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /users/:id.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}
	if err := h.auth.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
