package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"skillpath/internal/middleware"
)

// UserHandler serves the signed-in user's own record.
type UserHandler struct{}

// NewUserHandler creates a user handler.
func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// GetCurrentUser godoc
// @Summary Get the signed-in user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.User
// @Failure 401 {string} string "Unauthorized"
// @Router /user [get]
func (h *UserHandler) GetCurrentUser(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return middleware.Unauthorized(c)
	}
	return c.JSON(http.StatusOK, user)
}
