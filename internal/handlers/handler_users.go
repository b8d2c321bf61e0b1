package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fxtrack/fxtrack/internal/apperrors"
	portssvc "github.com/fxtrack/fxtrack/internal/core/ports/services"
	"github.com/fxtrack/fxtrack/internal/middleware"
	"github.com/fxtrack/fxtrack/pkg/config"
	"github.com/gin-gonic/gin"
)

// UserHandler handles account-level operations for the authenticated user.
type UserHandler struct {
	userService portssvc.UserSvcFacade
	cfg         *config.Config
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us portssvc.UserSvcFacade, cfg *config.Config) *UserHandler {
	return &UserHandler{userService: us, cfg: cfg}
}

// registerUserRoutes sets up the account routes on the authenticated group.
func registerUserRoutes(rg *gin.RouterGroup, cfg *config.Config, userService portssvc.UserSvcFacade) {
	h := NewUserHandler(userService, cfg)
	users := rg.Group("/users")
	{
		users.DELETE("/me", h.DeleteMe)
	}
}

// DeleteMe godoc
// @Summary Delete own account
// @Description Soft-deletes the authenticated user's account and revokes
// their refresh token. The account stops resolving for logins and lookups.
// @Tags users
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me [delete]
func (h *UserHandler) DeleteMe(c *gin.Context) {
	ctx := c.Request.Context()
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.userService.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
			return
		}
		logger := middleware.GetLoggerFromCtx(ctx)
		logger.Error("Failed to delete user", slog.String("error", err.Error()), slog.String("user_id", userID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to delete account"})
		return
	}

	c.SetCookie(h.cfg.RefreshTokenCookieName, "", -1, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
	c.Status(http.StatusNoContent)
}
