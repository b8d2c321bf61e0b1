package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/fxtrack/fxtrack/internal/core/domain"
	portssvc "github.com/fxtrack/fxtrack/internal/core/ports/services"
	"github.com/fxtrack/fxtrack/internal/middleware"
	"github.com/fxtrack/fxtrack/internal/utils"
	"github.com/fxtrack/fxtrack/pkg/config"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
)

const oauthStateCookieName = "oauthstate"

// GoogleOAuthHandler handles the Google sign-in flow: redirect to Google,
// then resolve the callback to a local account and an application token pair.
type GoogleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	userService        portssvc.UserSvcFacade
	tokenService       portssvc.TokenSvcFacade
	cfg                *config.Config
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler.
func NewGoogleOAuthHandler(
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade,
	userService portssvc.UserSvcFacade,
	tokenService portssvc.TokenSvcFacade,
	cfg *config.Config,
) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		googleOAuthService: googleOAuthService,
		userService:        userService,
		tokenService:       tokenService,
		cfg:                cfg,
	}
}

// registerGoogleOAuthRoutes registers the Google OAuth routes under the
// public auth group.
func registerGoogleOAuthRoutes(rg *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewGoogleOAuthHandler(services.GoogleOAuth, services.User, services.Token, cfg)
	googleRoutes := rg.Group("/google")
	{
		googleRoutes.GET("/login", h.LoginGoogle)
		googleRoutes.GET("/callback", h.CallbackGoogle)
	}
}

// LoginGoogle godoc
// @Summary Start Google sign-in
// @Description Redirects the browser to Google's consent screen. A CSRF state
// token is stored in a short-lived cookie and checked on callback.
// @Tags oauth
// @Success 307
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/login [get]
func (h *GoogleOAuthHandler) LoginGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	state, err := h.googleOAuthService.GenerateStateString(ctx)
	if err != nil {
		logger.Error("Failed to generate OAuth state", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to start Google sign-in"})
		return
	}

	c.SetCookie(oauthStateCookieName, state, 600, "/", "", h.cfg.IsProduction, true)
	c.Redirect(http.StatusTemporaryRedirect, h.googleOAuthService.GetGoogleLoginURL(ctx, state))
}

// CallbackGoogle godoc
// @Summary Google sign-in callback
// @Description Validates the state cookie, exchanges the authorization code,
// resolves the Google identity to a local account and issues tokens. On
// success the browser is redirected back to the frontend with the access
// token; the refresh token travels in the usual HTTP-only cookie.
// @Tags oauth
// @Success 307
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/callback [get]
func (h *GoogleOAuthHandler) CallbackGoogle(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	stateCookie, err := c.Cookie(oauthStateCookieName)
	if err != nil || stateCookie == "" || stateCookie != c.Query("state") {
		logger.Warn("OAuth state mismatch on Google callback")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid OAuth state"})
		return
	}
	c.SetCookie(oauthStateCookieName, "", -1, "/", "", h.cfg.IsProduction, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Authorization code missing"})
		return
	}

	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, code)
	if err != nil {
		logger.Error("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid or expired authorization code"})
		return
	}

	// Prefer the signed ID token; fall back to the userinfo endpoint when the
	// token response does not carry one.
	info, err := h.resolveUserInfo(c, oauth2Token)
	if err != nil {
		logger.Error("Failed to resolve Google user info", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Failed to verify Google identity"})
		return
	}

	user, err := h.userService.FindOrCreateGoogleUser(ctx, info)
	if err != nil {
		logger.Error("Failed to find or create Google user", slog.String("error", err.Error()), slog.String("google_user_id", info.ID))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to process Google sign-in"})
		return
	}

	accessToken, _, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		logger.Error("Failed to generate access token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	rawRefreshToken, refreshExpiry, err := h.tokenService.GenerateRefreshToken(ctx, user)
	if err != nil {
		logger.Error("Failed to generate refresh token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}
	if err := h.userService.UpdateRefreshToken(ctx, user.UserID, utils.HashRefreshToken(rawRefreshToken), refreshExpiry); err != nil {
		logger.Error("Failed to persist refresh token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}
	c.SetCookie(h.cfg.RefreshTokenCookieName, rawRefreshToken, int(h.cfg.RefreshTokenExpiryDuration.Seconds()), h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)

	logger.Info("User signed in via Google", slog.String("user_id", user.UserID))

	redirect := h.cfg.FrontendBaseURL + "/oauth/complete?" + url.Values{
		"token":  {accessToken},
		"userID": {user.UserID},
	}.Encode()
	c.Redirect(http.StatusTemporaryRedirect, redirect)
}

func (h *GoogleOAuthHandler) resolveUserInfo(c *gin.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error) {
	ctx := c.Request.Context()

	if idTokenString, ok := token.Extra("id_token").(string); ok && idTokenString != "" {
		payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idTokenString)
		if err != nil {
			return nil, fmt.Errorf("ID token validation failed: %w", err)
		}
		email, _ := payload.Claims["email"].(string)
		name, _ := payload.Claims["name"].(string)
		verified, _ := payload.Claims["email_verified"].(bool)
		picture, _ := payload.Claims["picture"].(string)
		if email == "" || payload.Subject == "" {
			return nil, fmt.Errorf("essential claims missing from Google ID token")
		}
		return &domain.GoogleUserInfo{
			ID:            payload.Subject,
			Email:         email,
			VerifiedEmail: verified,
			Name:          name,
			Picture:       picture,
		}, nil
	}

	return h.googleOAuthService.GetUserInfo(ctx, token)
}
