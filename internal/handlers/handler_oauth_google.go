package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/innlodge/lodgebook_app/internal/apperrors"
	"github.com/innlodge/lodgebook_app/internal/core/domain"
	portssvc "github.com/innlodge/lodgebook_app/internal/core/ports/services"
	"github.com/innlodge/lodgebook_app/internal/dto"
	"github.com/innlodge/lodgebook_app/internal/middleware"
	"github.com/innlodge/lodgebook_app/internal/platform/config"
)

// oauthStateCookie round-trips the CSRF state between the login redirect and
// the callback. The state is single-use and short-lived.
const (
	oauthStateCookie     = "oauth_state"
	oauthStateCookiePath = "/api/v1/auth/google"
	oauthStateMaxAge     = 600
)

// GoogleOAuthHandler serves both Google sign-in flows: the redirect flow for
// plain browser navigation and the code-exchange flow for the SPA, which
// receives the authorization code on its own redirect URI.
type GoogleOAuthHandler struct {
	oauthService portssvc.GoogleOAuthHandlerSvcFacade
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
	cfg          *config.Config
}

// NewGoogleOAuthHandler creates a new GoogleOAuthHandler.
func NewGoogleOAuthHandler(
	os portssvc.GoogleOAuthHandlerSvcFacade,
	us portssvc.UserSvcFacade,
	ts portssvc.TokenSvcFacade,
	cfg *config.Config,
) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		oauthService: os,
		userService:  us,
		tokenService: ts,
		cfg:          cfg,
	}
}

// RegisterGoogleOAuthRoutes sets up the Google sign-in routes. All of them run
// before the client holds a bearer token, so the group carries no auth
// middleware.
func RegisterGoogleOAuthRoutes(rg *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewGoogleOAuthHandler(services.GoogleOAuthHandler, services.User, services.TokenService, cfg)

	google := rg.Group("/google")
	{
		google.GET("", h.LoginGoogle)
		google.GET("/callback", h.CallbackGoogle)
		google.POST("/exchange-code", h.ExchangeCodeGoogle)
	}
}

// LoginGoogle godoc
// @Summary Start Google login
// @Description Redirects the browser to Google's consent screen. The CSRF state is stored in a short-lived cookie and checked on the callback.
// @Tags oauth
// @Success 307 "Redirect to Google"
// @Failure 500 {object} ErrorResponse
// @Router /auth/google [get]
func (h *GoogleOAuthHandler) LoginGoogle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	state, err := h.oauthService.GenerateStateString(c.Request.Context())
	if err != nil {
		logger.Error("Failed to generate OAuth state", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to start Google login"})
		return
	}

	c.SetCookie(oauthStateCookie, state, oauthStateMaxAge, oauthStateCookiePath, "", h.cfg.IsProduction, true)
	c.Redirect(http.StatusTemporaryRedirect, h.oauthService.GetGoogleLoginURL(c.Request.Context(), state))
}

// CallbackGoogle godoc
// @Summary Google login callback
// @Description Completes the redirect flow: verifies the CSRF state, exchanges the authorization code, provisions the account and hands the access token to the frontend via redirect.
// @Tags oauth
// @Param state query string true "CSRF state from the login redirect"
// @Param code query string true "Authorization code"
// @Success 302 "Redirect to the frontend with the access token"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /auth/google/callback [get]
func (h *GoogleOAuthHandler) CallbackGoogle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	storedState, cookieErr := c.Cookie(oauthStateCookie)
	// The state is spent either way.
	c.SetCookie(oauthStateCookie, "", -1, oauthStateCookiePath, "", h.cfg.IsProduction, true)

	state := c.Query("state")
	if cookieErr != nil || state == "" || state != storedState {
		logger.Warn("Google callback with missing or mismatched state")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid OAuth state"})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Authorization code missing"})
		return
	}

	token, err := h.oauthService.ExchangeCodeForToken(c.Request.Context(), code)
	if err != nil {
		logger.Error("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Google did not accept the authorization code"})
		return
	}

	info, err := h.oauthService.GetUserInfo(c.Request.Context(), token)
	if err != nil {
		logger.Error("Failed to fetch Google user info", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Failed to fetch account details from Google"})
		return
	}
	if info.Email == "" || info.ID == "" {
		logger.Error("Google user info missing email or subject")
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Google account details are incomplete"})
		return
	}

	accessToken, ok := h.signInGoogleUser(c, logger, info.Name, info.Email, info.ID, info.VerifiedEmail)
	if !ok {
		return
	}

	c.Redirect(http.StatusFound, h.cfg.FrontendBaseURL+"/login?token="+url.QueryEscape(accessToken))
}

// ExchangeCodeGoogle godoc
// @Summary Exchange authorization code for access token
// @Description SPA variant of the Google login: the frontend received the authorization code on its own redirect URI and posts it here for an application access token.
// @Tags oauth
// @Accept json
// @Produce json
// @Param code body dto.GoogleExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /auth/google/exchange-code [post]
func (h *GoogleOAuthHandler) ExchangeCodeGoogle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.GoogleExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	token, err := h.oauthService.ExchangeCodeForToken(c.Request.Context(), req.Code)
	if err != nil {
		logger.Error("Failed to exchange authorization code with Google", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid or expired authorization code"})
		return
	}

	idTokenString, ok := token.Extra("id_token").(string)
	if !ok || idTokenString == "" {
		logger.Error("ID token missing from Google's token response")
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Google response did not include an ID token"})
		return
	}

	payload, err := h.oauthService.ValidateGoogleIDToken(c.Request.Context(), idTokenString)
	if err != nil {
		logger.Warn("Google ID token rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid Google ID token"})
		return
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	emailVerified, _ := payload.Claims["email_verified"].(bool)

	if email == "" || payload.Subject == "" {
		logger.Error("Essential claims missing from Google ID token", slog.String("google_user_id", payload.Subject))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "Google token is missing required account details"})
		return
	}

	accessToken, ok := h.signInGoogleUser(c, logger, name, email, payload.Subject, emailVerified)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Token: accessToken})
}

// signInGoogleUser provisions (or links) the account behind a verified Google
// identity and issues an application access token. On failure it writes the
// error response and returns ok=false.
func (h *GoogleOAuthHandler) signInGoogleUser(c *gin.Context, logger *slog.Logger, name, email, providerUserID string, emailVerified bool) (string, bool) {
	ctx := c.Request.Context()

	user, err := h.userService.CreateOAuthUser(ctx, name, email, string(domain.ProviderGoogle), providerUserID, emailVerified)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Google identity conflicts with an existing account", slog.String("email", email))
			c.JSON(http.StatusConflict, ErrorResponse{Error: "An account with this email already exists"})
			return "", false
		}
		logger.Error("Failed to create or link Google user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to sign in with Google"})
		return "", false
	}

	accessToken, _, err := h.tokenService.GenerateAccessToken(ctx, user)
	if err != nil {
		logger.Error("Failed to generate access token",
			slog.String("user_id", user.UserID),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to sign in with Google"})
		return "", false
	}

	logger.Info("User signed in with Google", slog.String("user_id", user.UserID))
	return accessToken, true
}
