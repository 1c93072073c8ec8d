package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/spliteasy/spliteasy/internal/core/ports/services"
	"github.com/spliteasy/spliteasy/internal/middleware"
	"github.com/spliteasy/spliteasy/internal/platform/config"
)

const oauthStateCookieName = "oauth_state"

// googleOAuthHandler handles the Google OAuth login flow.
type googleOAuthHandler struct {
	cfg          *config.Config
	oauthService portssvc.GoogleOAuthSvcFacade
	userService  portssvc.UserSvcFacade
	authHandler  *authHandler
}

func registerGoogleOAuthRoutes(auth *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := &googleOAuthHandler{
		cfg:          cfg,
		oauthService: services.GoogleOAuth,
		userService:  services.User,
		authHandler:  newAuthHandler(cfg, services.User, services.Token),
	}

	google := auth.Group("/google")
	{
		google.GET("/login", h.loginGoogle)
		google.GET("/callback", h.callbackGoogle)
	}
}

// loginGoogle godoc
// @Summary Start Google login
// @Description Redirects the browser to the Google consent screen.
// @Tags auth
// @Success 307
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/login [get]
func (h *googleOAuthHandler) loginGoogle(c *gin.Context) {
	state, err := h.oauthService.GenerateStateString(c.Request.Context())
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to generate oauth state", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to start Google login"})
		return
	}

	// Short-lived state cookie closes the CSRF window on the callback.
	c.SetCookie(oauthStateCookieName, state, 600, "/api/v1/auth/google", "", h.cfg.IsProduction, true)
	c.Redirect(http.StatusTemporaryRedirect, h.oauthService.GetGoogleLoginURL(c.Request.Context(), state))
}

// callbackGoogle godoc
// @Summary Google login callback
// @Description Exchanges the authorization code, resolves the local user and
// @Description issues a token pair.
// @Tags auth
// @Produce json
// @Param state query string true "CSRF state"
// @Param code query string true "Authorization code"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/callback [get]
func (h *googleOAuthHandler) callbackGoogle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	expectedState, err := c.Cookie(oauthStateCookieName)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid oauth state"})
		return
	}
	c.SetCookie(oauthStateCookieName, "", -1, "/api/v1/auth/google", "", h.cfg.IsProduction, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Authorization code missing"})
		return
	}

	token, err := h.oauthService.ExchangeCodeForToken(c.Request.Context(), code)
	if err != nil {
		logger.Error("Failed to exchange oauth code", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to complete Google login"})
		return
	}

	info, err := h.oauthService.GetUserInfo(c.Request.Context(), token)
	if err != nil {
		logger.Error("Failed to fetch google user info", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to complete Google login"})
		return
	}

	user, err := h.userService.FindOrCreateGoogleUser(c.Request.Context(), info)
	if err != nil {
		logger.Error("Failed to resolve google user", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to complete Google login"})
		return
	}

	h.authHandler.issueTokens(c, user, http.StatusOK)
}
