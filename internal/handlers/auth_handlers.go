package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"motocase/internal/common"
	"motocase/internal/middleware"
	"motocase/internal/models"
	"motocase/internal/services"
)

// AuthHandlers exposes login, password management, and session inspection.
type AuthHandlers struct {
	authService   services.AuthService
	userService   services.UserService
	secureCookies bool
}

func NewAuthHandlers(authService services.AuthService, userService services.UserService, appBaseURL string) *AuthHandlers {
	return &AuthHandlers{
		authService:   authService,
		userService:   userService,
		secureCookies: strings.HasPrefix(appBaseURL, "https://"),
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

type LoginResponse struct {
	User            *models.User `json:"user"`
	FirstLogin      bool         `json:"first_login"`
	FirstLoginToken string       `json:"first_login_token,omitempty"`
}

// Login authenticates with email and password and establishes the session
// cookie. Every failure mode maps to the same generic 401.
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if req.Email == "" || req.Password == "" {
		return common.SendClientError(c, "Email and password are required")
	}

	result, err := h.authService.Login(ctx, req.Email, req.Password, req.Remember)
	if err != nil {
		if errors.Is(err, services.ErrLoginRateLimited) {
			return echo.NewHTTPError(http.StatusTooManyRequests, "Too many login attempts, try again later")
		}
		log.Debug().Err(err).Msg("login rejected")
		return common.SendUnauthorizedError(c)
	}

	h.setSessionCookie(c, result.Token, result.TokenTTL)
	if result.FirstLogin {
		// Transitional cookie for old clients that drive the first-login
		// password change from the identity cookie.
		h.setLegacyIdentityCookie(c, result.User)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		User:            result.User,
		FirstLogin:      result.FirstLogin,
		FirstLoginToken: result.FirstLoginToken,
	})
}

type ChangePasswordRequest struct {
	NewPassword     string `json:"new_password"`
	FirstLoginToken string `json:"first_login_token,omitempty"`
}

// ChangePassword handles both password-change paths. With a first-login token
// it runs the relaxed possession-based flow; otherwise it requires an
// authenticated session.
func (h *AuthHandlers) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if req.FirstLoginToken != "" {
		result, err := h.authService.ChangePasswordFirstLogin(ctx, req.FirstLoginToken, req.NewPassword)
		if err != nil {
			if errors.Is(err, services.ErrInvalidFirstLoginSession) || errors.Is(err, services.ErrFirstLoginReplay) {
				return common.SendUnauthorizedError(c)
			}
			return serviceError(c, err, "user")
		}
		h.setSessionCookie(c, result.Token, result.TokenTTL)
		h.clearLegacyIdentityCookie(c)
		return c.JSON(http.StatusOK, LoginResponse{User: result.User})
	}

	identity, ok := common.GetIdentityFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	token, ttl, err := h.authService.ChangePassword(ctx, identity, req.NewPassword)
	if err != nil {
		return serviceError(c, err, "user")
	}

	h.setSessionCookie(c, token, ttl)
	h.clearLegacyIdentityCookie(c)
	return c.JSON(http.StatusOK, map[string]string{"message": "Password updated"})
}

// Session reports the current identity. It never errors; an anonymous caller
// gets a null user.
func (h *AuthHandlers) Session(c echo.Context) error {
	identity, ok := common.GetIdentityFromContext(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusOK, map[string]any{"user": nil})
	}
	return c.JSON(http.StatusOK, map[string]any{"user": identity})
}

// Me returns the full user row for the caller.
func (h *AuthHandlers) Me(c echo.Context) error {
	ctx := c.Request().Context()
	identity, ok := common.GetIdentityFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	user, err := h.userService.GetByID(ctx, identity, identity.UserID)
	if err != nil {
		return common.SendServerError(c, "Failed to load user")
	}
	return c.JSON(http.StatusOK, user)
}

// Logout clears the session cookies. Tokens are not revoked server-side;
// they simply age out.
func (h *AuthHandlers) Logout(c echo.Context) error {
	h.clearSessionCookie(c)
	h.clearLegacyIdentityCookie(c)
	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out"})
}

// CompleteOnboarding flips the onboarding flag for the caller.
func (h *AuthHandlers) CompleteOnboarding(c echo.Context) error {
	ctx := c.Request().Context()
	identity, ok := common.GetIdentityFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	if err := h.authService.CompleteOnboarding(ctx, identity); err != nil {
		return common.SendServerError(c, "Failed to complete onboarding")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Onboarding completed"})
}

func (h *AuthHandlers) setSessionCookie(c echo.Context, token string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandlers) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandlers) setLegacyIdentityCookie(c echo.Context, user *models.User) {
	payload := url.QueryEscape(`{"user_id":"` + user.ID.String() + `","email":"` + user.Email + `"}`)
	c.SetCookie(&http.Cookie{
		Name:     middleware.LegacyIdentityCookieName,
		Value:    payload,
		Path:     "/",
		MaxAge:   int((30 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandlers) clearLegacyIdentityCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.LegacyIdentityCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
