package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motocase/internal/common"
	"motocase/internal/middleware"
	"motocase/internal/models"
	"motocase/internal/services"
)

// stubAuthService returns canned results so the handler's cookie and status
// behavior can be asserted in isolation.
type stubAuthService struct {
	loginResult  *services.LoginResult
	loginErr     error
	changeResult *services.LoginResult
	changeTTL    time.Duration
	changeErr    error
}

func (s *stubAuthService) Login(context.Context, string, string, bool) (*services.LoginResult, error) {
	return s.loginResult, s.loginErr
}

func (s *stubAuthService) ChangePassword(context.Context, *models.Identity, string) (string, time.Duration, error) {
	if s.changeErr != nil {
		return "", 0, s.changeErr
	}
	return "reissued-token", s.changeTTL, nil
}

func (s *stubAuthService) ChangePasswordFirstLogin(context.Context, string, string) (*services.LoginResult, error) {
	return s.changeResult, s.changeErr
}

func (s *stubAuthService) CompleteOnboarding(context.Context, *models.Identity) error {
	return nil
}

func cookieByName(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	res := http.Response{Header: rec.Header()}
	for _, cookie := range res.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func postJSON(t *testing.T, handler echo.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	return rec
}

func TestLoginSetsSessionCookie(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "rider@example.com", Role: models.RoleWorkspaceUser, Status: models.UserStatusActive}
	h := NewAuthHandlers(&stubAuthService{
		loginResult: &services.LoginResult{User: user, Token: "signed-token", TokenTTL: 12 * time.Hour},
	}, nil, "http://localhost:3000")

	rec := postJSON(t, h.Login, "/v1/auth/login", `{"email":"rider@example.com","password":"Valid1Pass"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	cookie := cookieByName(rec, middleware.SessionCookieName)
	require.NotNil(t, cookie)
	assert.Equal(t, "signed-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, int((12 * time.Hour).Seconds()), cookie.MaxAge)

	// no first login, no legacy cookie
	assert.Nil(t, cookieByName(rec, middleware.LegacyIdentityCookieName))
}

func TestLoginFirstLoginSetsLegacyCookieAndToken(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "new@example.com", Role: models.RoleWorkspaceUser, Status: models.UserStatusActive, FirstLogin: true}
	h := NewAuthHandlers(&stubAuthService{
		loginResult: &services.LoginResult{
			User: user, Token: "signed-token", TokenTTL: 12 * time.Hour,
			FirstLogin: true, FirstLoginToken: "opaque-first-login-token",
		},
	}, nil, "http://localhost:3000")

	rec := postJSON(t, h.Login, "/v1/auth/login", `{"email":"new@example.com","password":"TempPass1"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.FirstLogin)
	assert.Equal(t, "opaque-first-login-token", resp.FirstLoginToken)

	require.NotNil(t, cookieByName(rec, middleware.SessionCookieName))
	require.NotNil(t, cookieByName(rec, middleware.LegacyIdentityCookieName))
}

func TestLoginFailureIsGeneric401(t *testing.T) {
	h := NewAuthHandlers(&stubAuthService{loginErr: services.ErrInvalidCredentials}, nil, "http://localhost:3000")

	rec := postJSON(t, h.Login, "/v1/auth/login", `{"email":"rider@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp common.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Authentication required", resp.Error.Message)
	assert.NotContains(t, rec.Body.String(), "credentials")
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestLoginRateLimited(t *testing.T) {
	h := NewAuthHandlers(&stubAuthService{loginErr: services.ErrLoginRateLimited}, nil, "http://localhost:3000")

	rec := httptest.NewRecorder()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(`{"email":"a@b.c","password":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	err := h.Login(e.NewContext(req, rec))
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusTooManyRequests, httpErr.Code)
}

func TestChangePasswordFirstLoginPath(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "new@example.com", Role: models.RoleWorkspaceUser, Status: models.UserStatusActive}
	h := NewAuthHandlers(&stubAuthService{
		changeResult: &services.LoginResult{User: user, Token: "fresh-token", TokenTTL: 12 * time.Hour},
	}, nil, "http://localhost:3000")

	rec := postJSON(t, h.ChangePassword, "/v1/auth/change-password",
		`{"new_password":"NewValid1Pass","first_login_token":"opaque-token"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	session := cookieByName(rec, middleware.SessionCookieName)
	require.NotNil(t, session)
	assert.Equal(t, "fresh-token", session.Value)

	// legacy cookie is cleared once the password is set
	legacy := cookieByName(rec, middleware.LegacyIdentityCookieName)
	require.NotNil(t, legacy)
	assert.Equal(t, -1, legacy.MaxAge)
}

func TestChangePasswordReissuesConfiguredTTL(t *testing.T) {
	h := NewAuthHandlers(&stubAuthService{changeTTL: 168 * time.Hour}, nil, "http://localhost:3000")

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/change-password", strings.NewReader(`{"new_password":"NewValid1Pass"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	identity := &models.Identity{UserID: uuid.New(), Email: "rider@example.com", Role: models.RoleWorkspaceUser}
	req = req.WithContext(common.WithIdentity(req.Context(), identity))
	rec := httptest.NewRecorder()
	require.NoError(t, h.ChangePassword(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	// the reissued cookie carries the configured session TTL
	session := cookieByName(rec, middleware.SessionCookieName)
	require.NotNil(t, session)
	assert.Equal(t, "reissued-token", session.Value)
	assert.Equal(t, int((168 * time.Hour).Seconds()), session.MaxAge)
}

func TestChangePasswordFirstLoginReplayIs401(t *testing.T) {
	h := NewAuthHandlers(&stubAuthService{changeErr: services.ErrFirstLoginReplay}, nil, "http://localhost:3000")

	rec := postJSON(t, h.ChangePassword, "/v1/auth/change-password",
		`{"new_password":"NewValid1Pass","first_login_token":"stale-token"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionEndpointNeverErrors(t *testing.T) {
	h := NewAuthHandlers(&stubAuthService{}, nil, "http://localhost:3000")
	e := echo.New()

	// anonymous caller: null user, 200
	req := httptest.NewRequest(http.MethodGet, "/v1/auth/session", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Session(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user":null}`, rec.Body.String())

	// authenticated caller: identity payload
	identity := &models.Identity{UserID: uuid.New(), Email: "rider@example.com", Role: models.RoleWorkspaceUser}
	req = httptest.NewRequest(http.MethodGet, "/v1/auth/session", nil)
	req = req.WithContext(common.WithIdentity(req.Context(), identity))
	rec = httptest.NewRecorder()
	require.NoError(t, h.Session(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "rider@example.com")
}

func TestLogoutClearsCookies(t *testing.T) {
	h := NewAuthHandlers(&stubAuthService{}, nil, "http://localhost:3000")
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Logout(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	session := cookieByName(rec, middleware.SessionCookieName)
	require.NotNil(t, session)
	assert.Equal(t, -1, session.MaxAge)
	assert.Empty(t, session.Value)
}
