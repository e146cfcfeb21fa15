package middleware

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"motocase/internal/common"
	"motocase/internal/models"
	"motocase/internal/repositories"
	"motocase/internal/services"
)

const (
	// SessionCookieName carries the signed session token.
	SessionCookieName = "mc_session"

	// LegacyIdentityCookieName is the deprecated plain-JSON identity cookie.
	// It is honored only while the account still has first_login set, so
	// freshly provisioned accounts on the old client can reach the
	// change-password endpoint. Once first_login clears it is dead weight.
	LegacyIdentityCookieName = "mc_identity"
)

type legacyIdentityCookie struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// SessionResolver extracts the caller's identity from the request and puts it
// in the request context. It never rejects a request itself; routes that need
// authentication layer RequireSession on top.
type SessionResolver struct {
	tokenSvc services.TokenService
	userRepo repositories.UserRepository
}

func NewSessionResolver(tokenSvc services.TokenService, userRepo repositories.UserRepository) *SessionResolver {
	return &SessionResolver{tokenSvc: tokenSvc, userRepo: userRepo}
}

// Resolve is the identity-loading middleware. Precedence: signed session
// cookie, then Authorization bearer token, then the legacy identity cookie.
func (r *SessionResolver) Resolve(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if identity := r.resolveIdentity(c); identity != nil {
			ctx := common.WithIdentity(c.Request().Context(), identity)
			c.SetRequest(c.Request().WithContext(ctx))
		}
		return next(c)
	}
}

func (r *SessionResolver) resolveIdentity(c echo.Context) *models.Identity {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if identity := r.identityFromToken(c, cookie.Value); identity != nil {
			return identity
		}
	}

	if auth := c.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(auth, "Bearer ") {
		if identity := r.identityFromToken(c, strings.TrimPrefix(auth, "Bearer ")); identity != nil {
			return identity
		}
	}

	return r.identityFromLegacyCookie(c)
}

// identityFromToken verifies the token and re-confirms the account against
// the database. A token for a deactivated or deleted account is worthless no
// matter how valid its signature is.
func (r *SessionResolver) identityFromToken(c echo.Context, token string) *models.Identity {
	claims, ok := r.tokenSvc.Verify(token)
	if !ok {
		return nil
	}
	identity, err := claims.Identity()
	if err != nil {
		return nil
	}

	user, err := r.userRepo.GetByID(c.Request().Context(), identity.UserID)
	if err != nil || user == nil || user.Status != models.UserStatusActive {
		return nil
	}

	// Role and workspace binding come from the live row, not the token, so
	// reassignments take effect without waiting for the token to expire.
	identity.Role = user.Role
	identity.WorkspaceID = user.WorkspaceID
	identity.FirstLogin = user.FirstLogin
	return identity
}

// identityFromLegacyCookie accepts the old unsigned JSON cookie, but only for
// accounts still in the first-login state. The cookie proves nothing by
// itself, so it is trusted exactly as far as the relaxed first-login flow
// would have allowed anyway.
func (r *SessionResolver) identityFromLegacyCookie(c echo.Context) *models.Identity {
	cookie, err := c.Cookie(LegacyIdentityCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	// Old clients stored the JSON payload URL-encoded.
	raw, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return nil
	}

	var legacy legacyIdentityCookie
	if err := json.Unmarshal([]byte(raw), &legacy); err != nil {
		return nil
	}

	userID, err := common.ValidateUUID(legacy.UserID, "user ID")
	if err != nil {
		return nil
	}

	user, err := r.userRepo.GetByID(c.Request().Context(), userID)
	if err != nil || user == nil {
		return nil
	}
	if user.Status != models.UserStatusActive || !user.FirstLogin {
		return nil
	}
	if !strings.EqualFold(user.Email, legacy.Email) {
		log.Warn().Str("user_id", user.ID.String()).Msg("legacy identity cookie email mismatch")
		return nil
	}

	return &models.Identity{
		UserID:      user.ID,
		Email:       user.Email,
		Role:        user.Role,
		WorkspaceID: user.WorkspaceID,
		FirstLogin:  user.FirstLogin,
	}
}
