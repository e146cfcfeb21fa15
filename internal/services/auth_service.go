package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"motocase/internal/caching"
	"motocase/internal/common"
	"motocase/internal/models"
	"motocase/internal/repositories"
)

// Login failure modes. All of them surface to the client as the same generic
// 401; the distinctions exist for internal flow control only.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLoginRateLimited   = errors.New("too many login attempts")

	// ErrFirstLoginReplay marks an attempt to reuse the relaxed first-login
	// password path after the account already completed it.
	ErrFirstLoginReplay = errors.New("first login already completed")

	ErrInvalidFirstLoginSession = errors.New("invalid first-login session")
)

const (
	loginRateLimit       = 10
	loginRateLimitWindow = 15 * time.Minute
)

// LoginResult is everything the HTTP layer needs to establish a session.
type LoginResult struct {
	User            *models.User
	Token           string
	TokenTTL        time.Duration
	FirstLogin      bool
	FirstLoginToken string
}

// AuthService orchestrates login, password changes, and the first-login
// onboarding state machine.
type AuthService interface {
	Login(ctx context.Context, email, password string, remember bool) (*LoginResult, error)
	ChangePassword(ctx context.Context, identity *models.Identity, newPassword string) (string, time.Duration, error)
	ChangePasswordFirstLogin(ctx context.Context, firstLoginToken, newPassword string) (*LoginResult, error)
	CompleteOnboarding(ctx context.Context, identity *models.Identity) error
}

type authService struct {
	userRepo             repositories.UserRepository
	credentialSvc        CredentialService
	tokenSvc             TokenService
	cacheSvc             caching.CacheService
	sessionTTL           time.Duration
	sessionRememberTTL   time.Duration
	firstLoginSessionTTL time.Duration
}

func NewAuthService(
	userRepo repositories.UserRepository,
	credentialSvc CredentialService,
	tokenSvc TokenService,
	cacheSvc caching.CacheService,
	sessionTTL, sessionRememberTTL, firstLoginSessionTTL time.Duration,
) AuthService {
	return &authService{
		userRepo:             userRepo,
		credentialSvc:        credentialSvc,
		tokenSvc:             tokenSvc,
		cacheSvc:             cacheSvc,
		sessionTTL:           sessionTTL,
		sessionRememberTTL:   sessionRememberTTL,
		firstLoginSessionTTL: firstLoginSessionTTL,
	}
}

func identityForUser(user *models.User) *models.Identity {
	return &models.Identity{
		UserID:      user.ID,
		Email:       user.Email,
		Role:        user.Role,
		WorkspaceID: user.WorkspaceID,
		FirstLogin:  user.FirstLogin,
	}
}

func (s *authService) Login(ctx context.Context, email, password string, remember bool) (*LoginResult, error) {
	limited, err := s.cacheSvc.IsRateLimited(ctx, "login:"+email, loginRateLimit, loginRateLimitWindow)
	if err != nil {
		// Rate limiting is best effort; a cache outage must not lock
		// everyone out.
		log.Warn().Err(err).Msg("login rate limit check failed")
	} else if limited {
		return nil, ErrLoginRateLimited
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, ErrInvalidCredentials
	}
	if user.Status != models.UserStatusActive {
		return nil, ErrInvalidCredentials
	}
	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if !s.credentialSvc.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if err := s.userRepo.RecordLogin(ctx, user.ID); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("failed to record login timestamp")
	}

	ttl := s.sessionTTL
	if remember {
		ttl = s.sessionRememberTTL
	}

	token, err := s.tokenSvc.Issue(identityForUser(user), ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	result := &LoginResult{
		User:       user,
		Token:      token,
		TokenTTL:   ttl,
		FirstLogin: user.FirstLogin,
	}

	// Accounts that have never set their own password get a short-lived
	// possession token for the relaxed password-change path.
	if user.FirstLogin {
		firstLoginToken, err := generateOpaqueToken()
		if err != nil {
			return nil, err
		}
		if err := s.cacheSvc.SetFirstLoginSession(ctx, firstLoginToken, user.ID, s.firstLoginSessionTTL); err != nil {
			return nil, fmt.Errorf("failed to store first-login session: %w", err)
		}
		result.FirstLoginToken = firstLoginToken
	}

	return result, nil
}

func (s *authService) ChangePassword(ctx context.Context, identity *models.Identity, newPassword string) (string, time.Duration, error) {
	if err := RequireAuthenticated(identity); err != nil {
		return "", 0, err
	}
	if err := common.ValidatePassword(newPassword); err != nil {
		return "", 0, err
	}

	hash, err := s.credentialSvc.HashPassword(newPassword)
	if err != nil {
		return "", 0, err
	}

	if err := s.userRepo.UpdatePassword(ctx, identity.UserID, hash, false); err != nil {
		return "", 0, fmt.Errorf("failed to update password: %w", err)
	}

	// Reissue the session so the cookie outlives the change.
	token, err := s.tokenSvc.Issue(identity, s.sessionTTL)
	if err != nil {
		return "", 0, err
	}
	return token, s.sessionTTL, nil
}

// ChangePasswordFirstLogin is the relaxed path: identity is established from
// the possession of a first-login session token rather than a full session.
// Password-strength rules are identical to the normal path, and the path
// works exactly once: after first_login is cleared, a stale session token
// can no longer reset the password.
func (s *authService) ChangePasswordFirstLogin(ctx context.Context, firstLoginToken, newPassword string) (*LoginResult, error) {
	if firstLoginToken == "" {
		return nil, ErrInvalidFirstLoginSession
	}

	userID, err := s.cacheSvc.GetFirstLoginSession(ctx, firstLoginToken)
	if err != nil {
		return nil, fmt.Errorf("failed to look up first-login session: %w", err)
	}
	if userID == uuid.Nil {
		return nil, ErrInvalidFirstLoginSession
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || user == nil {
		return nil, ErrInvalidFirstLoginSession
	}
	if user.Status != models.UserStatusActive {
		return nil, ErrInvalidFirstLoginSession
	}
	if !user.FirstLogin {
		return nil, ErrFirstLoginReplay
	}

	if err := common.ValidatePassword(newPassword); err != nil {
		return nil, err
	}

	hash, err := s.credentialSvc.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hash, false); err != nil {
		return nil, fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.cacheSvc.DeleteFirstLoginSession(ctx, firstLoginToken); err != nil {
		log.Warn().Err(err).Msg("failed to delete first-login session")
	}

	user.FirstLogin = false
	token, err := s.tokenSvc.Issue(identityForUser(user), s.sessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	return &LoginResult{
		User:     user,
		Token:    token,
		TokenTTL: s.sessionTTL,
	}, nil
}

// CompleteOnboarding flips the onboarding flag. It never gates access; the
// flag only drives UI presentation.
func (s *authService) CompleteOnboarding(ctx context.Context, identity *models.Identity) error {
	if err := RequireAuthenticated(identity); err != nil {
		return err
	}
	return s.userRepo.CompleteOnboarding(ctx, identity.UserID)
}

func generateOpaqueToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}
