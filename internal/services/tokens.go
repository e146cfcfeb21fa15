package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"motocase/internal/models"
)

// SessionClaims are the identity claims embedded in a session token.
type SessionClaims struct {
	UserID      string  `json:"user_id"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	WorkspaceID *string `json:"workspace_id,omitempty"`
	jwt.RegisteredClaims
}

// Identity converts verified claims back into a models.Identity. Returns an
// error when the embedded ids are not valid UUIDs.
func (c *SessionClaims) Identity() (*models.Identity, error) {
	userID, err := uuid.Parse(c.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id in claims: %w", err)
	}

	var workspaceID *uuid.UUID
	if c.WorkspaceID != nil {
		wid, err := uuid.Parse(*c.WorkspaceID)
		if err != nil {
			return nil, fmt.Errorf("invalid workspace id in claims: %w", err)
		}
		workspaceID = &wid
	}

	return &models.Identity{
		UserID:      userID,
		Email:       c.Email,
		Role:        models.Role(c.Role),
		WorkspaceID: workspaceID,
	}, nil
}

// TokenService issues and verifies signed session tokens. It is the only
// component allowed to mint tokens; everything else merely verifies.
type TokenService interface {
	Issue(identity *models.Identity, ttl time.Duration) (string, error)
	// Verify checks signature and expiry. The boolean covers every failure
	// mode (bad signature, expired, malformed) so callers treat it uniformly
	// as "unauthenticated" rather than branching on error detail.
	Verify(token string) (*SessionClaims, bool)
}

type tokenService struct {
	secret []byte
}

func NewTokenService(secret string) TokenService {
	return &tokenService{secret: []byte(secret)}
}

func (s *tokenService) Issue(identity *models.Identity, ttl time.Duration) (string, error) {
	now := time.Now()

	var workspaceID *string
	if identity.WorkspaceID != nil {
		wid := identity.WorkspaceID.String()
		workspaceID = &wid
	}

	claims := SessionClaims{
		UserID:      identity.UserID.String(),
		Email:       identity.Email,
		Role:        string(identity.Role),
		WorkspaceID: workspaceID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "motocase",
			Subject:   identity.UserID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

func (s *tokenService) Verify(tokenString string) (*SessionClaims, bool) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, false
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, false
	}
	return claims, true
}
