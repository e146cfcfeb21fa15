package common

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"motocase/internal/models"
)

type contextKey string

const (
	// IdentityKey carries the resolved *models.Identity for the request.
	// Absent means the request is unauthenticated.
	IdentityKey contextKey = "identity"
)

// RuleError marks a failure the caller can fix: a validation rule or a
// business rule the request violated. Errors of any other type that reach
// the HTTP layer are treated as internal failures.
type RuleError struct {
	msg string
}

func (e *RuleError) Error() string { return e.msg }

// Rulef builds a RuleError from a format string.
func Rulef(format string, args ...any) error {
	return &RuleError{msg: fmt.Sprintf(format, args...)}
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendValidationError sends a validation error response
func SendValidationError(c echo.Context, field, message string) error {
	details := map[string]string{
		field: message,
	}
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("VALIDATION_ERROR", "Validation failed", details))
}

// SendClientError sends a client error response
func SendClientError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("CLIENT_ERROR", message, nil))
}

// SendServerError sends a server error response
func SendServerError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, CreateErrorResponse("SERVER_ERROR", message, nil))
}

// SendNotFoundError sends a not found error response
func SendNotFoundError(c echo.Context, resource string) error {
	return c.JSON(http.StatusNotFound, CreateErrorResponse("NOT_FOUND", fmt.Sprintf("%s not found", resource), nil))
}

// SendUnauthorizedError sends an unauthorized error response. The message is
// deliberately generic: callers must not reveal whether the credential was
// missing, expired, or malformed.
func SendUnauthorizedError(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, CreateErrorResponse("UNAUTHORIZED", "Authentication required", nil))
}

// SendForbiddenError sends a forbidden error response
func SendForbiddenError(c echo.Context) error {
	return c.JSON(http.StatusForbidden, CreateErrorResponse("FORBIDDEN", "Forbidden", nil))
}

// ValidateUUID validates UUID path and query parameters
func ValidateUUID(idStr string, fieldName string) (uuid.UUID, error) {
	idStr = strings.TrimSpace(idStr)
	if idStr == "" {
		return uuid.Nil, Rulef("%s is required", fieldName)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, Rulef("%s is not a valid UUID", fieldName)
	}

	return id, nil
}

// ValidateRequiredString validates required string fields
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return Rulef("%s is required", fieldName)
	}
	return nil
}

// ValidatePassword enforces the password-strength rules shared by every
// password-setting path: minimum 8 characters, at least one uppercase letter,
// one lowercase letter, and one digit or symbol. Each failed rule gets its
// own message so the client can tell the user exactly what to fix.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return Rulef("password must be at least 8 characters")
	}

	var hasUpper, hasLower, hasDigitOrSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r) || unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasDigitOrSymbol = true
		}
	}

	if !hasUpper {
		return Rulef("password must contain an uppercase letter")
	}
	if !hasLower {
		return Rulef("password must contain a lowercase letter")
	}
	if !hasDigitOrSymbol {
		return Rulef("password must contain a digit or symbol")
	}
	return nil
}

// ValidateCaseStatus validates case status values
func ValidateCaseStatus(status string) error {
	validStatuses := map[string]bool{
		"open": true, "in_progress": true, "closed": true,
	}
	if !validStatuses[status] {
		return Rulef("case status must be one of: open, in_progress, closed")
	}
	return nil
}

// ValidateInteractionKind validates interaction kinds
func ValidateInteractionKind(kind string) error {
	validKinds := map[string]bool{
		"note": true, "call": true, "email": true,
	}
	if !validKinds[kind] {
		return Rulef("interaction kind must be one of: note, call, email")
	}
	return nil
}

// ValidateRole validates user role values
func ValidateRole(role string) error {
	switch models.Role(role) {
	case models.RoleAdmin, models.RoleDeveloper, models.RoleWorkspaceUser,
		models.RoleRentalCompany, models.RoleLawyer:
		return nil
	}
	return Rulef("role must be one of: admin, developer, workspace_user, rental_company, lawyer")
}

// SafeString safely handles string pointer operations
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GetIdentityFromContext extracts the resolved identity from the request
// context. A false return is the canonical "not logged in" signal.
func GetIdentityFromContext(ctx context.Context) (*models.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(*models.Identity)
	if !ok || identity == nil {
		return nil, false
	}
	return identity, true
}

// WithIdentity returns a context carrying the resolved identity.
func WithIdentity(ctx context.Context, identity *models.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}
