package handlers

import (
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"motocase/internal/common"
	"motocase/internal/models"
	"motocase/internal/services"
)

// serviceError maps service-layer failures onto the HTTP error taxonomy:
// authentication failures are a generic 401, authorization failures a 403,
// missing rows a 404, and rule violations a 400 with the rule that failed.
// Anything else is an internal failure: the detail goes to the log, the
// client gets a generic 500.
func serviceError(c echo.Context, err error, resource string) error {
	var ruleErr *common.RuleError
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		return common.SendUnauthorizedError(c)
	case errors.Is(err, services.ErrForbidden):
		return common.SendForbiddenError(c)
	case errors.Is(err, pgx.ErrNoRows):
		return common.SendNotFoundError(c, resource)
	case errors.As(err, &ruleErr):
		return common.SendClientError(c, ruleErr.Error())
	default:
		log.Error().Err(err).Str("resource", resource).Msg("unhandled service error")
		return common.SendServerError(c, "Internal server error")
	}
}

// identityFromRequest pulls the caller's identity out of the request context.
// Routes behind the session guard always have one; the bool covers misuse.
func identityFromRequest(c echo.Context) (*models.Identity, bool) {
	return common.GetIdentityFromContext(c.Request().Context())
}

// optionalWorkspaceParam parses the workspace_id query parameter. Absent
// means "no explicit filter": superusers get the all-workspace view and
// everyone else is pinned to their own workspace by the scoping layer.
func optionalWorkspaceParam(c echo.Context) (*uuid.UUID, error) {
	raw := c.QueryParam("workspace_id")
	if raw == "" {
		return nil, nil
	}
	id, err := common.ValidateUUID(raw, "workspace ID")
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// paginationParams parses limit/offset with sane defaults and a hard cap.
func paginationParams(c echo.Context) (limit, offset int) {
	limit = 50
	offset = 0
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 && v <= 200 {
		limit = v
	}
	if v, err := strconv.Atoi(c.QueryParam("offset")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}
