package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"motocase/internal/common"
	"motocase/internal/services"
)

// UserHandlers covers account administration: provisioning, role changes,
// and credential-distribution tracking.
type UserHandlers struct {
	userService services.UserService
}

func NewUserHandlers(userService services.UserService) *UserHandlers {
	return &UserHandlers{userService: userService}
}

// CreateUser provisions an account with a generated temporary password. The
// password appears in this response exactly once.
func (h *UserHandlers) CreateUser(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req services.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	result, err := h.userService.Create(c.Request().Context(), identity, &req)
	if err != nil {
		return serviceError(c, err, "user")
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *UserHandlers) GetUser(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "user ID")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	user, err := h.userService.GetByID(c.Request().Context(), identity, id)
	if err != nil {
		return serviceError(c, err, "user")
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandlers) UpdateUser(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "user ID")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req services.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	req.ID = id

	if err := h.userService.Update(c.Request().Context(), identity, &req); err != nil {
		return serviceError(c, err, "user")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "User updated"})
}

func (h *UserHandlers) DeleteUser(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "user ID")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.userService.Delete(c.Request().Context(), identity, id); err != nil {
		return serviceError(c, err, "user")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "User deleted"})
}

func (h *UserHandlers) ListUsers(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	workspaceID, err := optionalWorkspaceParam(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	limit, offset := paginationParams(c)

	users, err := h.userService.List(c.Request().Context(), identity, workspaceID, limit, offset)
	if err != nil {
		return serviceError(c, err, "users")
	}
	return c.JSON(http.StatusOK, map[string]any{"users": users})
}

// ConfirmDistribution marks a credential-distribution record as handed over.
func (h *UserHandlers) ConfirmDistribution(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	userID, err := common.ValidateUUID(c.Param("id"), "user ID")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	distributionID, err := common.ValidateUUID(c.Param("did"), "distribution ID")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.userService.ConfirmDistribution(c.Request().Context(), identity, userID, distributionID); err != nil {
		return serviceError(c, err, "distribution record")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Distribution confirmed"})
}

func (h *UserHandlers) ListDistributions(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	userID, err := common.ValidateUUID(c.Param("id"), "user ID")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	records, err := h.userService.ListDistributions(c.Request().Context(), identity, userID)
	if err != nil {
		return serviceError(c, err, "distribution records")
	}
	return c.JSON(http.StatusOK, map[string]any{"distributions": records})
}
