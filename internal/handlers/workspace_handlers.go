package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"motocase/internal/common"
	"motocase/internal/services"
)

type WorkspaceHandlers struct {
	workspaceService services.WorkspaceService
}

func NewWorkspaceHandlers(workspaceService services.WorkspaceService) *WorkspaceHandlers {
	return &WorkspaceHandlers{workspaceService: workspaceService}
}

func (h *WorkspaceHandlers) CreateWorkspace(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req services.CreateWorkspaceRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	workspace, err := h.workspaceService.Create(c.Request().Context(), identity, &req)
	if err != nil {
		return serviceError(c, err, "workspace")
	}
	return c.JSON(http.StatusCreated, workspace)
}

func (h *WorkspaceHandlers) GetWorkspace(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "workspace ID")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	workspace, err := h.workspaceService.GetByID(c.Request().Context(), identity, id)
	if err != nil {
		return serviceError(c, err, "workspace")
	}
	return c.JSON(http.StatusOK, workspace)
}

func (h *WorkspaceHandlers) UpdateWorkspace(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "workspace ID")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req services.UpdateWorkspaceRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	req.ID = id

	if err := h.workspaceService.Update(c.Request().Context(), identity, &req); err != nil {
		return serviceError(c, err, "workspace")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Workspace updated"})
}

func (h *WorkspaceHandlers) DeleteWorkspace(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "workspace ID")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.workspaceService.Delete(c.Request().Context(), identity, id); err != nil {
		return serviceError(c, err, "workspace")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Workspace deleted"})
}

func (h *WorkspaceHandlers) ListWorkspaces(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	limit, offset := paginationParams(c)

	workspaces, err := h.workspaceService.List(c.Request().Context(), identity, limit, offset)
	if err != nil {
		return serviceError(c, err, "workspaces")
	}
	return c.JSON(http.StatusOK, map[string]any{"workspaces": workspaces})
}
