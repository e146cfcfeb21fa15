package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"motocase/internal/common"
	"motocase/internal/services"
)

// CaseHandlers covers the case lifecycle plus the per-case interaction log.
type CaseHandlers struct {
	caseService        services.CaseService
	interactionService services.InteractionService
}

func NewCaseHandlers(caseService services.CaseService, interactionService services.InteractionService) *CaseHandlers {
	return &CaseHandlers{
		caseService:        caseService,
		interactionService: interactionService,
	}
}

func (h *CaseHandlers) CreateCase(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req services.CreateCaseRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	created, err := h.caseService.Create(c.Request().Context(), identity, &req)
	if err != nil {
		return serviceError(c, err, "case")
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *CaseHandlers) GetCase(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "case ID")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	found, err := h.caseService.GetByID(c.Request().Context(), identity, id)
	if err != nil {
		return serviceError(c, err, "case")
	}
	return c.JSON(http.StatusOK, found)
}

func (h *CaseHandlers) UpdateCase(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "case ID")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req services.UpdateCaseRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	req.ID = id

	if err := h.caseService.Update(c.Request().Context(), identity, &req); err != nil {
		return serviceError(c, err, "case")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Case updated"})
}

func (h *CaseHandlers) DeleteCase(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "case ID")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.caseService.Delete(c.Request().Context(), identity, id); err != nil {
		return serviceError(c, err, "case")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Case deleted"})
}

func (h *CaseHandlers) ListCases(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	workspaceID, err := optionalWorkspaceParam(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	limit, offset := paginationParams(c)

	cases, err := h.caseService.List(c.Request().Context(), identity, workspaceID, limit, offset)
	if err != nil {
		return serviceError(c, err, "cases")
	}
	return c.JSON(http.StatusOK, map[string]any{"cases": cases})
}

// CreateInteraction appends a note, call, or email record to a case.
func (h *CaseHandlers) CreateInteraction(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	caseID, err := common.ValidateUUID(c.Param("id"), "case ID")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req services.CreateInteractionRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	req.CaseID = caseID

	interaction, err := h.interactionService.Create(c.Request().Context(), identity, &req)
	if err != nil {
		return serviceError(c, err, "case")
	}
	return c.JSON(http.StatusCreated, interaction)
}

func (h *CaseHandlers) ListInteractions(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	caseID, err := common.ValidateUUID(c.Param("id"), "case ID")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	limit, offset := paginationParams(c)

	interactions, err := h.interactionService.ListByCase(c.Request().Context(), identity, caseID, limit, offset)
	if err != nil {
		return serviceError(c, err, "case")
	}
	return c.JSON(http.StatusOK, map[string]any{"interactions": interactions})
}

func (h *CaseHandlers) DeleteInteraction(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	interactionID, err := common.ValidateUUID(c.Param("iid"), "interaction ID")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.interactionService.Delete(c.Request().Context(), identity, interactionID); err != nil {
		return serviceError(c, err, "interaction")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Interaction deleted"})
}
