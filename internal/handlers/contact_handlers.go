package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"motocase/internal/common"
	"motocase/internal/services"
)

type ContactHandlers struct {
	contactService services.ContactService
}

func NewContactHandlers(contactService services.ContactService) *ContactHandlers {
	return &ContactHandlers{contactService: contactService}
}

func (h *ContactHandlers) CreateContact(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req services.CreateContactRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	contact, err := h.contactService.Create(c.Request().Context(), identity, &req)
	if err != nil {
		return serviceError(c, err, "contact")
	}
	return c.JSON(http.StatusCreated, contact)
}

func (h *ContactHandlers) GetContact(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "contact ID")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	contact, err := h.contactService.GetByID(c.Request().Context(), identity, id)
	if err != nil {
		return serviceError(c, err, "contact")
	}
	return c.JSON(http.StatusOK, contact)
}

func (h *ContactHandlers) UpdateContact(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "contact ID")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	var req services.UpdateContactRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	req.ID = id

	if err := h.contactService.Update(c.Request().Context(), identity, &req); err != nil {
		return serviceError(c, err, "contact")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Contact updated"})
}

func (h *ContactHandlers) DeleteContact(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "contact ID")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.contactService.Delete(c.Request().Context(), identity, id); err != nil {
		return serviceError(c, err, "contact")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Contact deleted"})
}

func (h *ContactHandlers) ListContacts(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	workspaceID, err := optionalWorkspaceParam(c)
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	limit, offset := paginationParams(c)

	contacts, err := h.contactService.List(c.Request().Context(), identity, workspaceID, limit, offset)
	if err != nil {
		return serviceError(c, err, "contacts")
	}
	return c.JSON(http.StatusOK, map[string]any{"contacts": contacts})
}
