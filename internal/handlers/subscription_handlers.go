package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"motocase/internal/common"
	"motocase/internal/services"
)

type SubscriptionHandlers struct {
	subscriptionService services.SubscriptionService
}

func NewSubscriptionHandlers(subscriptionService services.SubscriptionService) *SubscriptionHandlers {
	return &SubscriptionHandlers{subscriptionService: subscriptionService}
}

func (h *SubscriptionHandlers) ListPlans(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"plans": h.subscriptionService.ListPlans()})
}

type CreateSubscriptionRequest struct {
	WorkspaceID string `json:"workspace_id"`
	PlanID      string `json:"plan_id"`
}

func (h *SubscriptionHandlers) CreateSubscription(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req CreateSubscriptionRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	workspaceID, err := common.ValidateUUID(req.WorkspaceID, "workspace ID")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}
	if req.PlanID == "" {
		return common.SendClientError(c, "plan_id is required")
	}

	sub, err := h.subscriptionService.Create(c.Request().Context(), identity, workspaceID, req.PlanID)
	if err != nil {
		return serviceError(c, err, "workspace")
	}
	return c.JSON(http.StatusCreated, sub)
}

func (h *SubscriptionHandlers) GetSubscription(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "subscription ID")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	sub, err := h.subscriptionService.GetByID(c.Request().Context(), identity, id)
	if err != nil {
		return serviceError(c, err, "subscription")
	}
	return c.JSON(http.StatusOK, sub)
}

func (h *SubscriptionHandlers) ListSubscriptions(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	subs, err := h.subscriptionService.List(c.Request().Context(), identity)
	if err != nil {
		return serviceError(c, err, "subscriptions")
	}
	return c.JSON(http.StatusOK, map[string]any{"subscriptions": subs})
}

func (h *SubscriptionHandlers) CancelSubscription(c echo.Context) error {
	identity, ok := identityFromRequest(c)
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	id, err := common.ValidateUUID(c.Param("id"), "subscription ID")
	if err != nil {
		return common.SendClientError(c, err.Error())
	}

	if err := h.subscriptionService.Cancel(c.Request().Context(), identity, id); err != nil {
		return serviceError(c, err, "subscription")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Subscription cancelled"})
}
