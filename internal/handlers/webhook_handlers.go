package handlers

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"motocase/internal/common"
	"motocase/internal/services"
)

const maxWebhookBody = 1 << 20 // 1 MiB

// WebhookHandlers receives billing provider callbacks.
type WebhookHandlers struct {
	billingService      services.BillingService
	subscriptionService services.SubscriptionService
}

func NewWebhookHandlers(billingService services.BillingService, subscriptionService services.SubscriptionService) *WebhookHandlers {
	return &WebhookHandlers{
		billingService:      billingService,
		subscriptionService: subscriptionService,
	}
}

// HandleBillingWebhook verifies the HMAC signature over the raw body before
// trusting anything in it.
func (h *WebhookHandlers) HandleBillingWebhook(c echo.Context) error {
	signature := c.Request().Header.Get("X-Webhook-Signature")
	if signature == "" {
		return common.SendUnauthorizedError(c)
	}

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		return common.SendClientError(c, "Failed to read request body")
	}

	event, err := h.billingService.VerifyWebhook(body, signature)
	if err != nil {
		log.Warn().Err(err).Msg("billing webhook signature verification failed")
		return common.SendUnauthorizedError(c)
	}

	if err := h.subscriptionService.HandleWebhookEvent(c.Request().Context(), event); err != nil {
		log.Error().Err(err).Str("event", event.Event).Msg("failed to process billing webhook")
		return common.SendServerError(c, "Failed to process webhook")
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
