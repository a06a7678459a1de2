package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/synchroai/synchro_backend/internal/core/ports/services"
	"github.com/synchroai/synchro_backend/internal/middleware"
)

// maxWebhookBody caps webhook payloads at 64 KiB.
const maxWebhookBody = 64 << 10

// webhookHandler handles asynchronous payment gateway callbacks.
type webhookHandler struct {
	topUpService portssvc.TopUpSvcFacade
}

// registerWebhookRoutes registers the public gateway webhook endpoint.
// Authentication is the signature header, not a bearer token.
func registerWebhookRoutes(r *gin.Engine, topUpService portssvc.TopUpSvcFacade) {
	h := &webhookHandler{topUpService: topUpService}
	r.POST("/webhooks/stripe", h.handleStripe)
}

// handleStripe godoc
// @Summary Stripe webhook
// @Description Verifies the event signature and credits completed checkout
// sessions. Crediting is idempotent with the confirm endpoint.
// @Tags webhooks
// @Accept json
// @Success 200
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Bad signature"
// @Router /webhooks/stripe [post]
func (h *webhookHandler) handleStripe(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to read payload"})
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if err := h.topUpService.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
		logger.Warn("Webhook processing failed", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
