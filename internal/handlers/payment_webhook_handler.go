package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/adviseline/advisory-scheduler/internal/apperr"
	"github.com/adviseline/advisory-scheduler/internal/httpresp"
	ucAppointment "github.com/adviseline/advisory-scheduler/internal/usecase/appointment"
)

// PaymentWebhookHandler receives the payment provider's notification
// and advances paid appointments into admin review. The provider
// carries our appointment id as the external reference.
type PaymentWebhookHandler struct {
	markPaidUC *ucAppointment.MarkPaid
}

func NewPaymentWebhookHandler(markPaidUC *ucAppointment.MarkPaid) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{markPaidUC: markPaidUC}
}

type PaymentNotification struct {
	ExternalReference string `json:"external_reference" binding:"required"`
	Status            string `json:"status" binding:"required"`
}

func (h *PaymentWebhookHandler) Notify(c *gin.Context) {
	var req PaymentNotification
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, "invalid_request", "Invalid notification body.")
		return
	}

	if req.Status != "approved" {
		// Pending or rejected charges change nothing; the provider
		// retries approved notifications until we acknowledge.
		httpresp.OK(c, gin.H{"handled": false})
		return
	}

	id, err := uuid.Parse(req.ExternalReference)
	if err != nil {
		apperr.BadRequest(c, "invalid_reference", "Invalid external reference.")
		return
	}

	ap, err := h.markPaidUC.Execute(c.Request.Context(), id)
	if err != nil {
		apperr.WriteError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"handled": true, "status": ap.Status})
}
