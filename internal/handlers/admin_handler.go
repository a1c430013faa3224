package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/adviseline/advisory-scheduler/internal/apperr"
	"github.com/adviseline/advisory-scheduler/internal/config"
	domain "github.com/adviseline/advisory-scheduler/internal/domain/appointment"
	"github.com/adviseline/advisory-scheduler/internal/httpresp"
	"github.com/adviseline/advisory-scheduler/internal/middleware"
	ucAppointment "github.com/adviseline/advisory-scheduler/internal/usecase/appointment"
)

// ======================================================
// ADMIN SURFACE
// ======================================================

type AdminAppointmentHandler struct {
	cfg        *config.Config
	confirmUC  *ucAppointment.ConfirmAppointment
	proposeUC  *ucAppointment.ProposeReschedule
	cancelUC   *ucAppointment.CancelAppointment
	rejectUC   *ucAppointment.RejectAppointment
	completeUC *ucAppointment.CompleteAppointment
	listUC     *ucAppointment.ListAppointments
}

func NewAdminAppointmentHandler(
	cfg *config.Config,
	confirmUC *ucAppointment.ConfirmAppointment,
	proposeUC *ucAppointment.ProposeReschedule,
	cancelUC *ucAppointment.CancelAppointment,
	rejectUC *ucAppointment.RejectAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	listUC *ucAppointment.ListAppointments,
) *AdminAppointmentHandler {
	return &AdminAppointmentHandler{
		cfg:        cfg,
		confirmUC:  confirmUC,
		proposeUC:  proposeUC,
		cancelUC:   cancelUC,
		rejectUC:   rejectUC,
		completeUC: completeUC,
		listUC:     listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ConfirmRequest struct {
	// Optional: omitted means the requested (or suggested) date is
	// accepted as-is.
	ConfirmedDate *time.Time `json:"confirmed_date"`
}

type RescheduleRequest struct {
	SuggestedDate time.Time `json:"suggested_date" binding:"required"`
}

// ======================================================
// LIST
// ======================================================

func (h *AdminAppointmentHandler) List(c *gin.Context) {
	filter := domain.ParseFilter(c.Query("filter"))
	scope, ok := parseScope(c, h.cfg.Timezone)
	if !ok {
		apperr.BadRequest(c, "invalid_scope", "Invalid day or month parameters.")
		return
	}

	aps, err := h.listUC.ExecuteForAdmin(c.Request.Context(), filter, scope)
	if err != nil {
		apperr.WriteError(c, err)
		return
	}

	httpresp.List(c, toViews(aps, false))
}

// ======================================================
// CONFIRM
// ======================================================

func (h *AdminAppointmentHandler) Confirm(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		apperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.confirmUC.Execute(c.Request.Context(), domain.ActorAdmin, adminID, id, req.ConfirmedDate)
	if err != nil {
		apperr.WriteError(c, err)
		return
	}

	httpresp.OK(c, toView(ap, false))
}

// ======================================================
// PROPOSE RESCHEDULE
// ======================================================

func (h *AdminAppointmentHandler) ProposeReschedule(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.proposeUC.Execute(c.Request.Context(), adminID, id, req.SuggestedDate)
	if err != nil {
		apperr.WriteError(c, err)
		return
	}

	httpresp.OK(c, toView(ap, false))
}

// ======================================================
// CANCEL
// ======================================================

func (h *AdminAppointmentHandler) Cancel(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), domain.ActorAdmin, adminID, id)
	if err != nil {
		apperr.WriteError(c, err)
		return
	}

	httpresp.OK(c, toView(ap, false))
}

// ======================================================
// REJECT
// ======================================================

func (h *AdminAppointmentHandler) Reject(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := h.rejectUC.Execute(c.Request.Context(), adminID, id)
	if err != nil {
		apperr.WriteError(c, err)
		return
	}

	httpresp.OK(c, toView(ap, false))
}

// ======================================================
// COMPLETE
// ======================================================

func (h *AdminAppointmentHandler) Complete(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := h.completeUC.Execute(c.Request.Context(), domain.ActorAdmin, adminID, id)
	if err != nil {
		apperr.WriteError(c, err)
		return
	}

	httpresp.OK(c, toView(ap, false))
}
