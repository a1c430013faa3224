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
	"github.com/adviseline/advisory-scheduler/internal/timezone"
	ucAppointment "github.com/adviseline/advisory-scheduler/internal/usecase/appointment"
)

// ======================================================
// CLIENT SURFACE
// ======================================================

type AppointmentHandler struct {
	cfg       *config.Config
	createUC  *ucAppointment.CreateAppointment
	confirmUC *ucAppointment.ConfirmAppointment
	editUC    *ucAppointment.EditAppointment
	cancelUC  *ucAppointment.CancelAppointment
	listUC    *ucAppointment.ListAppointments
	availUC   *ucAppointment.GetAvailability
}

func NewAppointmentHandler(
	cfg *config.Config,
	createUC *ucAppointment.CreateAppointment,
	confirmUC *ucAppointment.ConfirmAppointment,
	editUC *ucAppointment.EditAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	listUC *ucAppointment.ListAppointments,
	availUC *ucAppointment.GetAvailability,
) *AppointmentHandler {
	return &AppointmentHandler{
		cfg:       cfg,
		createUC:  createUC,
		confirmUC: confirmUC,
		editUC:    editUC,
		cancelUC:  cancelUC,
		listUC:    listUC,
		availUC:   availUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	Title         string    `json:"title" binding:"required"`
	Description   string    `json:"description"`
	RequestedDate time.Time `json:"requested_date" binding:"required"`
	DurationMin   int       `json:"duration_min" binding:"required"`
	IsVirtual     bool      `json:"is_virtual"`
	Paid          bool      `json:"paid"`
	Amount        float64   `json:"amount"`
}

type EditAppointmentRequest struct {
	Title         string    `json:"title" binding:"required"`
	Description   string    `json:"description"`
	RequestedDate time.Time `json:"requested_date" binding:"required"`
	DurationMin   int       `json:"duration_min" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	res, err := h.createUC.Execute(c.Request.Context(), userID, ucAppointment.CreateInput{
		Title:         req.Title,
		Description:   req.Description,
		RequestedDate: req.RequestedDate,
		DurationMin:   req.DurationMin,
		IsVirtual:     req.IsVirtual,
		Paid:          req.Paid,
		Amount:        req.Amount,
	})
	if err != nil {
		apperr.WriteError(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"appointment":  toView(res.Appointment, true),
		"checkout_url": res.CheckoutURL,
	})
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	filter := domain.ParseFilter(c.Query("filter"))
	scope, ok := parseScope(c, h.cfg.Timezone)
	if !ok {
		apperr.BadRequest(c, "invalid_scope", "Invalid day or month parameters.")
		return
	}

	aps, err := h.listUC.ExecuteForUser(c.Request.Context(), userID, filter, scope)
	if err != nil {
		apperr.WriteError(c, err)
		return
	}

	httpresp.List(c, toViews(aps, true))
}

// ======================================================
// EDIT
// ======================================================

func (h *AppointmentHandler) Edit(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req EditAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.editUC.Execute(c.Request.Context(), userID, id, domain.EditInput{
		Title:         req.Title,
		Description:   req.Description,
		RequestedDate: req.RequestedDate,
		DurationMin:   req.DurationMin,
	})
	if err != nil {
		apperr.WriteError(c, err)
		return
	}

	httpresp.OK(c, toView(ap, true))
}

// ======================================================
// ACCEPT (client confirms an admin suggestion)
// ======================================================

func (h *AppointmentHandler) Accept(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := h.confirmUC.Execute(c.Request.Context(), domain.ActorClient, userID, id, nil)
	if err != nil {
		apperr.WriteError(c, err)
		return
	}

	httpresp.OK(c, toView(ap, true))
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), domain.ActorClient, userID, id)
	if err != nil {
		apperr.WriteError(c, err)
		return
	}

	httpresp.OK(c, toView(ap, true))
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		apperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	loc := timezone.Location(h.cfg.Timezone)
	date, err := parseDay(loc, dateStr)
	if err != nil {
		apperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	slots, err := h.availUC.Execute(c.Request.Context(), date)
	if err != nil {
		apperr.WriteError(c, err)
		return
	}

	httpresp.List(c, slots)
}
