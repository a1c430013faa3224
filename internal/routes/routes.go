package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/adviseline/advisory-scheduler/internal/audit"
	"github.com/adviseline/advisory-scheduler/internal/config"
	"github.com/adviseline/advisory-scheduler/internal/handlers"
	"github.com/adviseline/advisory-scheduler/internal/infra/cache"
	infraRepo "github.com/adviseline/advisory-scheduler/internal/infra/repository"
	"github.com/adviseline/advisory-scheduler/internal/middleware"
	"github.com/adviseline/advisory-scheduler/internal/notify"
	"github.com/adviseline/advisory-scheduler/internal/payment"
	ucAppointment "github.com/adviseline/advisory-scheduler/internal/usecase/appointment"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	log *zap.Logger,
) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	store := infraRepo.NewAppointmentGormStore(db)

	// Left nil when redis is absent so the commands skip caching.
	var avail ucAppointment.AvailabilityCache
	if rdb != nil {
		avail = cache.NewAvailability(rdb, log)
	}

	var collector payment.Collector = payment.NoopCollector{}
	if cfg.MPAccessToken != "" {
		mp, err := payment.NewMercadoPagoCollector(cfg.MPAccessToken, log)
		if err != nil {
			log.Warn("payment collector unavailable, paid flow degraded", zap.Error(err))
		} else {
			collector = mp
		}
	}

	auditDisp := audit.NewDispatcher(audit.New(db), log)
	notifier := notify.NewDispatcher(notify.NewLogNotifier(log), log)

	// ======================================================
	// USE CASES
	// ======================================================
	createUC := ucAppointment.NewCreateAppointment(store, collector, notifier, auditDisp, avail, log)
	confirmUC := ucAppointment.NewConfirmAppointment(store, notifier, auditDisp, avail)
	proposeUC := ucAppointment.NewProposeReschedule(store, notifier, auditDisp)
	editUC := ucAppointment.NewEditAppointment(store, notifier, auditDisp, avail)
	cancelUC := ucAppointment.NewCancelAppointment(store, notifier, auditDisp, avail)
	rejectUC := ucAppointment.NewRejectAppointment(store, notifier, auditDisp)
	completeUC := ucAppointment.NewCompleteAppointment(store, notifier, auditDisp)
	markPaidUC := ucAppointment.NewMarkPaid(store, notifier, auditDisp)
	listUC := ucAppointment.NewListAppointments(store)
	availUC := ucAppointment.NewGetAvailability(store, avail)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	appointmentHandler := handlers.NewAppointmentHandler(
		cfg, createUC, confirmUC, editUC, cancelUC, listUC, availUC,
	)
	adminHandler := handlers.NewAdminAppointmentHandler(
		cfg, confirmUC, proposeUC, cancelUC, rejectUC, completeUC, listUC,
	)
	webhookHandler := handlers.NewPaymentWebhookHandler(markPaidUC)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// WEBHOOKS
		// ------------------------------
		api.POST("/webhooks/payment", webhookHandler.Notify)

		// ------------------------------
		// CLIENT
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/availability", appointmentHandler.Availability)

			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.List)
			secured.PUT("/me/appointments/:id", appointmentHandler.Edit)
			secured.PATCH("/me/appointments/:id/accept", appointmentHandler.Accept)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/appointments", adminHandler.List)
				admin.PATCH("/appointments/:id/confirm", adminHandler.Confirm)
				admin.PATCH("/appointments/:id/reschedule", adminHandler.ProposeReschedule)
				admin.PATCH("/appointments/:id/cancel", adminHandler.Cancel)
				admin.PATCH("/appointments/:id/reject", adminHandler.Reject)
				admin.PATCH("/appointments/:id/complete", adminHandler.Complete)
			}
		}
	}
}
