package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Cristiand11/portfolio-sub001/internal/audit"
	"github.com/Cristiand11/portfolio-sub001/internal/config"
	"github.com/Cristiand11/portfolio-sub001/internal/handlers"
	infraRepo "github.com/Cristiand11/portfolio-sub001/internal/infra/repository"
	"github.com/Cristiand11/portfolio-sub001/internal/middleware"
	"github.com/Cristiand11/portfolio-sub001/internal/notification"
	"github.com/Cristiand11/portfolio-sub001/internal/timezone"
	"github.com/Cristiand11/portfolio-sub001/internal/token"
	ucAppointment "github.com/Cristiand11/portfolio-sub001/internal/usecase/appointment"
	ucAuth "github.com/Cristiand11/portfolio-sub001/internal/usecase/auth"
	ucDoctor "github.com/Cristiand11/portfolio-sub001/internal/usecase/doctor"
	ucSchedule "github.com/Cristiand11/portfolio-sub001/internal/usecase/schedule"
)

// Deps are the process-wide singletons built by the serve command.
// Redis is optional; without it the login rate limit is off.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Logger   zerolog.Logger
	Audit    audit.Recorder
	Notifier notification.Notifier
	Redis    *redis.Client
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestID(d.Logger),
		middleware.Logger(d.Logger),
		middleware.Recovery(d.Logger),
		middleware.CORSMiddleware(),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	clock := timezone.NewSystemClock(d.Config.Timezone)
	tokens := token.NewIssuer(d.Config.JWTSecret, d.Config.TokenTTL)

	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB, clock.Location())
	doctorRepo := infraRepo.NewDoctorGormRepository(d.DB, clock.Location())

	appointmentDeps := ucAppointment.Deps{
		Repo:     appointmentRepo,
		Clock:    clock,
		Notifier: d.Notifier,
		Audit:    d.Audit,
	}
	doctorDeps := ucDoctor.Deps{
		Repo:      doctorRepo,
		Clock:     clock,
		Audit:     d.Audit,
		GraceDays: d.Config.InactivationDays,
	}

	// ======================================================
	// USE CASES
	// ======================================================
	resolveActorUC := ucAppointment.NewResolveActor(appointmentRepo)

	loginUC := ucAuth.NewLogin(
		doctorRepo,
		tokens,
		clock,
		d.Audit,
		d.Config.InactivationDays,
	)

	appointmentUCs := handlers.AppointmentUseCases{
		Create:      ucAppointment.NewCreateAppointment(appointmentDeps),
		Confirm:     ucAppointment.NewConfirmAppointment(appointmentDeps),
		Reject:      ucAppointment.NewRejectReschedule(appointmentDeps),
		Cancel:      ucAppointment.NewCancelAppointment(appointmentDeps),
		Complete:    ucAppointment.NewCompleteAppointment(appointmentDeps),
		Reschedule:  ucAppointment.NewRequestReschedule(appointmentDeps),
		ListByDate:  ucAppointment.NewListAppointmentsByDate(appointmentRepo, clock),
		ListByMonth: ucAppointment.NewListAppointmentsByMonth(appointmentRepo, clock),
	}

	replaceScheduleUC := ucSchedule.NewReplaceWeeklySchedule(appointmentRepo, d.Audit)
	getScheduleUC := ucSchedule.NewGetWeeklySchedule(appointmentRepo)
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo, clock)

	requestInactivationUC := ucDoctor.NewRequestInactivation(doctorDeps)
	revertInactivationUC := ucDoctor.NewRevertInactivation(doctorDeps)
	inactivationMetricUC := ucDoctor.NewPendingInactivationMetric(doctorRepo, clock)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.Logger, loginUC)
	meHandler := handlers.NewMeHandler(d.Logger, resolveActorUC, appointmentRepo)
	appointmentHandler := handlers.NewAppointmentHandler(d.Logger, resolveActorUC, appointmentUCs)
	workingHoursHandler := handlers.NewWorkingHoursHandler(
		d.Logger,
		resolveActorUC,
		replaceScheduleUC,
		getScheduleUC,
		availabilityUC,
	)
	doctorAdminHandler := handlers.NewDoctorAdminHandler(
		d.Logger,
		resolveActorUC,
		requestInactivationUC,
		revertInactivationUC,
		inactivationMetricUC,
	)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, d.Logger, resolveActorUC)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		login := []gin.HandlerFunc{authHandler.Login}
		if d.Redis != nil {
			limiter := middleware.NewRateLimiter(
				d.Redis,
				d.Config.LoginRateLimit,
				d.Config.LoginRateWindow,
				"ratelimit:login",
			)
			login = append([]gin.HandlerFunc{limiter.Middleware(d.Logger)}, login...)
		}
		api.POST("/auth/login", login...)

		// ------------------------------
		// SECURED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(tokens))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// DOCTORS
			// ------------------------------
			secured.GET("/doctors/:id/availability", workingHoursHandler.Availability)
			secured.GET("/doctors/:id/working-hours", workingHoursHandler.Get)
			secured.PUT("/doctors/:id/working-hours", workingHoursHandler.Update)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/appointments/:id/reject", appointmentHandler.Reject)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.POST("/appointments/:id/reschedule", appointmentHandler.Reschedule)

			// ------------------------------
			// ADMIN
			// ------------------------------
			secured.POST("/admin/doctors/:id/inactivation", doctorAdminHandler.RequestInactivation)
			secured.DELETE("/admin/doctors/:id/inactivation", doctorAdminHandler.RevertInactivation)
			secured.GET("/admin/dashboard/inactivations", doctorAdminHandler.Dashboard)
			secured.GET("/admin/audit-logs", auditLogsHandler.List)
		}
	}
}
