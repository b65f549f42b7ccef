package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/domain/account"
	"github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/message"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	"github.com/BruksfildServices01/barber-booking/internal/media"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/ratelimit"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucAccount "github.com/BruksfildServices01/barber-booking/internal/usecase/account"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/auditlog"
	ucMessage "github.com/BruksfildServices01/barber-booking/internal/usecase/message"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

type Dependencies struct {
	Config *config.Config
	Log    *zap.Logger

	Appointments appointment.Repository
	Messages     message.Repository
	Users        account.Repository

	AuditLogger *audit.Logger
	Audit       audit.Recorder

	Tokens *auth.TokenManager
	Hasher *auth.PasswordHasher

	// Photos is nil when no bucket is configured.
	Photos media.Store

	AuthLimiter  ratelimit.Limiter
	GuestLimiter ratelimit.Limiter

	HealthChecks map[string]handlers.Pinger
}

func RegisterRoutes(r *gin.Engine, d Dependencies) error {
	if err := validators.RegisterBindings(); err != nil {
		return err
	}

	cfg := d.Config
	loc := timezone.Location(cfg.ShopTimezone)

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(d.Log),
		middleware.Recovery(d.Log),
		middleware.CORSMiddleware(cfg.CORSOrigins),
	)

	// ======================================================
	// USE CASES
	// ======================================================
	var checkDomain func(string) bool
	if cfg.CheckEmailDomain {
		checkDomain = validators.IsEmailDomainValid
	}

	resolvePrincipal := ucAccount.NewResolvePrincipal(d.Users, d.Tokens)

	readThread := ucMessage.NewReadThread(d.Messages)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(
		ucAccount.NewRegister(d.Users, d.Hasher, d.Tokens, d.Audit, checkDomain),
		ucAccount.NewLogin(d.Users, d.Hasher, d.Tokens),
		ucAccount.NewMe(d.Users),
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		ucAppointment.NewCreateAppointment(d.Appointments, d.Users, d.Audit),
		ucAppointment.NewListAppointments(d.Appointments),
		ucAppointment.NewGetAppointment(d.Appointments),
		ucAppointment.NewChangeStatus(d.Appointments, d.Audit, d.Log),
		ucAppointment.NewDeleteAppointment(d.Appointments, d.Audit, d.Log),
		ucAppointment.NewAttachPhoto(d.Appointments, d.Photos, d.Audit, cfg.Photos.MaxWidth),
		ucAppointment.NewPhotoURL(d.Appointments, d.Photos, cfg.Photos.URLTTL()),
		loc,
	)

	messageHandler := handlers.NewMessageHandler(
		ucMessage.NewPostMessage(d.Appointments, d.Messages, d.Audit, d.Log),
		ucMessage.NewGuestView(d.Appointments, readThread),
		loc,
	)

	userHandler := handlers.NewUserHandler(
		ucAccount.NewListUsers(d.Users),
		ucAccount.NewChangeRole(d.Users, d.Audit, d.Log),
		ucAccount.NewDeleteUser(d.Users, d.Audit, d.Log),
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(auditlog.NewListAuditLogs(d.AuditLogger))
	healthHandler := handlers.NewHealthHandler(d.HealthChecks)

	requireAuth := middleware.AuthMiddleware(resolvePrincipal)
	optionalAuth := middleware.OptionalAuthMiddleware(resolvePrincipal)

	// ======================================================
	// HEALTH
	// ======================================================
	r.GET("/health", healthHandler.Live)
	r.GET("/health/ready", healthHandler.Ready)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		authGroup := api.Group("/auth")
		authGroup.Use(middleware.RateLimit(d.AuthLimiter, middleware.ByIP, d.Log))
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// ------------------------------
		// GUEST LINK
		// ------------------------------
		guest := api.Group("/guest/appointments/:token")
		{
			guest.GET("", messageHandler.GuestView)
			guest.POST("/messages",
				middleware.RateLimit(d.GuestLimiter, middleware.GuestKey("token"), d.Log),
				messageHandler.GuestPost,
			)
		}

		// owner, admin, or guest holding the link
		api.POST("/appointments/:id/messages",
			optionalAuth,
			middleware.RateLimit(d.GuestLimiter, middleware.GuestKey("id"), d.Log),
			messageHandler.Post,
		)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("")
		secured.Use(requireAuth)
		{
			secured.GET("/me", authHandler.Me)

			secured.GET("/appointments", appointmentHandler.List)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PATCH("/appointments/:id", appointmentHandler.ChangeStatus)
			secured.PUT("/appointments/:id", appointmentHandler.ChangeStatus)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)
			secured.POST("/appointments/:id/photo", appointmentHandler.UploadPhoto)
			secured.GET("/appointments/:id/photo", appointmentHandler.PhotoURL)

			secured.GET("/users", userHandler.List)
			secured.PATCH("/users/:id", userHandler.ChangeRole)
			secured.DELETE("/users/:id", userHandler.Delete)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}

	return nil
}
