package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/solar-scheduler/internal/audit"
	"github.com/BruksfildServices01/solar-scheduler/internal/config"
	domain "github.com/BruksfildServices01/solar-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/solar-scheduler/internal/handlers"
	"github.com/BruksfildServices01/solar-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/solar-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/solar-scheduler/internal/usecase/appointment"
)

// Deps são as dependências de infraestrutura montadas pelo comando serve.
type Deps struct {
	Repo     domain.Repository
	Locker   lock.Locker
	Selector domain.Selector
	Audit    *audit.Dispatcher
	Options  ucAppointment.Options
	Log      *zap.Logger
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, deps Deps) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	r.Use(middleware.RequestLogger(deps.Log))

	// ======================================================
	// 🧠 USE CASES (APPOINTMENTS)
	// ======================================================
	getAvailabilityUC := ucAppointment.NewGetAvailability(
		deps.Repo,
		deps.Options,
		deps.Log,
	)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		deps.Repo,
		deps.Locker,
		deps.Selector,
		deps.Audit,
		deps.Options,
		deps.Log,
	)

	updateAppointmentUC := ucAppointment.NewUpdateAppointment(
		deps.Repo,
		deps.Locker,
		deps.Audit,
		deps.Options,
		deps.Log,
	)

	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(
		deps.Repo,
		deps.Audit,
		deps.Log,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	availabilityHandler := handlers.NewAvailabilityHandler(getAvailabilityUC, deps.Log)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateAppointmentUC,
		deleteAppointmentUC,
		deps.Log,
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	secured := r.Group("/api")
	secured.Use(middleware.AuthMiddleware(cfg))
	{
		secured.GET("/availability", availabilityHandler.Get)

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		secured.POST("/appointments", appointmentHandler.Create)
		secured.PATCH("/appointments/:id", appointmentHandler.Update)
		secured.DELETE("/appointments/:id", appointmentHandler.Delete)
	}
}
