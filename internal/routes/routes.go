package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/VitalSpaAR/spa-agenda/internal/audit"
	"github.com/VitalSpaAR/spa-agenda/internal/cache"
	"github.com/VitalSpaAR/spa-agenda/internal/config"
	"github.com/VitalSpaAR/spa-agenda/internal/handlers"
	infraRepo "github.com/VitalSpaAR/spa-agenda/internal/infra/repository"
	"github.com/VitalSpaAR/spa-agenda/internal/middleware"
	"github.com/VitalSpaAR/spa-agenda/internal/payments"
	"github.com/VitalSpaAR/spa-agenda/internal/storage"
	ucCita "github.com/VitalSpaAR/spa-agenda/internal/usecase/cita"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	log zerolog.Logger,
	ch *cache.Cache,
	fotos *storage.FotoStore,
	linker *payments.SenaLinker,
) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	citaRepo := infraRepo.NewCitaGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	// ======================================================
	// USE CASES — CITAS
	// ======================================================
	dispUC := ucCita.NewVerificarDisponibilidad(citaRepo)

	crearCitaUC := ucCita.NewCrearCita(citaRepo, dispUC, auditDispatcher, cfg.Timezone)
	crearMultipleUC := ucCita.NewCrearCitaMultiple(citaRepo, dispUC, auditDispatcher, cfg.Timezone)
	reprogramarUC := ucCita.NewReprogramarCita(citaRepo, dispUC, auditDispatcher, cfg.Timezone)

	confirmarUC := ucCita.NewConfirmarCita(citaRepo, auditDispatcher, cfg.Timezone)
	completarUC := ucCita.NewCompletarCita(citaRepo, auditDispatcher, cfg.Timezone)
	cancelarUC := ucCita.NewCancelarCita(citaRepo, auditDispatcher, cfg.Timezone)

	porFechaUC := ucCita.NewListarCitasPorFecha(citaRepo, cfg.Timezone)
	porMesUC := ucCita.NewListarCitasPorMes(citaRepo, cfg.Timezone)
	slotsUC := ucCita.NewSlotsDisponibles(citaRepo, cfg.Timezone)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	tratamientoHandler := handlers.NewTratamientoHandler(db, ch, fotos)
	subtratamientoHandler := handlers.NewSubtratamientoHandler(db)
	clienteHandler := handlers.NewClienteHandler(db)
	disponibilidadHandler := handlers.NewDisponibilidadHandler(db)

	citaHandler := handlers.NewCitaHandler(
		crearCitaUC,
		crearMultipleUC,
		reprogramarUC,
		confirmarUC,
		completarUC,
		cancelarUC,
		porFechaUC,
		porMesUC,
		dispUC,
		slotsUC,
		citaRepo,
		linker,
		cfg.Timezone,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PÚBLICA
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		api.GET("/tratamientos", tratamientoHandler.List)
		api.GET("/tratamientos/:id/subtratamientos", subtratamientoHandler.ListByTratamiento)
		api.GET("/citas/disponibilidad", citaHandler.Disponibilidad)

		// ------------------------------
		// PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// Catálogo
			secured.POST("/tratamientos", tratamientoHandler.Create)
			secured.PATCH("/tratamientos/:id", tratamientoHandler.Update)
			secured.DELETE("/tratamientos/:id", tratamientoHandler.Delete)
			secured.POST("/tratamientos/:id/foto", tratamientoHandler.SubirFoto)

			secured.POST("/tratamientos/:id/subtratamientos", subtratamientoHandler.Create)
			secured.PATCH("/subtratamientos/:id", subtratamientoHandler.Update)
			secured.DELETE("/subtratamientos/:id", subtratamientoHandler.Delete)

			// Ventanas de disponibilidad
			secured.GET("/tratamientos/:id/disponibilidades", disponibilidadHandler.ListByTratamiento)
			secured.POST("/tratamientos/:id/disponibilidades", disponibilidadHandler.Create)
			secured.PATCH("/disponibilidades/:id", disponibilidadHandler.Update)
			secured.DELETE("/disponibilidades/:id", disponibilidadHandler.Delete)

			// Clientes
			secured.GET("/clientes", clienteHandler.List)
			secured.GET("/clientes/:id", clienteHandler.Get)

			// Citas
			secured.POST("/citas", citaHandler.Create)
			secured.POST("/citas/multiple", citaHandler.CreateMultiple)
			secured.GET("/citas", citaHandler.ListByDate)
			secured.GET("/citas/mes", citaHandler.ListByMonth)
			secured.GET("/citas/slots", citaHandler.Slots)
			secured.GET("/citas/:id", citaHandler.Get)
			secured.PATCH("/citas/:id", citaHandler.Reprogramar)
			secured.PATCH("/citas/:id/confirmar", citaHandler.Confirmar)
			secured.PATCH("/citas/:id/completar", citaHandler.Completar)
			secured.PATCH("/citas/:id/cancelar", citaHandler.Cancelar)
			secured.POST("/citas/:id/sena/link", citaHandler.SenaLink)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
