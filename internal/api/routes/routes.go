package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/umg-robotica/pistas-backend/internal/api/handlers"
	"github.com/umg-robotica/pistas-backend/internal/api/middleware"
	"github.com/umg-robotica/pistas-backend/internal/config"
	"github.com/umg-robotica/pistas-backend/internal/metrics"
	"github.com/umg-robotica/pistas-backend/internal/models"
	"github.com/umg-robotica/pistas-backend/internal/services"
)

// Register wires up API routes and performs automatic migrations.
func Register(router *gin.Engine, db *gorm.DB, cfg config.Config) error {
	if err := db.AutoMigrate(
		&models.Administrador{},
		&models.Pista{},
		&models.Bitacora{},
		&models.Estadistica{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	router.GET("/api/v1/health", handlers.HealthHandler)

	registry := prometheus.NewRegistry()
	metrics.Register(registry)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	authService := services.NewAuthService(db, cfg)
	authHandler := handlers.NewAuthHandler(authService)
	authMiddleware := middleware.AuthMiddleware(authService)

	pistaHandler := handlers.NewPistaHandler(db)
	adminHandler := handlers.NewAdministradorHandler(db)
	bitacoraHandler := handlers.NewBitacoraHandler(db)
	estadisticaHandler := handlers.NewEstadisticaHandler(db)

	api := router.Group("/api")

	// Public: auth plus the endpoints the game client hits directly.
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/registrar", authHandler.Registrar)
	api.GET("/auth/validar", authHandler.Validar)

	api.GET("/pistas/aleatoria", pistaHandler.Aleatoria)
	api.POST("/pistas/:id/exito", pistaHandler.RegistrarExito)
	api.POST("/pistas/:id/fallo", pistaHandler.RegistrarFallo)

	protected := api.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/pistas", pistaHandler.Activas)
		protected.GET("/pistas/todas", pistaHandler.Todas)
		protected.GET("/pistas/buscar", pistaHandler.Buscar)
		protected.GET("/pistas/:id", pistaHandler.PorID)
		protected.POST("/pistas", pistaHandler.Crear)
		protected.PUT("/pistas/:id", pistaHandler.Actualizar)
		protected.DELETE("/pistas/:id", pistaHandler.Eliminar)

		protected.GET("/administradores", adminHandler.Activos)
		protected.GET("/administradores/todos", adminHandler.Todos)
		protected.GET("/administradores/buscar", adminHandler.Buscar)
		protected.GET("/administradores/username/:username", adminHandler.PorUsername)
		protected.GET("/administradores/:id", adminHandler.PorID)
		protected.POST("/administradores", adminHandler.Crear)
		protected.PUT("/administradores/:id", adminHandler.Actualizar)
		protected.PUT("/administradores/:id/password", adminHandler.CambiarPassword)
		protected.DELETE("/administradores/:id", adminHandler.Eliminar)

		protected.GET("/bitacora", bitacoraHandler.Todas)
		protected.GET("/bitacora/ultimas", bitacoraHandler.Ultimas)
		protected.GET("/bitacora/administrador/:administradorId", bitacoraHandler.PorAdministrador)
		protected.GET("/bitacora/accion/:accion", bitacoraHandler.PorAccion)
		protected.GET("/bitacora/rango", bitacoraHandler.PorRango)
		protected.GET("/bitacora/buscar", bitacoraHandler.Buscar)
		protected.GET("/bitacora/estadisticas", bitacoraHandler.Estadisticas)

		protected.GET("/estadisticas/resumen", estadisticaHandler.Resumen)
		protected.GET("/estadisticas/hoy", estadisticaHandler.Hoy)
		protected.GET("/estadisticas/pista/:pistaId", estadisticaHandler.PorPista)
		protected.GET("/estadisticas/rango", estadisticaHandler.PorRango)
		protected.GET("/estadisticas/por-pista", estadisticaHandler.ResumenPorPista)
		protected.GET("/estadisticas/mas-visitadas", estadisticaHandler.MasVisitadas)
		protected.GET("/estadisticas/mejor-tasa-exito", estadisticaHandler.MejorTasaExito)
	}

	return nil
}
