package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"celustock-backend/config"
	"celustock-backend/cotizacion"
	"celustock-backend/database"
	"celustock-backend/handlers"
	"celustock-backend/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("No se pudo leer la configuración")
	}

	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	}

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET no está definido")
	}
	middleware.LoadSecret(cfg.JWTSecret, cfg.IsProduction())
	handlers.AdminSecret = cfg.AdminSecretKey

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	store, err := database.Connect(ctx, database.Options{
		Driver:             cfg.StoreDriver,
		MongoURI:           cfg.MongoURI,
		MongoName:          cfg.MongoName,
		FirestoreProjectID: cfg.FirestoreProjectID,
	})
	cancel()
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("No se pudo conectar a la base de datos")
	}

	var cache cotizacion.Cache
	if cfg.RedisURL != "" {
		redisCache, err := cotizacion.NewRedisCache(cfg.RedisURL, time.Duration(cfg.CotizacionTTLMinutes)*time.Minute)
		if err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, la cotización no se cachea")
		} else {
			defer redisCache.Close()
			cache = redisCache
		}
	}
	if cfg.CotizacionURL != "" {
		handlers.Cotizaciones = cotizacion.NewClient(cfg.CotizacionURL, cache)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("Servidor iniciado")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Error del servidor")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Cerrando servidor")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Cierre forzado del servidor")
	}
	if err := store.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error al cerrar la base de datos")
	}
}

func newRouter(cfg *config.Config) *gin.Engine {
	if err := handlers.RegisterValidations(); err != nil {
		log.Fatal().Err(err).Msg("No se pudieron registrar las validaciones")
	}

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logger(), middleware.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Origins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Requested-With", "X-Admin-Secret"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/login", handlers.LoginHandler)
	router.POST("/logout", handlers.LogoutHandler)
	router.GET("/auth/me", middleware.AuthMiddleware(), handlers.AuthMeHandler)
	router.POST("/admin/create-user", handlers.AdminCreateUserHandler)

	limiter := middleware.NewNegocioRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(), limiter.Middleware())
	{
		api.POST("/usuarios", middleware.RequireAdmin(), handlers.CreateUsuarioHandler)

		api.POST("/ventas", handlers.CreateVentaHandler)
		api.GET("/ventas", handlers.GetVentasHandler)
		api.GET("/ventas/:id", handlers.GetVentaHandler)
		api.PUT("/ventas/:id", handlers.UpdateVentaHandler)
		api.DELETE("/ventas/:id", handlers.DeleteVentaHandler)
		api.GET("/ventas/:id/remito.pdf", handlers.RemitoHandler)

		api.GET("/caja", handlers.GetCajaHandler)
		api.POST("/caja/cerrar", handlers.CerrarCajaHandler)
		api.GET("/caja/historial", handlers.GetHistorialCajasHandler)
		api.GET("/caja/mensual", handlers.GetResumenMensualHandler)
		api.DELETE("/caja/:fecha", middleware.RequireAdmin(), handlers.DeleteCajaHandler)

		api.GET("/stock/:tipo", handlers.GetStockHandler)
		api.POST("/stock/:tipo", handlers.CreateStockHandler)
		api.PUT("/stock/:tipo/:id", handlers.UpdateStockHandler)
		api.DELETE("/stock/:tipo/:id", handlers.DeleteStockHandler)
		api.GET("/stock/:tipo/valuacion", handlers.GetValuacionHandler)
		api.GET("/stock/:tipo/reposicion.xlsx", handlers.GetReposicionHandler)

		api.POST("/clientes", handlers.CreateClienteHandler)
		api.GET("/clientes", handlers.GetClientesHandler)
		api.GET("/clientes/:id", handlers.GetClienteHandler)
		api.PUT("/clientes/:id", handlers.UpdateClienteHandler)
		api.DELETE("/clientes/:id", handlers.DeleteClienteHandler)
		api.GET("/clientes/:id/cuenta", handlers.GetCuentaClienteHandler)
		api.GET("/clientes/:id/cuenta.pdf", handlers.GetCuentaClientePDFHandler)

		api.POST("/pagos", handlers.CreatePagoHandler)
		api.GET("/pagos", handlers.GetPagosHandler)
		api.DELETE("/pagos/:id", handlers.DeletePagoHandler)

		api.POST("/trabajos", handlers.CreateTrabajoHandler)
		api.GET("/trabajos", handlers.GetTrabajosHandler)
		api.PUT("/trabajos/:id", handlers.UpdateTrabajoHandler)

		api.GET("/configuracion", handlers.GetConfiguracionHandler)
		api.PUT("/configuracion", middleware.RequireAdmin(), handlers.UpdateConfiguracionHandler)
		api.GET("/capital", handlers.GetCapitalHandler)
		api.PUT("/capital", middleware.RequireAdmin(), handlers.UpdateCapitalHandler)
		api.GET("/cotizacion/sugerida", handlers.GetCotizacionSugeridaHandler)
	}

	return router
}
