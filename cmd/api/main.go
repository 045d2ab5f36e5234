package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VitalSpaAR/spa-agenda/internal/cache"
	"github.com/VitalSpaAR/spa-agenda/internal/config"
	dbpkg "github.com/VitalSpaAR/spa-agenda/internal/db"
	"github.com/VitalSpaAR/spa-agenda/internal/logger"
	"github.com/VitalSpaAR/spa-agenda/internal/payments"
	"github.com/VitalSpaAR/spa-agenda/internal/routes"
	"github.com/VitalSpaAR/spa-agenda/internal/storage"
)

func main() {

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	db := dbpkg.NewDB(cfg, log)

	ch := cache.New(cfg.RedisAddr, cfg.RedisPassword, log)
	fotos := storage.NewFotoStore(cfg)

	linker, err := payments.NewSenaLinker(cfg.MPAccessToken)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure mercadopago")
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, log, ch, fotos, linker)

	log.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
