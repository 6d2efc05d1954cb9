package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mimbres/internal/config"
	"mimbres/internal/infra"
	"mimbres/internal/router"
	"mimbres/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title                      Mimbres API
// @version                    1.0
// @description                Inventario, ventas y pedidos web de Mimbres.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	configurarLogger(cfg)

	db, err := infra.NewDatabase(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("failed to connect to database")
	}
	if err := infra.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	// Web order notifiers, each enabled by its own config
	var notificadores []service.NotificadorPedidos
	if brokers := cfg.Brokers(); len(brokers) > 0 {
		k := infra.NewKafkaNotificador(brokers, cfg.KafkaTopicPedidos)
		defer k.Close()
		notificadores = append(notificadores, k)
		log.Info().Strs("brokers", brokers).Str("topic", cfg.KafkaTopicPedidos).Msg("kafka notifier enabled")
	}
	if cfg.SMTPHost != "" {
		notificadores = append(notificadores, infra.NewMailer(cfg))
		log.Info().Str("host", cfg.SMTPHost).Msg("smtp notifier enabled")
	}

	r := router.New(cfg, db, rdb, notificadores...)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("Mimbres backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
		return
	}
	log.Info().Msg("server exited")
}

// configurarLogger: console output in development, JSON in production.
func configurarLogger(cfg *config.Config) {
	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if cfg.Env == "production" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}
