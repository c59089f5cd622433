package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-captcha-gate/internal/bot"
	"github.com/MKhiriev/go-captcha-gate/internal/captcha"
	"github.com/MKhiriev/go-captcha-gate/internal/config"
	"github.com/MKhiriev/go-captcha-gate/internal/logger"
	"github.com/MKhiriev/go-captcha-gate/internal/server"
	"github.com/MKhiriev/go-captcha-gate/internal/service"
	"github.com/MKhiriev/go-captcha-gate/internal/session"
	"github.com/MKhiriev/go-captcha-gate/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("bot")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildVersion
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg.Storage, cfg.Access, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	messenger, err := bot.NewMessenger(cfg.Bot, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to telegram")
	}

	sessions := session.NewStore(log)
	generator := captcha.NewGenerator(cfg.Captcha, log)
	services := service.NewServices(storages, sessions, generator, messenger, cfg, log)

	opsServer := server.NewServer(cfg.Server, cfg.App, storages, log)
	if opsServer != nil {
		go opsServer.Run()
	}

	b := bot.NewBot(messenger, services, cfg.Bot, log)
	b.Run(ctx)

	if opsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		opsServer.Shutdown(shutdownCtx)
	}

	log.Info().Msg("shutdown complete")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
