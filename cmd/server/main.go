package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-replisync/internal/adapter"
	"github.com/MKhiriev/go-replisync/internal/app"
	"github.com/MKhiriev/go-replisync/internal/config"
	"github.com/MKhiriev/go-replisync/internal/handler"
	"github.com/MKhiriev/go-replisync/internal/logger"
	"github.com/MKhiriev/go-replisync/internal/poke"
	"github.com/MKhiriev/go-replisync/internal/server"
	"github.com/MKhiriev/go-replisync/internal/service"
	"github.com/MKhiriev/go-replisync/internal/store"
	"github.com/MKhiriev/go-replisync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(build)

	log := logger.NewLogger("replisync-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = app.Version(build.BuildVersion())
	}

	log.Debug().Any("config", cfg.Redacted()).Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := store.NewDB(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error opening database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	var regOpts []app.Option
	if cfg.Adapter.GitHubToken != "" {
		gh, err := adapter.NewGitHubAdapter(cfg.Adapter, log)
		if err != nil {
			log.Fatal().Err(err).Msg("error creating github adapter")
		}
		regOpts = append(regOpts, app.WithGitHub(gh))
	}

	reg, err := app.NewRegistry(cfg.App, regOpts...)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating registry")
	}

	services, err := service.NewServices(db, reg, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	poker, err := poke.New(ctx, cfg.Poke, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting poke publisher")
	}
	defer poker.Close()

	handlers, err := handler.NewHandlers(services, poker, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(ctx); err != nil {
		log.Err(err).Msg("server stopped with error")
	}
}

func printBuildInfo(build models.AppBuildInfo) {
	version := build.BuildVersion()
	if version == "" {
		version = "N/A"
	}

	fmt.Printf("Build version: %s\n", version)
	fmt.Printf("Build date: %s\n", build.BuildDate())
	fmt.Printf("Build commit: %s\n", build.BuildCommit())
}
