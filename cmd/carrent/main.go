// Package main initializes and starts the car rental web application server,
// setting up configuration, logging, session storage, the rental API
// gateway, services and handlers.
package main

import (
	"cmp"
	"fmt"

	nethttp "net/http"

	"github.com/carrentapp/carrent/internal/config"
	"github.com/carrentapp/carrent/internal/gateway"
	"github.com/carrentapp/carrent/internal/logger"
	"github.com/carrentapp/carrent/internal/server/handler/http"
	"github.com/carrentapp/carrent/internal/service"
	"github.com/carrentapp/carrent/internal/session"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// Initialize session storage: file-backed when configured, otherwise
	// in-memory.
	var store session.Store
	if options.SessionFile != "" {
		fileStore := session.NewFileStore(options.SessionFile, zapLogger)
		if err := fileStore.Load(); err != nil {
			zapLogger.Fatal("cannot load session file", zap.Error(err))
		}
		store = fileStore
	} else {
		store = session.NewMemoryStore()
	}
	bridge := session.NewBridge(store)

	// Initialize the rental API gateway.
	api := gateway.New(options.APIBaseURL)

	// Initialize business-logic services.
	authService := service.NewAuthService(api, bridge, zapLogger)
	catalogueService := service.NewCatalogueService(api, zapLogger)
	reservationService := service.NewReservationService(api, zapLogger)

	// Create HTTP handlers for the catalogue, the wizard and auth.
	authHandler := &http.AuthHandler{Auth: authService, Bridge: bridge}
	catalogueHandler := &http.CatalogueHandler{Catalogue: catalogueService, Bridge: bridge}
	reservationHandler := &http.ReservationHandler{Reservations: reservationService, Bridge: bridge}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, catalogueHandler, reservationHandler, bridge, zapLogger)

	// Create and start the HTTP server.
	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server",
		zap.String("addr", options.Addr),
		zap.String("api", options.APIBaseURL),
	)
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
