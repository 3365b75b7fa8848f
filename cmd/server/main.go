// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/voxxy-presents/presents-api/internal/config"
	"github.com/voxxy-presents/presents-api/internal/database"
	"github.com/voxxy-presents/presents-api/internal/handler"
	"github.com/voxxy-presents/presents-api/internal/manualsales"
	"github.com/voxxy-presents/presents-api/internal/service"
	"github.com/voxxy-presents/presents-api/internal/store"
	memorystore "github.com/voxxy-presents/presents-api/internal/store/memory"
	mongostore "github.com/voxxy-presents/presents-api/internal/store/mongo"
	pgstore "github.com/voxxy-presents/presents-api/internal/store/postgres"
)

func main() {
	// .env is optional; real environments configure via the process env.
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load()
	if cfg.Features.DebugMode {
		log.SetLevel(logrus.DebugLevel)
	}
	log.WithFields(logrus.Fields{
		"environment": cfg.Environment,
		"data_source": cfg.DataSource,
	}).Info("starting")

	ctx := context.Background()

	st, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer st.Close()

	sales, err := manualsales.Open(manualsales.DefaultPath())
	if err != nil {
		log.Fatalf("manual sales: %v", err)
	}

	// Wire up layers.
	regSvc := service.NewRegistrationService(st)
	eventSvc := service.NewEventService(st)
	orgSvc := service.NewOrganizationService(st)
	h := handler.New(regSvc, eventSvc, orgSvc, sales)

	// Build the router.
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(handler.Logger(log))     // structured access log
	r.Use(handler.CORS)            // landing pages live on another origin
	h.Routes(r)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  cfg.RequestTimeout,
		WriteTimeout: cfg.RequestTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Run in a background goroutine so we can listen for shutdown signals.
	go func() {
		log.Infof("server listening on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}
	log.Info("server stopped")
}

// openStore selects the storage backend the environment config routes to.
func openStore(ctx context.Context, cfg config.Config, log *logrus.Logger) (store.Store, error) {
	switch cfg.DataSource {
	case config.SourcePostgres:
		pool, err := database.NewPool(ctx, cfg.PostgresDSN, log)
		if err != nil {
			return nil, err
		}
		return pgstore.New(ctx, pool)
	case config.SourceMongo:
		return mongostore.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case config.SourceMemory:
		log.Warn("using in-memory store; data will not survive a restart")
		return memorystore.New(), nil
	default:
		return nil, fmt.Errorf("unknown data source %q", cfg.DataSource)
	}
}
