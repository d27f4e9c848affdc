package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lcalzada-xor/riskmap/internal/adapters/storage"
	webserver "github.com/lcalzada-xor/riskmap/internal/adapters/web/server"
	"github.com/lcalzada-xor/riskmap/internal/adapters/web/websocket"
	"github.com/lcalzada-xor/riskmap/internal/config"
	"github.com/lcalzada-xor/riskmap/internal/core/services/assessment"
	"github.com/lcalzada-xor/riskmap/internal/core/services/mitigation"
	"github.com/lcalzada-xor/riskmap/internal/telemetry"
)

// Application wires storage, the assessment pipeline, and the web server.
// It acts as the Facade for the entire system.
type Application struct {
	Config      *config.Config
	Store       *storage.SQLiteAdapter
	Catalog     *mitigation.Catalog
	Pipeline    *assessment.Pipeline
	ProgressHub *websocket.ProgressHub
	WebServer   *webserver.Server

	shutdownTracer func(context.Context) error
}

// New creates a new Application instance and bootstraps its components.
func New(cfg *config.Config) (*Application, error) {
	app := &Application{
		Config: cfg,
	}

	if err := app.bootstrap(); err != nil {
		return nil, fmt.Errorf("application bootstrap failed: %w", err)
	}

	return app, nil
}

// bootstrap orchestrates the initialization sequence.
func (app *Application) bootstrap() error {
	// 1. Foundation & Infrastructure
	telemetry.InitMetrics()

	shutdown, err := telemetry.InitTracer()
	if err != nil {
		log.Printf("Warning: tracer initialization failed: %v", err)
	} else {
		app.shutdownTracer = shutdown
	}

	if err := app.initStorage(); err != nil {
		return err
	}

	// 2. Strategy Catalog
	if err := app.initCatalog(); err != nil {
		return err
	}

	// 3. Pipeline & Servers
	app.ProgressHub = websocket.NewProgressHub()

	app.Pipeline = assessment.New(assessment.Options{
		RiskAppetite:  app.Config.RiskAppetite,
		Contamination: app.Config.Contamination,
		HourlyRate:    app.Config.HourlyRate,
		Workers:       app.Config.Workers,
	}, app.Catalog, app.Store, app.ProgressHub)

	app.WebServer = webserver.NewServer(app.Config.Addr, app.Pipeline, app.Store, app.ProgressHub)

	return nil
}

func (app *Application) initStorage() error {
	if err := os.MkdirAll(filepath.Dir(app.Config.DBPath), 0755); err != nil {
		return fmt.Errorf("failed to create DB directory: %w", err)
	}

	store, err := storage.NewSQLiteAdapter(app.Config.DBPath)
	if err != nil {
		return fmt.Errorf("failed to init assessment storage: %w", err)
	}
	app.Store = store
	return nil
}

func (app *Application) initCatalog() error {
	if app.Config.CatalogPath == "" {
		app.Catalog = mitigation.NewCatalog()
		return nil
	}

	catalog, err := mitigation.LoadCatalog(app.Config.CatalogPath)
	if err != nil {
		return fmt.Errorf("failed to load strategy catalog %s: %w", app.Config.CatalogPath, err)
	}
	app.Catalog = catalog
	slog.Info("strategy catalog loaded", "path", app.Config.CatalogPath)
	return nil
}

// Run starts the web server and blocks until the context is cancelled.
func (app *Application) Run(ctx context.Context) error {
	slog.Info("Starting riskmap components...")

	errChan := make(chan error, 1)
	go func() {
		if err := app.WebServer.Run(ctx); err != nil {
			errChan <- fmt.Errorf("web server error: %w", err)
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		return <-errChan
	case err := <-errChan:
		return err
	}
}

// Shutdown releases resources held by the application.
func (app *Application) Shutdown(ctx context.Context) {
	if app.Store != nil {
		if err := app.Store.Close(); err != nil {
			log.Printf("Storage close error: %v", err)
		}
	}
	if app.shutdownTracer != nil {
		if err := app.shutdownTracer(ctx); err != nil {
			log.Printf("Tracer shutdown error: %v", err)
		}
	}
	slog.Info("riskmap shutdown complete")
}
