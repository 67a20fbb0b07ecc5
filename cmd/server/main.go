// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "print-bridge/docs"
	"print-bridge/internal/backend"
	"print-bridge/internal/config"
	"print-bridge/internal/handler"
	"print-bridge/internal/routes"
	"print-bridge/internal/service"
	"print-bridge/internal/updater"
	"print-bridge/internal/utils"
	"print-bridge/pkg/printer"
)

// version is set at build time with -ldflags "-X main.version=..."
var version string

// Application represents the main application
type Application struct {
	config *config.Config
	logger *zap.Logger
	server *http.Server

	// Printing
	backendRegistry *backend.Registry
	printerBackend  printer.Backend

	// Services
	discoveryService *service.PrinterDiscoveryService
	printService     *service.PrintService

	// Events and updates
	eventBus  *handler.EventBus
	wsHandler *handler.WebSocketHandler
	poller    *updater.Poller

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// @title Print Bridge API
// @version 1.0.0
// @description Local raw receipt printing and update service for POS front ends

// @contact.name Print Bridge Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:17420
// @BasePath /api/v1
func main() {
	app, err := NewApplication()
	if err != nil {
		fmt.Printf("Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	if err := app.Start(); err != nil {
		app.logger.Fatal("Failed to start application", zap.Error(err))
	}
}

// NewApplication creates a new application instance
func NewApplication() (*Application, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if version != "" {
		cfg.App.Version = version
	}

	logger, err := utils.NewLogger(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	serviceLogger := utils.NewServiceLogger(logger, "print-bridge")
	serviceLogger.LogServiceStart(cfg.App.Version, cfg)

	app := &Application{
		config: cfg,
		logger: logger,
	}

	if err := app.initializeBackend(); err != nil {
		return nil, fmt.Errorf("failed to initialize printer backend: %w", err)
	}

	app.initializeServices()

	if err := app.initializeUpdater(); err != nil {
		return nil, fmt.Errorf("failed to initialize updater: %w", err)
	}

	app.initializeServer()

	return app, nil
}

// loadConfig reads PRINT_BRIDGE_CONFIG_FILE when set, otherwise searches the default paths
func loadConfig() (*config.Config, error) {
	if path := os.Getenv("PRINT_BRIDGE_CONFIG_FILE"); path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// initializeBackend selects the printer backend for this OS once
func (app *Application) initializeBackend() error {
	app.backendRegistry = backend.NewRegistry(app.logger)
	backend.RegisterDefaultBackends(app.backendRegistry, app.logger)

	goos := app.config.BackendOS()
	if !app.backendRegistry.IsSupported(goos) {
		app.logger.Warn("Printing is not supported on this platform, print requests will fail",
			zap.String("goos", goos),
			zap.Strings("supported", app.backendRegistry.SupportedPlatforms()),
		)
	}

	b, err := app.backendRegistry.CreateBackend(goos, backend.Dependencies{
		Printing: app.config.Printing,
		Logger:   app.logger,
	})
	if err != nil {
		return err
	}
	app.printerBackend = b

	if app.config.Printing.AllowSyntheticPrinters {
		app.logger.Warn("Synthetic printers enabled, empty discovery results will list mock printers")
	}
	return nil
}

// initializeServices creates service instances
func (app *Application) initializeServices() {
	app.discoveryService = service.NewPrinterDiscoveryService(app.printerBackend, &app.config.Printing, app.logger)
	app.printService = service.NewPrintService(app.printerBackend, &app.config.Printing, app.logger)

	app.eventBus = handler.NewEventBus(app.logger)

	app.logger.Info("Services initialized successfully",
		zap.String("backend", app.printerBackend.Name()),
	)
}

// initializeUpdater wires the update poller when enabled
func (app *Application) initializeUpdater() error {
	if !app.config.Update.Enabled {
		app.logger.Info("Update poller disabled")
		return nil
	}

	cfg := app.config.Update
	if err := os.MkdirAll(cfg.InstallDir, 0o755); err != nil {
		return fmt.Errorf("failed to create install dir: %w", err)
	}

	client := &http.Client{Timeout: cfg.RequestTimeout}
	source := updater.NewHTTPSource(cfg.Endpoint, cfg.StagingDir, client, app.logger)
	installer := updater.NewFileInstaller(cfg.InstallDir, app.config.App.Name, app.logger)

	app.poller = updater.NewPoller(source, installer, app.eventBus, app.config.App.Version, cfg.Interval, app.logger)

	app.logger.Info("Update poller initialized",
		zap.String("endpoint", cfg.Endpoint),
		zap.Duration("interval", cfg.Interval),
	)
	return nil
}

// initializeServer sets up HTTP server and routes
func (app *Application) initializeServer() {
	var updates handler.UpdateStatusProvider
	if app.poller != nil {
		updates = app.poller
	}

	app.wsHandler = handler.NewWebSocketHandler(app.eventBus, updates, app.config.Security.Origins(), app.logger)

	routerManager := routes.NewRouter(
		app.config,
		app.logger,
		app.discoveryService,
		app.printService,
		app.wsHandler,
		updates,
	)

	app.server = &http.Server{
		Addr:         app.config.GetServerAddr(),
		Handler:      routerManager.SetupRouter(),
		ReadTimeout:  app.config.Server.ReadTimeout,
		WriteTimeout: app.config.Server.WriteTimeout,
		IdleTimeout:  app.config.Server.IdleTimeout,
	}

	app.logger.Info("HTTP server initialized",
		zap.String("address", app.config.GetServerAddr()),
	)
}

// startBackgroundServices starts the event bus, websocket fan-out and update poller
func (app *Application) startBackgroundServices(ctx context.Context) {
	app.goBackground(func() { app.eventBus.Start(ctx) })
	app.goBackground(func() { app.wsHandler.Run(ctx) })

	if app.poller != nil {
		app.goBackground(func() {
			if err := app.poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				app.logger.Error("Update poller exited", zap.Error(err))
			}
		})
	}

	app.logger.Info("Background services started")
}

func (app *Application) goBackground(fn func()) {
	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		fn()
	}()
}

// waitForShutdown waits for shutdown signal and performs graceful shutdown
func (app *Application) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	app.logger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	app.shutdown()
}

// shutdown performs graceful shutdown
func (app *Application) shutdown() {
	serviceLogger := utils.NewServiceLogger(app.logger, "print-bridge")
	serviceLogger.LogServiceStop("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("HTTP server shutdown error", zap.Error(err))
	} else {
		app.logger.Info("HTTP server stopped")
	}

	// Stop the poller and event fan-out, then wait for them to return
	app.cancel()
	app.wg.Wait()
	app.logger.Info("Background services stopped")

	app.logger.Info("Application shutdown completed")

	if err := utils.CloseLogger(app.logger); err != nil {
		fmt.Printf("Logger close error: %v\n", err)
	}
}

// Start runs the HTTP server and background services until a shutdown signal
func (app *Application) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	app.cancel = cancel

	go func() {
		app.logger.Info("Starting HTTP server",
			zap.String("address", app.server.Addr),
		)

		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	app.startBackgroundServices(ctx)

	app.waitForShutdown()

	return nil
}
