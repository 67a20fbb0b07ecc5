// internal/routes/routes.go
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"print-bridge/internal/config"
	"print-bridge/internal/handler"
	"print-bridge/internal/middleware"
	"print-bridge/internal/service"
	"print-bridge/internal/utils"
)

// Router holds all dependencies for routing
type Router struct {
	config           *config.Config
	logger           *zap.Logger
	discoveryService *service.PrinterDiscoveryService
	printService     *service.PrintService
	wsHandler        *handler.WebSocketHandler
	updates          handler.UpdateStatusProvider
}

// NewRouter creates a new router instance. updates may be nil when the
// update poller is disabled.
func NewRouter(
	config *config.Config,
	logger *zap.Logger,
	discoveryService *service.PrinterDiscoveryService,
	printService *service.PrintService,
	wsHandler *handler.WebSocketHandler,
	updates handler.UpdateStatusProvider,
) *Router {
	return &Router{
		config:           config,
		logger:           logger,
		discoveryService: discoveryService,
		printService:     printService,
		wsHandler:        wsHandler,
		updates:          updates,
	}
}

// SetupRouter creates and configures the Gin router
func (r *Router) SetupRouter() *gin.Engine {
	if r.config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else if r.config.IsDebugEnabled() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.TestMode)
	}

	router := gin.New()

	r.addMiddleware(router)
	r.addRoutes(router)

	return router
}

// addMiddleware adds middleware to the router
func (r *Router) addMiddleware(router *gin.Engine) {
	router.Use(middleware.RecoveryMiddleware(r.logger))
	router.Use(middleware.RequestIDMiddleware())

	serviceLogger := utils.NewServiceLogger(r.logger, "http-server")
	router.Use(middleware.LoggingMiddleware(serviceLogger))

	router.Use(middleware.CORSMiddleware(&r.config.Security))

	r.logger.Debug("Middleware configured")
}

// addRoutes sets up all application routes
func (r *Router) addRoutes(router *gin.Engine) {
	backendName := r.discoveryService.BackendName()

	var connections handler.ConnectionStatsProvider
	if r.wsHandler != nil {
		connections = r.wsHandler
	}

	healthHandler := handler.NewHealthHandler(r.config, backendName, r.updates, connections, r.logger)
	printerHandler := handler.NewPrinterHandler(r.discoveryService, r.printService, r.logger)
	systemHandler := handler.NewSystemHandler(r.config, backendName, r.updates, r.logger)

	healthHandler.RegisterRoutes(router.Group(""))

	apiV1 := router.Group("/api/v1")
	printerHandler.RegisterRoutes(apiV1)
	systemHandler.RegisterRoutes(apiV1)

	if r.wsHandler != nil {
		r.wsHandler.RegisterRoutes(router.Group("/ws"))
	}

	r.addDocumentationRoutes(router)

	r.logger.Info("All routes configured successfully")
}

// addDocumentationRoutes sets up documentation routes
func (r *Router) addDocumentationRoutes(router *gin.Engine) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	router.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
}
