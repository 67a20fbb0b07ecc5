// internal/handler/health_handler.go
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"print-bridge/internal/backend"
	"print-bridge/internal/config"
	"print-bridge/internal/utils"
)

// ConnectionStatsProvider reports event stream connections
type ConnectionStatsProvider interface {
	GetConnectionStats() *ConnectionStats
}

// HealthHandler handles health check requests
type HealthHandler struct {
	config      *config.Config
	backendName string
	updates     UpdateStatusProvider
	connections ConnectionStatsProvider
	startedAt   time.Time
	logger      *utils.ServiceLogger
}

// NewHealthHandler creates a new health handler. updates and connections
// may be nil when the poller or event stream is not running.
func NewHealthHandler(cfg *config.Config, backendName string, updates UpdateStatusProvider, connections ConnectionStatsProvider, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		config:      cfg,
		backendName: backendName,
		updates:     updates,
		connections: connections,
		startedAt:   time.Now(),
		logger:      utils.NewServiceLogger(logger, "health-handler"),
	}
}

// RegisterRoutes registers health check routes
func (h *HealthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", h.HealthCheck)
	router.GET("/ready", h.ReadinessCheck)
	router.GET("/live", h.LivenessCheck)
}

// HealthCheck performs general health check
// @Summary Health check
// @Description Get overall service health including printer backend, update poller and event stream
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse "Service is healthy"
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	health := &HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Service:   h.config.App.Name,
		Version:   h.config.App.Version,
		Uptime:    time.Since(h.startedAt).String(),
		Checks:    make(map[string]CheckResult),
	}

	if h.backendName == backend.BackendUnsupported {
		health.Status = "degraded"
		health.Checks["printer_backend"] = CheckResult{
			Status:  "unsupported",
			Message: "No printer backend for " + h.config.BackendOS(),
		}
	} else {
		health.Checks["printer_backend"] = CheckResult{
			Status: "healthy",
			Data:   map[string]interface{}{"backend": h.backendName},
		}
	}

	if h.updates != nil {
		status := h.updates.Status()
		check := CheckResult{
			Status: "healthy",
			Data: map[string]interface{}{
				"phase":  status.Phase,
				"cycles": status.Cycles,
			},
		}
		if status.LastError != "" {
			check.Status = "warning"
			check.Message = status.LastError
		}
		health.Checks["update_poller"] = check
	}

	if h.connections != nil {
		stats := h.connections.GetConnectionStats()
		health.Checks["websocket"] = CheckResult{
			Status: "healthy",
			Data: map[string]interface{}{
				"connections":        stats.TotalConnections,
				"update_subscribers": stats.UpdateSubscribers,
			},
		}
	}

	c.JSON(http.StatusOK, health)
}

// ReadinessCheck reports whether printing is possible on this host
// @Summary Readiness check
// @Description Check if service is ready to accept print requests
// @Tags Health
// @Produce json
// @Success 200 {object} object{status=string,timestamp=string} "Service is ready"
// @Failure 503 {object} object{status=string,reason=string} "Service is not ready"
// @Router /ready [get]
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	if h.backendName == backend.BackendUnsupported {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "printing is not supported on this platform",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"timestamp": time.Now(),
	})
}

// LivenessCheck for liveness probes
// @Summary Liveness check
// @Description Check if service is alive
// @Tags Health
// @Produce json
// @Success 200 {object} object{status=string,timestamp=string} "Service is alive"
// @Router /live [get]
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"timestamp": time.Now(),
	})
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Service   string                 `json:"service"`
	Version   string                 `json:"version"`
	Uptime    string                 `json:"uptime"`
	Checks    map[string]CheckResult `json:"checks"`
}

// CheckResult represents individual check result
type CheckResult struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message,omitempty"`
	Data    map[string]interface{} `json:"data,omitempty"`
}
