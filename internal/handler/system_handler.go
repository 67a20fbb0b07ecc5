// internal/handler/system_handler.go
package handler

import (
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"print-bridge/internal/config"
	"print-bridge/internal/utils"
)

// SystemHandler exposes application and platform information
type SystemHandler struct {
	config      *config.Config
	backendName string
	updates     UpdateStatusProvider
	logger      *utils.ServiceLogger
}

// NewSystemHandler creates a new system handler. updates may be nil when
// the update poller is disabled.
func NewSystemHandler(cfg *config.Config, backendName string, updates UpdateStatusProvider, logger *zap.Logger) *SystemHandler {
	return &SystemHandler{
		config:      cfg,
		backendName: backendName,
		updates:     updates,
		logger:      utils.NewServiceLogger(logger, "system-handler"),
	}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(router *gin.RouterGroup) {
	system := router.Group("/system")
	{
		system.GET("/version", h.GetVersion)
		system.GET("/platform", h.GetPlatform)
		system.GET("/update", h.GetUpdateStatus)
	}
}

// VersionResponse describes the running build
type VersionResponse struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
	GoVersion   string `json:"go_version"`
}

// PlatformResponse describes the host and the selected printer backend
type PlatformResponse struct {
	OS      string `json:"os"`
	Arch    string `json:"arch"`
	Backend string `json:"backend"`
}

// GetVersion returns the application version
// @Summary Application version
// @Tags System
// @Produce json
// @Success 200 {object} utils.APIResponse{data=VersionResponse}
// @Router /system/version [get]
func (h *SystemHandler) GetVersion(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Version retrieved successfully", &VersionResponse{
		Name:        h.config.App.Name,
		Version:     h.config.App.Version,
		Environment: h.config.App.Environment,
		GoVersion:   runtime.Version(),
	})
}

// GetPlatform returns the OS family and printer backend
// @Summary Platform information
// @Tags System
// @Produce json
// @Success 200 {object} utils.APIResponse{data=PlatformResponse}
// @Router /system/platform [get]
func (h *SystemHandler) GetPlatform(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "Platform retrieved successfully", &PlatformResponse{
		OS:      h.config.BackendOS(),
		Arch:    runtime.GOARCH,
		Backend: h.backendName,
	})
}

// GetUpdateStatus returns the update poller state
// @Summary Update status
// @Tags System
// @Produce json
// @Success 200 {object} utils.APIResponse{data=updater.Status}
// @Failure 503 {object} utils.APIResponse "Updates disabled"
// @Router /system/update [get]
func (h *SystemHandler) GetUpdateStatus(c *gin.Context) {
	if h.updates == nil {
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "Update poller is disabled", nil)
		return
	}
	status := h.updates.Status()
	utils.SuccessResponse(c, http.StatusOK, "Update status retrieved successfully", &status)
}
