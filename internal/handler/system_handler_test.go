// internal/handler/system_handler_test.go
package handler

import (
	"net/http"
	"runtime"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"print-bridge/internal/config"
	"print-bridge/internal/updater"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "print-bridge",
			Version:     "1.4.0",
			Environment: "test",
		},
		Printing: config.PrintingConfig{Backend: "linux"},
	}
}

func newSystemRouter(updates UpdateStatusProvider) *gin.Engine {
	h := NewSystemHandler(testConfig(), "shell", updates, zap.NewNop())
	router := gin.New()
	h.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func TestSystemVersion(t *testing.T) {
	rec, resp := doJSON(t, newSystemRouter(nil), http.MethodGet, "/api/v1/system/version", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "print-bridge", data["name"])
	assert.Equal(t, "1.4.0", data["version"])
	assert.Equal(t, runtime.Version(), data["go_version"])
}

func TestSystemPlatform(t *testing.T) {
	rec, resp := doJSON(t, newSystemRouter(nil), http.MethodGet, "/api/v1/system/platform", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "linux", data["os"])
	assert.Equal(t, runtime.GOARCH, data["arch"])
	assert.Equal(t, "shell", data["backend"])
}

func TestSystemUpdateStatus(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		rec, resp := doJSON(t, newSystemRouter(nil), http.MethodGet, "/api/v1/system/update", nil)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.False(t, resp.Success)
	})

	t.Run("enabled", func(t *testing.T) {
		updates := &fakeUpdates{status: updater.Status{
			Phase:          updater.PhaseReady,
			CurrentVersion: "1.4.0",
			ReadyVersion:   "1.5.0",
			Cycles:         3,
		}}

		rec, resp := doJSON(t, newSystemRouter(updates), http.MethodGet, "/api/v1/system/update", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "READY", data["phase"])
		assert.Equal(t, "1.5.0", data["ready_version"])
	})
}
