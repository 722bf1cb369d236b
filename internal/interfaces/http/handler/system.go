package handler

import (
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

// DatasetStatus reports when the enriched dataset was last loaded.
type DatasetStatus interface {
	LoadedAt() time.Time
}

// SystemHandler handles health and system info endpoints.
type SystemHandler struct {
	BaseHandler
	appName   string
	env       string
	dataset   DatasetStatus
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(appName, env string, dataset DatasetStatus) *SystemHandler {
	return &SystemHandler{
		appName:   appName,
		env:       env,
		dataset:   dataset,
		startTime: time.Now(),
	}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	grp := rg.Group("/system")
	{
		grp.GET("/info", h.GetSystemInfo)
	}
}

// HealthResponse reports service liveness and dataset freshness.
type HealthResponse struct {
	Status          string `json:"status"`
	DatasetLoadedAt string `json:"dataset_loaded_at,omitempty"`
}

// Health handles GET /healthz. The dataset timestamp is informational;
// a not-yet-loaded dataset does not make the service unhealthy.
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{Status: "ok"}
	if h.dataset != nil {
		if loadedAt := h.dataset.LoadedAt(); !loadedAt.IsZero() {
			resp.DatasetLoadedAt = loadedAt.Format(time.RFC3339)
		}
	}
	h.Success(c, resp)
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Env       string `json:"env"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// GetSystemInfo handles GET /system/info
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	h.Success(c, SystemInfoResponse{
		Name:      h.appName,
		Env:       h.env,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}
