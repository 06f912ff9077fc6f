package controllers

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ladderhq/ladder/internal/app/models/dto"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// requiredEnvVars are reported (present or not) by the detailed health check
var requiredEnvVars = []string{
	"DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME", "JWT_SECRET",
}

// HealthController handles liveness and readiness endpoints
type HealthController struct {
	db *pgxpool.Pool
}

// NewHealthController creates a new HealthController
func NewHealthController(db *pgxpool.Pool) *HealthController {
	return &HealthController{db: db}
}

// Health handles GET /health, a cheap liveness probe
func (ctrl *HealthController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// DetailedHealth handles GET /health/detailed: database connectivity,
// required environment variables, and process memory
func (ctrl *HealthController) DetailedHealth(c *gin.Context) {
	status := "ok"
	httpStatus := http.StatusOK

	dbStatus := "ok"
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := ctrl.db.Ping(ctx); err != nil {
		dbStatus = "unreachable: " + err.Error()
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	envStatus := make(map[string]bool, len(requiredEnvVars))
	for _, name := range requiredEnvVars {
		_, present := os.LookupEnv(name)
		envStatus[name] = present
	}

	c.JSON(httpStatus, dto.DetailedHealthResponse{
		Status:               status,
		Timestamp:            time.Now(),
		Database:             dbStatus,
		EnvironmentVariables: envStatus,
		MemoryUsage:          collectMemoryUsage(),
	})
}

// collectMemoryUsage reports system and process memory in megabytes
func collectMemoryUsage() map[string]uint64 {
	usage := make(map[string]uint64)

	if vm, err := mem.VirtualMemory(); err == nil {
		usage["system_total_mb"] = vm.Total / 1024 / 1024
		usage["system_used_mb"] = vm.Used / 1024 / 1024
		usage["system_used_percent"] = uint64(vm.UsedPercent)
	}

	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if info, err := proc.MemoryInfo(); err == nil {
			usage["process_rss_mb"] = info.RSS / 1024 / 1024
		}
	}

	return usage
}
