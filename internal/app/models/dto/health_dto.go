package dto

import "time"

// HealthResponse is the basic liveness payload
type HealthResponse struct {
	Status    string    `json:"status" example:"ok"`
	Timestamp time.Time `json:"timestamp"`
}

// DetailedHealthResponse is the readiness payload
type DetailedHealthResponse struct {
	Status               string            `json:"status"`
	Timestamp            time.Time         `json:"timestamp"`
	Database             string            `json:"database"`
	EnvironmentVariables map[string]bool   `json:"environment_variables"`
	MemoryUsage          map[string]uint64 `json:"memory_usage"`
}
