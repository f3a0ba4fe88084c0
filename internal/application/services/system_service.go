package services

import (
	"os"
	"runtime"
	"time"
)

// SystemStatus is the payload behind the system widget
type SystemStatus struct {
	Hostname      string  `json:"hostname"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	GoVersion     string  `json:"go_version"`
	NumCPU        int     `json:"num_cpu"`
	Goroutines    int     `json:"goroutines"`
	HeapAllocMB   float64 `json:"heap_alloc_mb"`
	Version       string  `json:"version"`
}

// SystemService reports process and host health for the system widget
type SystemService struct {
	started time.Time
	version string
}

// NewSystemService creates a new system service
func NewSystemService(version string) *SystemService {
	return &SystemService{
		started: time.Now(),
		version: version,
	}
}

// Status returns a point-in-time snapshot of process health
func (s *SystemService) Status() SystemStatus {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	hostname, _ := os.Hostname()

	return SystemStatus{
		Hostname:      hostname,
		UptimeSeconds: time.Since(s.started).Seconds(),
		GoVersion:     runtime.Version(),
		NumCPU:        runtime.NumCPU(),
		Goroutines:    runtime.NumGoroutine(),
		HeapAllocMB:   float64(mem.HeapAlloc) / (1024 * 1024),
		Version:       s.version,
	}
}
