package health

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
)

// Pinger is anything that can prove the spreadsheet is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthChecker struct {
	store      Pinger
	redisCheck func() bool
	configErr  error
}

type HealthStatus struct {
	Status string         `json:"status"`
	Store  ComponentState `json:"store"`
	Error  string         `json:"error,omitempty"`
}

type ComponentState struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
	Error        string `json:"error,omitempty"`
}

type DetailedStatus struct {
	HealthStatus
	Redis  string      `json:"redis"`
	Memory *MemoryInfo `json:"memory,omitempty"`
}

type MemoryInfo struct {
	TotalMB     uint64  `json:"total_mb"`
	UsedMB      uint64  `json:"used_mb"`
	UsedPercent float64 `json:"used_percent"`
}

// NewHealthChecker builds a checker over store. redisCheck may be nil when
// Redis is not configured.
func NewHealthChecker(store Pinger, redisCheck func() bool) *HealthChecker {
	return &HealthChecker{store: store, redisCheck: redisCheck}
}

// NewConfigErrorChecker reports unhealthy until the configuration is fixed.
func NewConfigErrorChecker(err error) *HealthChecker {
	return &HealthChecker{configErr: err}
}

func (h *HealthChecker) CheckBasic(ctx context.Context) HealthStatus {
	if h.configErr != nil {
		return HealthStatus{
			Status: "unhealthy",
			Store:  ComponentState{Status: "unconfigured"},
			Error:  h.configErr.Error(),
		}
	}

	storeHealth := h.checkStore(ctx)

	status := "healthy"
	if storeHealth.Status != "healthy" {
		status = "unhealthy"
	}

	return HealthStatus{
		Status: status,
		Store:  storeHealth,
	}
}

func (h *HealthChecker) CheckDetailed(ctx context.Context) DetailedStatus {
	out := DetailedStatus{HealthStatus: h.CheckBasic(ctx), Redis: "disabled"}

	if h.redisCheck != nil {
		out.Redis = "unhealthy"
		if h.redisCheck() {
			out.Redis = "healthy"
		}
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		out.Memory = &MemoryInfo{
			TotalMB:     vm.Total / 1024 / 1024,
			UsedMB:      vm.Used / 1024 / 1024,
			UsedPercent: vm.UsedPercent,
		}
	}

	return out
}

func (h *HealthChecker) checkStore(ctx context.Context) ComponentState {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	start := time.Now()
	err := h.store.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return ComponentState{
			Status:       "unhealthy",
			ResponseTime: responseTime,
			Error:        err.Error(),
		}
	}

	return ComponentState{
		Status:       "healthy",
		ResponseTime: responseTime,
	}
}
