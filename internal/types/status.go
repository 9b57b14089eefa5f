package types

import (
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

type ServerStatus struct {
	CPUCount      int     `json:"cpu_count"`
	MemoryTotal   uint64  `json:"memory_total"`
	MemoryUsedPct float64 `json:"memory_used_pct"`
	UptimeSeconds uint64  `json:"uptime_seconds"`
	Time          string  `json:"time"`
}

func NewServerStatus() (*ServerStatus, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return nil, err
	}

	cpuCount, err := cpu.Counts(true)
	if err != nil {
		return nil, err
	}

	uptime, err := host.Uptime()
	if err != nil {
		return nil, err
	}

	return &ServerStatus{
		CPUCount:      cpuCount,
		MemoryTotal:   vm.Total,
		MemoryUsedPct: vm.UsedPercent,
		UptimeSeconds: uptime,
		Time:          time.Now().Format(time.RFC3339),
	}, nil
}
