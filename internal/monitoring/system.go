package monitoring

import (
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// SystemSnapshot is a point-in-time view of host resource usage.
type SystemSnapshot struct {
	CPUPercent  float64 `json:"cpu_percent"`
	MemUsed     uint64  `json:"mem_used"`
	MemTotal    uint64  `json:"mem_total"`
	DiskUsed    uint64  `json:"disk_used"`
	DiskTotal   uint64  `json:"disk_total"`
	CollectedAt string  `json:"collected_at"`
}

// Snapshot samples CPU, memory and disk usage.
func Snapshot() SystemSnapshot {
	snap := SystemSnapshot{CollectedAt: time.Now().Format(time.RFC3339)}

	if percents, err := cpu.Percent(time.Second, false); err == nil && len(percents) > 0 {
		snap.CPUPercent = percents[0]
	}
	if memStats, err := mem.VirtualMemory(); err == nil {
		snap.MemUsed = memStats.Used
		snap.MemTotal = memStats.Total
	}
	if diskStats, err := disk.Usage("/"); err == nil {
		snap.DiskUsed = diskStats.Used
		snap.DiskTotal = diskStats.Total
	}

	return snap
}
