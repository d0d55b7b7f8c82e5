// System information tool backed by gopsutil. The raw utterance picks
// which metric groups to report; with no specific keyword everything
// is reported.

package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// SystemInfoTool reports host resource usage (CPU, memory, disk, OS).
type SystemInfoTool struct {
	diskPath string
}

// NewSystemInfoTool creates a system-info tool reporting disk usage for
// the root filesystem.
func NewSystemInfoTool() *SystemInfoTool {
	return &SystemInfoTool{diskPath: "/"}
}

// Kind returns KindSystemInfo.
func (t *SystemInfoTool) Kind() Kind {
	return KindSystemInfo
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// Execute gathers the metric groups selected by keywords in the
// utterance. Partial failures degrade to a note inside the report; only
// a fully empty report falls back to a bare CPU usage line.
func (t *SystemInfoTool) Execute(ctx context.Context, inv Invocation) (string, error) {
	query := strings.ToLower(inv.Utterance)
	fetchAll := query == "" || containsAny(query, "all", "system", "spec", "specs")

	var sections []string

	if fetchAll || containsAny(query, "os", "platform", "machine", "processor", "cpu") {
		sections = append(sections, t.osSection(ctx))
	}
	if fetchAll || containsAny(query, "memory", "ram") {
		sections = append(sections, t.memorySection(ctx))
	}
	if fetchAll || containsAny(query, "disk", "storage", "space") {
		sections = append(sections, t.diskSection(ctx))
	}
	if fetchAll || containsAny(query, "gpu", "graphics", "card") {
		// No portable GPU probing; report it as unavailable detail so
		// the reply template still has a GPU slot to fill.
		sections = append(sections, "--- GPU Info ---\nNo dedicated GPU information available.")
	}

	if len(sections) == 0 {
		percents, err := cpu.PercentWithContext(ctx, 100*time.Millisecond, false)
		if err != nil || len(percents) == 0 {
			return "", fmt.Errorf("gathering system stats: %w", err)
		}
		return fmt.Sprintf("CPU Usage: %.1f%% (Specify 'os', 'memory', 'disk' for more info)", percents[0]), nil
	}

	return strings.Join(sections, "\n\n"), nil
}

func (t *SystemInfoTool) osSection(ctx context.Context) string {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return "--- System/OS Info ---\nUnavailable."
	}
	processor := info.KernelArch
	if cpus, err := cpu.InfoWithContext(ctx); err == nil && len(cpus) > 0 && cpus[0].ModelName != "" {
		processor = cpus[0].ModelName
	}
	return fmt.Sprintf("--- System/OS Info ---\nSystem: %s\nPlatform: %s %s\nProcessor: %s",
		info.OS, info.Platform, info.PlatformVersion, processor)
}

func (t *SystemInfoTool) memorySection(ctx context.Context) string {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return "--- Memory Info ---\nUnavailable."
	}
	const gb = 1 << 30
	return fmt.Sprintf("--- Memory Info ---\nTotal Memory: %.2f GB\nAvailable Memory: %.2f GB\nMemory Used: %.1f%%",
		float64(vm.Total)/gb, float64(vm.Available)/gb, vm.UsedPercent)
}

func (t *SystemInfoTool) diskSection(ctx context.Context) string {
	usage, err := disk.UsageWithContext(ctx, t.diskPath)
	if err != nil {
		return fmt.Sprintf("--- Disk Info (%s) ---\nUnavailable.", t.diskPath)
	}
	const gb = 1 << 30
	return fmt.Sprintf("--- Disk Info (%s) ---\nTotal Disk Space: %.2f GB\nFree Disk Space: %.2f GB\nDisk Used: %.1f%%",
		t.diskPath, float64(usage.Total)/gb, float64(usage.Free)/gb, usage.UsedPercent)
}

// Verify SystemInfoTool implements Tool.
var _ Tool = (*SystemInfoTool)(nil)
