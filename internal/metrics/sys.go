package metrics

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"time"
)

var processStart = time.Now()

// HostStatus is a point-in-time snapshot of the process and its data
// directory, surfaced through the bot's admin report.
type HostStatus struct {
	Uptime      string
	HeapAllocMB uint64
	HeapSysMB   uint64
	NumGC       uint32
	Goroutines  int
	DataSize    string
}

// Snapshot collects the current host status. dataDir is the directory holding
// the metrics database.
func Snapshot(dataDir string) HostStatus {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return HostStatus{
		Uptime:      time.Since(processStart).Round(time.Second).String(),
		HeapAllocMB: m.Alloc >> 20,
		HeapSysMB:   m.Sys >> 20,
		NumGC:       m.NumGC,
		Goroutines:  runtime.NumGoroutine(),
		DataSize:    humanSize(dirSize(dataDir)),
	}
}

func dirSize(dir string) int64 {
	var total int64
	_ = filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if info, err := d.Info(); err == nil {
			total += info.Size()
		}
		return nil
	})
	return total
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(n)/float64(1<<30))
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/float64(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
