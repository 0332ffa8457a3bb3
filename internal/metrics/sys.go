package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// SysHealth represents real-time process and storage metrics.
type SysHealth struct {
	AllocMB     uint64
	SysMB       uint64
	NumGC       uint32
	Goroutines  int
	ArchiveSize string
	PlanFiles   int
}

// GetSysHealth collects real-time health data for the given archive path.
func GetSysHealth(archivePath string) SysHealth {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	size, files := archiveUsage(archivePath)

	return SysHealth{
		AllocMB:     m.Alloc / 1024 / 1024,
		SysMB:       m.Sys / 1024 / 1024,
		NumGC:       m.NumGC,
		Goroutines:  runtime.NumGoroutine(),
		ArchiveSize: formatSize(size),
		PlanFiles:   files,
	}
}

func archiveUsage(path string) (int64, int) {
	var size int64
	var files int
	_ = filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
			files++
		}
		return nil
	})
	return size, files
}

func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
