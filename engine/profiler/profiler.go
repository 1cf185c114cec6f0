package profiler

import (
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-gltf/common"
)

// Profiler tracks parse throughput and memory statistics.
// Stats are logged at a configurable interval.
type Profiler struct {
	files          int
	bytes          int64
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// NewProfiler creates a new Profiler.
//
// Parameters:
//   - interval: the minimum time between two reports from Tick
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(interval time.Duration) *Profiler {
	p := &Profiler{
		lastTime:       time.Now(),
		updateInterval: interval,
	}
	runtime.ReadMemStats(&p.memStats)
	p.lastGCCount = p.memStats.NumGC
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return p
}

// Tick records one parsed file of the given size.
// Logs statistics when the update interval has elapsed.
//
// Parameters:
//   - size: the number of bytes parsed
//
// Returns:
//   - bool: true if stats were logged this tick
func (p *Profiler) Tick(size int64) bool {
	p.files++
	p.bytes += size
	if time.Since(p.lastTime) < p.updateInterval {
		return false
	}
	p.Flush()
	return true
}

// Flush logs the statistics gathered since the last report and resets the counters.
// Nothing is logged when no file was recorded.
func (p *Profiler) Flush() {
	if p.files == 0 {
		return
	}
	now := time.Now()
	elapsed := max(now.Sub(p.lastTime).Seconds(), 1e-9)

	runtime.ReadMemStats(&p.memStats)
	heapMB := float64(p.memStats.Alloc) / 1024 / 1024
	allocMB := float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024
	throughputMB := float64(p.bytes) / 1024 / 1024 / elapsed

	gcCount := p.memStats.NumGC
	var maxPauseUs uint64
	startIdx := p.lastGCCount
	if gcCount-startIdx > 256 {
		startIdx = gcCount - 256
	}
	for i := startIdx; i < gcCount; i++ {
		maxPauseUs = max(maxPauseUs, p.memStats.PauseNs[i%256]/1000)
	}

	common.LogInfo("[Profiler] files: %d | %.2f MB at %.2f MB/s | Heap: %.2f MB | Allocated: %.2f MB | GC: %d (max pause: %d µs)",
		p.files, float64(p.bytes)/1024/1024, throughputMB, heapMB, allocMB, gcCount-p.lastGCCount, maxPauseUs)

	p.files = 0
	p.bytes = 0
	p.lastTime = now
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
}

// Files returns the number of files recorded since the last report.
func (p *Profiler) Files() int {
	return p.files
}
