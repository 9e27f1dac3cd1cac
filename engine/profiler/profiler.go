package profiler

import (
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-rig/engine/logger"
	"github.com/sirupsen/logrus"
)

// Stats is one reporting window of the Profiler.
type Stats struct {
	// TPS is the engine ticks per second over the window.
	TPS float64

	// InstancesPerSecond is the instance update rate over the window.
	InstancesPerSecond float64

	// VerticesPerSecond is the skinned vertex throughput over the window.
	VerticesPerSecond float64

	// HeapMB is the live heap size.
	HeapMB float64

	// AllocRateMB is the heap allocation rate in MB/s over the window.
	AllocRateMB float64

	// GCCount is the total number of completed GC cycles.
	GCCount uint32

	// MaxPauseUs is the longest GC pause in the window, in microseconds.
	MaxPauseUs uint64
}

// Profiler tracks tick rate, skinning throughput and memory statistics.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	log            *logrus.Entry
	frameCount     int
	instanceCount  int
	vertexCount    int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats
}

// NewProfiler creates a new Profiler.
// A non-positive interval defaults to 1 second.
//
// Parameters:
//   - interval: how often stats are logged
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(interval time.Duration) *Profiler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Profiler{
		log:            logger.Component("profiler"),
		lastTime:       time.Now(),
		updateInterval: interval,
	}
}

// Tick should be called once per engine tick with the work done in that tick.
// Logs performance statistics when the update interval has elapsed.
//
// Parameters:
//   - instances: instances updated this tick
//   - vertices: vertices skinned this tick
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(instances, vertices int) bool {
	p.frameCount++
	p.instanceCount += instances
	p.vertexCount += vertices

	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	secs := elapsed.Seconds()
	runtime.ReadMemStats(&p.memStats)

	// TotalAlloc only grows, so its delta is the churn over the window.
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc

	gcCount := p.memStats.NumGC
	var maxPauseUs uint64
	// PauseNs is a circular buffer of the last 256 pauses.
	startIdx := p.lastGCCount
	if gcCount-startIdx > 256 {
		startIdx = gcCount - 256
	}
	for i := startIdx; i < gcCount; i++ {
		maxPauseUs = max(maxPauseUs, p.memStats.PauseNs[i%256]/1000)
	}

	p.last = Stats{
		TPS:                float64(p.frameCount) / secs,
		InstancesPerSecond: float64(p.instanceCount) / secs,
		VerticesPerSecond:  float64(p.vertexCount) / secs,
		HeapMB:             float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB:        float64(allocDelta) / 1024 / 1024 / secs,
		GCCount:            gcCount,
		MaxPauseUs:         maxPauseUs,
	}

	p.log.WithFields(logrus.Fields{
		"tps":           p.last.TPS,
		"instances_s":   p.last.InstancesPerSecond,
		"vertices_s":    p.last.VerticesPerSecond,
		"heap_mb":       p.last.HeapMB,
		"alloc_rate_mb": p.last.AllocRateMB,
		"gc":            gcCount,
		"gc_max_us":     maxPauseUs,
	}).Info("profile")

	p.frameCount = 0
	p.instanceCount = 0
	p.vertexCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last returns the most recently logged stats.
//
// Returns:
//   - Stats: the last reporting window, or zero before the first report
func (p *Profiler) Last() Stats {
	return p.last
}
