package engine

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-rig/engine/logger"
	"github.com/Carmen-Shannon/oxy-rig/engine/profiler"
	"github.com/Carmen-Shannon/oxy-rig/engine/scene"
	"github.com/Carmen-Shannon/oxy-rig/engine/skinning"
	"github.com/sirupsen/logrus"
)

// ErrAlreadyRunning is returned by Run when the engine loop is already active.
var ErrAlreadyRunning = errors.New("engine: already running")

// engine implements the Engine interface.
// Drives the fixed-rate tick loop that updates every active scene.
type engine struct {
	mu  sync.RWMutex
	log *logrus.Entry

	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running atomic.Bool

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	engineTickRate atomic.Int64 // time.Duration
	tickCallback   func(deltaTime float32)

	scenes map[int]scene.Scene
}

// Engine is the main entry point for the runtime.
// It runs a headless fixed-rate loop that animates and skins every active scene.
type Engine interface {
	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// TickRate returns the current tick period.
	//
	// Returns:
	//   - time.Duration: the time between ticks
	TickRate() time.Duration

	// SetTickCallback registers the function called each engine tick before scenes update.
	// Use this for game logic such as starting and stopping animations.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// AddScene registers a scene at the given key.
	// Scenes are updated in ascending key order.
	//
	// Parameters:
	//   - key: the order key (lower updates first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given key.
	//
	// Parameters:
	//   - key: the key of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the key of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by order.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Step runs a single tick synchronously with the given delta time.
	//
	// Parameters:
	//   - deltaTime: elapsed time in seconds
	//
	// Returns:
	//   - scene.FrameStats: the work done across all active scenes
	Step(deltaTime float32) scene.FrameStats

	// Run starts the tick loop and blocks until ctx is done or Quit is called.
	//
	// Parameters:
	//   - ctx: cancels the loop when done
	//
	// Returns:
	//   - error: ctx.Err() if the context ended the loop, ErrAlreadyRunning if a loop is active, nil after Quit
	Run(ctx context.Context) error

	// Quit signals the tick loop to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		scenes:          make(map[int]scene.Scene),
		profiler:        profiler.NewProfiler(time.Second),
	}
	e.engineTickRate.Store(int64(time.Second / 60))

	for _, opt := range options {
		opt(e)
	}

	if e.log == nil {
		e.log = logger.Component("engine")
	}
	return e
}

func (e *engine) Run(ctx context.Context) error {
	if !e.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer e.running.Store(false)

	rate := e.TickRate()
	e.log.WithFields(logrus.Fields{
		"tick_rate":    rate.String(),
		"cpu_features": skinning.CPUFeatures(),
	}).Info("engine started")
	defer e.log.Info("engine stopped")

	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.quitChannel:
			return nil
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now
			e.Step(dt)
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
		}
	}
}

func (e *engine) Step(deltaTime float32) scene.FrameStats {
	if e.tickCallback != nil {
		e.tickCallback(deltaTime)
	}

	var total scene.FrameStats
	for _, s := range e.activeScenes() {
		stats := s.Update(deltaTime)
		total.Instances += stats.Instances
		total.Vertices += stats.Vertices
	}

	if e.profilingEnabled.Load() && e.profiler != nil {
		e.profiler.Tick(total.Instances, total.Vertices)
	}
	return total
}

// activeScenes returns the active scenes in ascending key order.
func (e *engine) activeScenes() []scene.Scene {
	e.mu.RLock()
	defer e.mu.RUnlock()

	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	active := make([]scene.Scene, 0, len(keys))
	for _, k := range keys {
		if s := e.scenes[k]; s.Active() {
			active = append(active, s)
		}
	}
	return active
}

// Quit signals the tick loop to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

// SetTickRate sets the engine tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	newRate := tickInterval(fps)
	e.engineTickRate.Store(int64(newRate))

	if !e.running.Load() {
		return
	}

	// Non-blocking send; a pending update is replaced.
	select {
	case e.tickRateChannel <- newRate:
	default:
		select {
		case <-e.tickRateChannel:
		default:
		}
		e.tickRateChannel <- newRate
	}
}

func (e *engine) TickRate() time.Duration {
	return time.Duration(e.engineTickRate.Load())
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	e.mu.RLock()
	defer e.mu.RUnlock()
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}

// tickInterval converts a tick rate to a ticker period. Non-positive rates default to 60Hz.
func tickInterval(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(float64(time.Second) / fps)
}
