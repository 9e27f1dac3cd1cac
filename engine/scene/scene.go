package scene

import (
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-rig/engine/instance"
	"github.com/Carmen-Shannon/oxy-rig/engine/logger"
	"github.com/sirupsen/logrus"
)

// Scene manages a registry of Instances keyed by ID and updates them each frame.
// Instances are fanned out across a worker pool, one task per instance, so a single
// instance is never touched by two goroutines within a frame.
// Scenes can be hot-swapped via the Active flag.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently updated by the engine.
	Active() bool

	// SetActive sets whether this scene is updated by the engine.
	SetActive(active bool)

	// Count returns the number of instances in the scene.
	//
	// Returns:
	//   - int: count of registered instances
	Count() int

	// Add registers an Instance with the scene. Instances without an ID are assigned one.
	//
	// Panics if inst is nil.
	//
	// Parameters:
	//   - inst: the instance to add
	//
	// Returns:
	//   - uint64: the assigned instance ID
	Add(inst instance.Instance) uint64

	// Get retrieves an Instance by its ID.
	// Returns nil if not found.
	//
	// Parameters:
	//   - id: the instance's unique ID
	//
	// Returns:
	//   - instance.Instance: the instance or nil
	Get(id uint64) instance.Instance

	// Remove removes an Instance from the scene by ID.
	//
	// Parameters:
	//   - id: the instance's unique ID
	//
	// Returns:
	//   - bool: true if an instance was removed
	Remove(id uint64) bool

	// Instances returns every registered instance ordered by ID.
	//
	// Returns:
	//   - []instance.Instance: the instances
	Instances() []instance.Instance

	// Clear removes all instances from the scene.
	Clear()

	// Update advances animation, recalculates the pose and skins every enabled instance.
	// It returns once every instance has finished. Update must not run concurrently with itself.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last frame in seconds
	//
	// Returns:
	//   - FrameStats: what the frame processed
	Update(deltaTime float32) FrameStats
}

// FrameStats summarises one Scene.Update.
type FrameStats struct {
	// Instances is the number of enabled instances updated.
	Instances int

	// Vertices is the number of vertices skinned across all instances.
	Vertices int
}

type scene struct {
	mu     *sync.RWMutex
	name   string
	active bool
	log    *logrus.Entry

	registry map[uint64]instance.Instance
	nextID   uint64

	skinningDisabled bool

	// computePool keeps a bounded set of goroutines alive across frames.
	computePool    worker.DynamicWorkerPool
	computeWorkers int

	// frame is reused by Update to avoid a per-frame allocation.
	frame []instance.Instance
}

var _ Scene = &scene{}

// NewScene creates a new Scene configured with the given options.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:             &sync.RWMutex{},
		name:           name,
		registry:       make(map[uint64]instance.Instance),
		nextID:         1,
		computeWorkers: max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	if s.log == nil {
		s.log = logger.Component("scene")
	}
	// Queue size of 256 leaves headroom for crowds larger than the worker count.
	s.computePool = worker.NewDynamicWorkerPool(s.computeWorkers, 256, 1*time.Second)

	s.log.WithFields(logrus.Fields{
		"scene":     name,
		"workers":   s.computeWorkers,
		"instances": len(s.registry),
	}).Info("scene created")
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.registry)
}

func (s *scene) Add(inst instance.Instance) uint64 {
	if inst == nil {
		panic("scene: cannot Add a nil Instance")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.register(inst)
}

// register assigns an ID if needed and stores inst. Callers hold the write lock.
func (s *scene) register(inst instance.Instance) uint64 {
	if inst.ID() == 0 {
		inst.SetID(atomic.AddUint64(&s.nextID, 1) - 1)
	}
	s.registry[inst.ID()] = inst
	return inst.ID()
}

func (s *scene) Get(id uint64) instance.Instance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Remove(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.registry[id]; !exists {
		return false
	}
	delete(s.registry, id)
	return true
}

func (s *scene) Instances() []instance.Instance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedInstances(make([]instance.Instance, 0, len(s.registry)))
}

// sortedInstances appends the registry to dst in ID order. Callers hold a read lock.
func (s *scene) sortedInstances(dst []instance.Instance) []instance.Instance {
	for _, inst := range s.registry {
		dst = append(dst, inst)
	}
	slices.SortFunc(dst, func(a, b instance.Instance) int {
		switch {
		case a.ID() < b.ID():
			return -1
		case a.ID() > b.ID():
			return 1
		default:
			return 0
		}
	})
	return dst
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.registry)
}

func (s *scene) Update(deltaTime float32) FrameStats {
	s.mu.Lock()
	s.frame = s.sortedInstances(s.frame[:0])
	frame := s.frame
	skin := !s.skinningDisabled
	s.mu.Unlock()

	// A WaitGroup is the per-frame barrier. pool.Wait() blocks until workers
	// idle-exit, which does not suit a frame loop.
	var (
		wg       sync.WaitGroup
		vertices atomic.Int64
		updated  int
	)
	for taskID, inst := range frame {
		if !inst.Enabled() {
			continue
		}
		updated++

		wg.Add(1)
		s.computePool.SubmitTask(worker.Task{
			ID: taskID,
			Do: func() (any, error) {
				defer wg.Done()
				inst.Update(deltaTime)
				if skin {
					vertices.Add(int64(inst.Skin()))
				}
				return nil, nil
			},
		})
	}
	wg.Wait()

	return FrameStats{Instances: updated, Vertices: int(vertices.Load())}
}
