package host

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"github.com/Syd25-legend/physigenai/internal/capability"
	"github.com/Syd25-legend/physigenai/internal/compiler"
	"github.com/Syd25-legend/physigenai/internal/scenario"
	"github.com/Syd25-legend/physigenai/internal/scene"
)

// Phase is the host's lifecycle state, exposed so UI chrome can render
// loading and error surfaces.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseMounting
	PhaseRecompiling
	PhaseRunning
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseMounting:
		return "mounting"
	case PhaseRecompiling:
		return "recompiling"
	case PhaseRunning:
		return "running"
	case PhaseError:
		return "error"
	}
	return "unknown"
}

// CompiledComponent is the executable artifact currently mounted. There is
// at most one logically current component; a superseded one is discarded
// the moment a newer SourceUnit wins its generation check.
type CompiledComponent struct {
	Render     compiler.RenderFunc
	Generation int64
	Unit       *scenario.SourceUnit
}

// Options configure a Host.
type Options struct {
	Pipeline *compiler.Pipeline
	Validate bool
	Logger   *zap.Logger
	OnError  func(message string)
	OnPhase  func(Phase)
}

// Host owns the frame loop's view of the world: the shared scene, the
// capability table, the frame gate, and the mount state machine
// (mounting -> running -> error|recompiling -> mounting...).
type Host struct {
	pipeline *compiler.Pipeline
	validate bool
	log      *zap.Logger
	onError  func(string)
	onPhase  func(Phase)

	caps     *capability.Set
	graph    *scene.Graph
	gate     *Gate
	controls *capability.Controls

	generation atomic.Int64

	mu        sync.Mutex
	phase     Phase
	current   *scenario.SourceUnit
	lastGood  *scenario.SourceUnit
	component *CompiledComponent
	lastErr   string
	clock     float64
}

// New builds a host with a fresh runtime, capability table, and the shared
// base scene (ground grid and vertical reference) that survives every
// remount and failure.
func New(opts Options) (*Host, error) {
	vm := goja.New()
	graph := scene.NewGraph()
	graph.Base().Add(scene.NewGrid(10, 10)).SetColor("gray")
	graph.Base().Add(scene.NewLine(scene.Vec3{}, scene.Vec3{Y: 4})).SetColor("gray")

	gate := NewGate()
	controls := capability.NewControls()
	caps, err := capability.New(vm, capability.Deps{
		Graph:    graph,
		Register: gate.Register,
		Controls: controls,
	})
	if err != nil {
		return nil, err
	}

	pipeline := opts.Pipeline
	if pipeline == nil {
		pipeline = compiler.NewPipeline(compiler.DefaultAdapter())
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Host{
		pipeline: pipeline,
		validate: opts.Validate,
		log:      log,
		onError:  opts.OnError,
		onPhase:  opts.OnPhase,
		caps:     caps,
		graph:    graph,
		gate:     gate,
		controls: controls,
		phase:    PhaseIdle,
	}, nil
}

// Install compiles and mounts a new SourceUnit, superseding whatever is
// mounted. Compilation runs synchronously on the caller's goroutine; the
// generation counter is bumped immediately so a slower, earlier install
// that finishes later can never clobber this one.
func (h *Host) Install(unit *scenario.SourceUnit) error {
	if unit == nil {
		return errors.New("host: nil scenario")
	}
	gen := h.generation.Add(1)

	h.mu.Lock()
	if h.phase == PhaseRunning {
		h.setPhaseLocked(PhaseRecompiling)
	}
	h.setPhaseLocked(PhaseMounting)
	h.mu.Unlock()

	h.log.Info("mounting scenario",
		zap.String("title", unit.Title),
		zap.Int64("generation", gen))

	if h.validate {
		if err := compiler.Validate(unit.Source); err != nil {
			return h.mountFailed(gen, unit, err)
		}
	}

	// Pure text stages first; the runtime stays untouched until this
	// generation is confirmed current.
	lowered, err := h.pipeline.Prepare(unit.Source)
	if err != nil {
		return h.mountFailed(gen, unit, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if gen != h.generation.Load() {
		h.log.Debug("discarding superseded mount", zap.Int64("generation", gen))
		return nil
	}

	// Previous component tears down here: its callbacks and scene nodes
	// detach, and any state it held becomes garbage.
	h.component = nil
	h.gate.Reset()
	h.controls.Reset()
	h.graph.ClearDynamic()
	h.clock = 0

	var render compiler.RenderFunc
	mountErr := supervise(unit.Title, func() error {
		var bindErr error
		render, bindErr = compiler.Bind(lowered, h.caps)
		if bindErr != nil {
			return bindErr
		}
		return render()
	})
	if gen != h.generation.Load() {
		h.gate.Reset()
		h.controls.Reset()
		h.graph.ClearDynamic()
		return nil
	}
	if mountErr != nil {
		h.failLocked(unit, mountErr)
		return mountErr
	}

	h.component = &CompiledComponent{Render: render, Generation: gen, Unit: unit}
	h.current = unit
	h.setPhaseLocked(PhaseRunning)
	h.log.Info("scenario running", zap.String("title", unit.Title))
	return nil
}

func (h *Host) mountFailed(gen int64, unit *scenario.SourceUnit, err error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if gen != h.generation.Load() {
		// Superseded while compiling; its failure is moot.
		return nil
	}
	h.failLocked(unit, err)
	return err
}

// failLocked replaces the mounted subtree with the diagnostic placeholder
// and reports upward. The frame loop itself keeps running and the host
// stays ready for the next SourceUnit; the failed unit is never retried
// automatically.
func (h *Host) failLocked(unit *scenario.SourceUnit, err error) {
	h.component = nil
	h.gate.Reset()
	h.graph.ShowDiagnostic()
	h.lastErr = err.Error()
	h.setPhaseLocked(PhaseError)
	h.log.Warn("scenario failed",
		zap.String("title", unit.Title),
		zap.Error(err))
	if h.onError != nil {
		h.onError(err.Error())
	}
}

// Tick advances the mounted component by one frame. Errors escaping the
// boundary, including divergence to non-finite state, demote the component
// to the diagnostic placeholder without stopping the loop.
func (h *Host) Tick(delta float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.phase != PhaseRunning || h.component == nil {
		return
	}
	if !h.gate.Paused() {
		h.clock += delta
	}
	unit := h.current

	err := supervise(unit.Title, func() error {
		return h.gate.Tick(delta, h.clock)
	})
	if err == nil && !h.graph.Finite() {
		err = &RuntimeError{Unit: unit.Title, Wrapped: ErrDiverged}
	}
	if err != nil {
		h.failLocked(unit, err)
		return
	}
	// The unit has survived a full frame; it is now the revert point.
	h.lastGood = unit
}

// ResetToLastKnownGood remounts the most recent unit that completed a
// healthy frame.
func (h *Host) ResetToLastKnownGood() error {
	h.mu.Lock()
	lg := h.lastGood
	h.mu.Unlock()
	if lg == nil {
		return errors.New("host: no known-good scenario to restore")
	}
	return h.Install(lg)
}

func (h *Host) setPhaseLocked(p Phase) {
	h.phase = p
	if h.onPhase != nil {
		h.onPhase(p)
	}
}

// TogglePause flips the global pause switch; every gated callback freezes
// or resumes on the next tick.
func (h *Host) TogglePause() bool { return h.gate.Toggle() }

func (h *Host) Paused() bool { return h.gate.Paused() }

func (h *Host) Phase() Phase {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.phase
}

func (h *Host) LastError() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastErr
}

func (h *Host) Current() *scenario.SourceUnit {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

func (h *Host) Generation() int64 { return h.generation.Load() }

func (h *Host) Clock() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.clock
}

// Graph exposes the shared scene for projection. Read it from the frame
// loop's goroutine only.
func (h *Host) Graph() *scene.Graph { return h.graph }

// Controls exposes the mounted scenario's control panel registrations.
func (h *Host) Controls() *capability.Controls { return h.controls }
