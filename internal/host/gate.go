package host

import (
	"sync/atomic"

	"github.com/Syd25-legend/physigenai/internal/capability"
)

// Gate intercepts every per-frame callback registration made by compiled
// code and wraps each with the shared pause switch. Because the wrap
// happens at the registration boundary, pausing takes effect on the next
// tick for every callback, however deeply a sub-component registered it.
//
// The gate only covers frame callbacks; a scenario driving state from a
// timer is not frozen by it.
type Gate struct {
	paused    atomic.Bool
	callbacks []capability.FrameFunc
}

func NewGate() *Gate { return &Gate{} }

// Register wraps and stores one callback. This is the replacement value for
// the frame-registration capability.
func (g *Gate) Register(fn capability.FrameFunc) {
	g.callbacks = append(g.callbacks, func(delta, elapsed float64) error {
		if g.paused.Load() {
			return nil
		}
		return fn(delta, elapsed)
	})
}

// Tick fires every registered callback in registration order, stopping at
// the first failure.
func (g *Gate) Tick(delta, elapsed float64) error {
	for _, fn := range g.callbacks {
		if err := fn(delta, elapsed); err != nil {
			return err
		}
	}
	return nil
}

// Reset drops all registrations. The pause flag survives a remount.
func (g *Gate) Reset() { g.callbacks = nil }

func (g *Gate) SetPaused(p bool) { g.paused.Store(p) }
func (g *Gate) Paused() bool     { return g.paused.Load() }

func (g *Gate) Toggle() bool {
	p := !g.paused.Load()
	g.paused.Store(p)
	return p
}
