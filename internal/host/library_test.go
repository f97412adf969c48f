package host

import (
	"testing"

	"github.com/Syd25-legend/physigenai/internal/scenario"
)

// Every built-in scenario must mount cleanly and survive a stretch of
// frames, with validation on, since these are the units a session falls
// back to when generation is unavailable.
func TestLibraryScenariosMountAndRun(t *testing.T) {
	for _, unit := range scenario.Entries() {
		unit := unit
		t.Run(unit.Title, func(t *testing.T) {
			h, err := New(Options{Validate: true})
			if err != nil {
				t.Fatal(err)
			}
			if err := h.Install(unit); err != nil {
				t.Fatalf("install: %v", err)
			}
			for i := 0; i < 120; i++ {
				h.Tick(1.0 / 60.0)
			}
			if got := h.Phase(); got != PhaseRunning {
				t.Fatalf("phase after 120 frames: %s (%s)", got, h.LastError())
			}
			if !h.Graph().Finite() {
				t.Error("scene diverged")
			}
		})
	}
}

func TestLibraryDefaultIsListed(t *testing.T) {
	def := scenario.Default()
	found := false
	for _, unit := range scenario.Entries() {
		if unit.ID == def.ID {
			found = true
		}
	}
	if !found {
		t.Error("default scenario missing from the library listing")
	}
}
