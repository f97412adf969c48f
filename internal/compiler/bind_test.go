package compiler

import (
	"strings"
	"testing"

	"github.com/dop251/goja"

	"github.com/Syd25-legend/physigenai/internal/capability"
	"github.com/Syd25-legend/physigenai/internal/scene"
)

type testMount struct {
	caps      *capability.Set
	graph     *scene.Graph
	callbacks []capability.FrameFunc
}

func newTestMount(t *testing.T) *testMount {
	t.Helper()
	m := &testMount{graph: scene.NewGraph()}
	caps, err := capability.New(goja.New(), capability.Deps{
		Graph:    m.graph,
		Register: func(fn capability.FrameFunc) { m.callbacks = append(m.callbacks, fn) },
		Controls: capability.NewControls(),
	})
	if err != nil {
		t.Fatalf("capability set: %v", err)
	}
	m.caps = caps
	return m
}

func compileAndMount(t *testing.T, m *testMount, raw string) error {
	t.Helper()
	render, err := NewPipeline(DefaultAdapter()).Compile(raw, m.caps)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	return render()
}

func TestBindMountsScene(t *testing.T) {
	m := newTestMount(t)
	err := compileAndMount(t, m, `
const b = box();
b.setPosition(0, 1, 0);
const s = sphere(0.5);
onFrame(function (frame) {
  s.setPosition(0, frame.clock, 0);
});`)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if got := m.graph.DynamicCount(); got != 2 {
		t.Errorf("expected 2 mounted nodes, got %d", got)
	}
	if len(m.callbacks) != 1 {
		t.Fatalf("expected 1 registered callback, got %d", len(m.callbacks))
	}
	if err := m.callbacks[0](0.016, 0.016); err != nil {
		t.Errorf("frame callback failed: %v", err)
	}
}

func TestBindCapabilityIsolation(t *testing.T) {
	m := newTestMount(t)
	err := compileAndMount(t, m, "hostInternals.leak();")
	if err == nil {
		t.Fatal("reference outside the capability set must fail")
	}
	if !strings.Contains(err.Error(), "hostInternals") {
		t.Errorf("diagnostic should name the unknown identifier: %v", err)
	}
}

func TestBindUndefinedCallTarget(t *testing.T) {
	m := newTestMount(t)
	_, err := NewPipeline(DefaultAdapter()).Compile("function Foo() { box(); }\nexport default Bar;", m.caps)
	if err == nil {
		t.Fatal("undefined export target must fail at synthesis invocation")
	}
}

func TestBindNonFunctionCallTarget(t *testing.T) {
	m := newTestMount(t)
	_, err := NewPipeline(DefaultAdapter()).Compile("export default 42;", m.caps)
	if err == nil {
		t.Fatal("non-callable call target must be rejected")
	}
}

func TestBindModuleShapeRendersOnCall(t *testing.T) {
	m := newTestMount(t)
	raw := `
function build(n) {
  for (let i = 0; i < n; i++) sphere(0.1);
}
export default function Scene() {
  build(3);
}`
	render, err := NewPipeline(DefaultAdapter()).Compile(raw, m.caps)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	// Module-shape helpers run at synthesis; scene building waits for the
	// render call.
	if got := m.graph.DynamicCount(); got != 0 {
		t.Fatalf("scene built before render: %d nodes", got)
	}
	if err := render(); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if got := m.graph.DynamicCount(); got != 3 {
		t.Errorf("expected 3 nodes after render, got %d", got)
	}
}

func TestBindFreshPerSource(t *testing.T) {
	m := newTestMount(t)
	p := NewPipeline(DefaultAdapter())
	r1, err := p.Compile("box();", m.caps)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := p.Compile("box();", m.caps)
	if err != nil {
		t.Fatal(err)
	}
	if err := r1(); err != nil {
		t.Fatal(err)
	}
	if err := r2(); err != nil {
		t.Fatal(err)
	}
	if got := m.graph.DynamicCount(); got != 2 {
		t.Errorf("two independent mounts should add 2 nodes, got %d", got)
	}
}
