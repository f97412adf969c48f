// Package capability builds the fixed table of primitives exposed to
// compiled scenario code. The table is the complete contract: whatever is
// not injected here is unreachable from a mounted component.
package capability

import (
	"fmt"

	"github.com/dop251/goja"

	"github.com/Syd25-legend/physigenai/internal/scene"
)

// FrameFunc is one per-frame callback registered by compiled code, already
// converted to the Go side of the boundary.
type FrameFunc func(delta, elapsed float64) error

// Frame is the timing record passed to every per-frame callback.
type Frame struct {
	Delta float64
	Clock float64
}

// Ref is the reactive-state cell handed to compiled code. The host never
// inspects or migrates it; mutation happens entirely on the scenario's side.
type Ref struct {
	Current interface{}
}

// The fixed, ordered capability names. Compiled code receives these as the
// formal parameters of its synthesized constructor; the list never grows
// implicitly.
var names = [...]string{"MATH", "STATE", "FRAME", "SCENE", "CONTROLS", "PHYSICS"}

// Names returns the injection order shared by the scope binder.
func Names() []string {
	out := make([]string, len(names))
	copy(out, names[:])
	return out
}

// Deps are the live host objects the capability table closes over.
type Deps struct {
	Graph    *scene.Graph
	Register func(FrameFunc)
	Controls *Controls
}

// Set is one constructed capability table, valid for exactly one runtime.
type Set struct {
	vm     *goja.Runtime
	values []goja.Value
}

// New builds the capability table over the given runtime. The same table is
// reused for every compilation on that runtime.
func New(vm *goja.Runtime, deps Deps) (*Set, error) {
	if deps.Graph == nil || deps.Register == nil || deps.Controls == nil {
		return nil, fmt.Errorf("capability: incomplete dependencies")
	}
	vm.SetFieldNameMapper(goja.UncapFieldNameMapper())

	builders := map[string]func(*goja.Runtime, Deps) (*goja.Object, error){
		"MATH":     buildMath,
		"STATE":    buildState,
		"FRAME":    buildFrame,
		"SCENE":    buildScene,
		"CONTROLS": buildControls,
		"PHYSICS":  buildPhysics,
	}

	s := &Set{vm: vm, values: make([]goja.Value, 0, len(names))}
	for _, name := range names {
		obj, err := builders[name](vm, deps)
		if err != nil {
			return nil, fmt.Errorf("capability: building %s: %w", name, err)
		}
		s.values = append(s.values, obj)
	}
	return s, nil
}

func (s *Set) Runtime() *goja.Runtime { return s.vm }

// Values returns the live capability values in injection order.
func (s *Set) Values() []goja.Value {
	out := make([]goja.Value, len(s.values))
	copy(out, s.values)
	return out
}

// ns accumulates object construction errors so builders stay linear.
type ns struct {
	obj *goja.Object
	err error
}

func newNS(vm *goja.Runtime) *ns { return &ns{obj: vm.NewObject()} }

func (n *ns) set(name string, v interface{}) {
	if n.err == nil {
		n.err = n.obj.Set(name, v)
	}
}

func (n *ns) done() (*goja.Object, error) { return n.obj, n.err }

func buildMath(vm *goja.Runtime, _ Deps) (*goja.Object, error) {
	m := newNS(vm)
	m.set("vec3", func(x, y, z float64) scene.Vec3 { return scene.Vec3{X: x, Y: y, Z: z} })
	m.set("lerp", scene.Lerp)
	m.set("clamp", scene.Clamp)
	return m.done()
}

func buildState(vm *goja.Runtime, _ Deps) (*goja.Object, error) {
	st := newNS(vm)
	st.set("ref", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(&Ref{Current: call.Argument(0).Export()})
	})
	return st.done()
}

func buildFrame(vm *goja.Runtime, deps Deps) (*goja.Object, error) {
	f := newNS(vm)
	f.set("onFrame", func(call goja.FunctionCall) goja.Value {
		fn, ok := goja.AssertFunction(call.Argument(0))
		if !ok {
			panic(vm.NewTypeError("onFrame expects a function"))
		}
		deps.Register(func(delta, elapsed float64) error {
			_, err := fn(goja.Undefined(), vm.ToValue(&Frame{Delta: delta, Clock: elapsed}))
			return err
		})
		return goja.Undefined()
	})
	return f.done()
}

func buildScene(vm *goja.Runtime, deps Deps) (*goja.Object, error) {
	sc := newNS(vm)
	sc.set("box", func() *scene.Node { return deps.Graph.Mount(scene.NewBox()) })
	sc.set("sphere", func(r float64) *scene.Node { return deps.Graph.Mount(scene.NewSphere(r)) })
	sc.set("line", func(a, b scene.Vec3) *scene.Node { return deps.Graph.Mount(scene.NewLine(a, b)) })
	sc.set("grid", func(size float64, lines int) *scene.Node { return deps.Graph.Mount(scene.NewGrid(size, lines)) })
	sc.set("group", func() *scene.Node { return deps.Graph.Mount(scene.NewGroup()) })
	sc.set("clear", func() { deps.Graph.ClearDynamic() })
	return sc.done()
}

func buildControls(vm *goja.Runtime, deps Deps) (*goja.Object, error) {
	c := newNS(vm)
	c.set("slider", deps.Controls.Slider)
	c.set("plot", deps.Controls.Plot)
	return c.done()
}
