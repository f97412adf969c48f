package compiler

import (
	"fmt"
	"strings"

	"github.com/dop251/goja"

	"github.com/Syd25-legend/physigenai/internal/capability"
)

// RenderFunc is the callable produced from one SourceUnit. Invoking it runs
// the scenario's render body against the capability set it was bound to.
type RenderFunc func() error

// preamble destructures the commonly-used members out of the composite
// capabilities so scenario code can reference them as free identifiers.
// Everything else stays reachable through the capability parameters.
const preamble = `var { vec3, lerp, clamp } = MATH;
var { ref } = STATE;
var { onFrame } = FRAME;
var { box, sphere, line, grid, group } = SCENE;
var { slider, plot } = CONTROLS;
`

// Bind wraps lowered source in a constructor whose formal parameters are
// exactly the capability names, invokes it immediately with the live
// capability values, and returns the resulting render function. Compiled
// code can only reach what was passed in; anything else fails with a
// reference error at invocation time.
//
// Synthesis is fresh for every SourceUnit; nothing is cached. Every error,
// including ones thrown during the immediate invocation, is returned to
// the caller unmodified.
func Bind(lowered *LoweredSource, caps *capability.Set) (RenderFunc, error) {
	var b strings.Builder
	b.WriteString("(function(")
	b.WriteString(strings.Join(capability.Names(), ", "))
	b.WriteString(") {\n")
	b.WriteString(preamble)
	b.WriteString(lowered.Text)
	b.WriteString("\nreturn ")
	b.WriteString(lowered.CallTarget)
	b.WriteString(";\n})")

	prog, err := goja.Compile("scenario.js", b.String(), false)
	if err != nil {
		// The wrapper can only fail here if the lowered source collides
		// with the preamble bindings; classify it with the source errors.
		return nil, &SyntaxError{Source: lowered.Text, Wrapped: err}
	}

	vm := caps.Runtime()
	wrapped, err := vm.RunProgram(prog)
	if err != nil {
		return nil, err
	}
	ctor, ok := goja.AssertFunction(wrapped)
	if !ok {
		return nil, fmt.Errorf("compiler: synthesized constructor is not callable")
	}

	component, err := ctor(goja.Undefined(), caps.Values()...)
	if err != nil {
		return nil, err
	}
	render, ok := goja.AssertFunction(component)
	if !ok {
		return nil, &ShapeError{Reason: fmt.Sprintf("call target %q is not a function", lowered.CallTarget)}
	}

	return func() error {
		_, callErr := render(goja.Undefined())
		return callErr
	}, nil
}

// Pipeline chains the three compile stages in their required order:
// sanitize, lower, bind. Stages never interleave and nothing is awaited
// mid-pipeline.
type Pipeline struct {
	adapter *Adapter
}

func NewPipeline(adapter *Adapter) *Pipeline {
	return &Pipeline{adapter: adapter}
}

// Prepare runs the pure text stages. Kept separate from Bind so a caller
// can discard superseded work before it touches the runtime.
func (p *Pipeline) Prepare(raw string) (*LoweredSource, error) {
	canon, err := Sanitize(raw)
	if err != nil {
		return nil, err
	}
	return p.adapter.Lower(canon)
}

// Compile runs the full pipeline against a capability set.
func (p *Pipeline) Compile(raw string, caps *capability.Set) (RenderFunc, error) {
	lowered, err := p.Prepare(raw)
	if err != nil {
		return nil, err
	}
	return Bind(lowered, caps)
}
