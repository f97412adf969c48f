package capability

import "github.com/dop251/goja"

const gravity = 9.81

// buildPhysics exposes the numeric helpers scenarios lean on: the gravity
// constant, a fourth-order Runge-Kutta step over a scenario-supplied
// derivative function, and a damped-spring acceleration.
func buildPhysics(vm *goja.Runtime, _ Deps) (*goja.Object, error) {
	p := newNS(vm)
	p.set("gravity", gravity)
	p.set("spring", func(x, v, k, damping float64) float64 {
		return -k*x - damping*v
	})
	p.set("rk4", func(call goja.FunctionCall) goja.Value {
		fn, ok := goja.AssertFunction(call.Argument(0))
		if !ok {
			panic(vm.NewTypeError("rk4 expects a derivative function"))
		}
		var state []float64
		if err := vm.ExportTo(call.Argument(1), &state); err != nil {
			panic(vm.NewTypeError("rk4 state must be a numeric array"))
		}
		t := call.Argument(2).ToFloat()
		dt := call.Argument(3).ToFloat()

		deriv := func(x []float64, at float64) []float64 {
			v, err := fn(goja.Undefined(), vm.ToValue(x), vm.ToValue(at))
			if err != nil {
				panic(err)
			}
			var out []float64
			if convErr := vm.ExportTo(v, &out); convErr != nil || len(out) != len(x) {
				panic(vm.NewTypeError("derivative must return an array matching the state"))
			}
			return out
		}

		k1 := deriv(state, t)
		k2 := deriv(shifted(state, k1, dt/2), t+dt/2)
		k3 := deriv(shifted(state, k2, dt/2), t+dt/2)
		k4 := deriv(shifted(state, k3, dt), t+dt)

		next := make([]float64, len(state))
		for i := range state {
			next[i] = state[i] + dt/6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
		}
		return vm.ToValue(next)
	})
	return p.done()
}

func shifted(x, dx []float64, h float64) []float64 {
	out := make([]float64, len(x))
	for i := range x {
		out[i] = x[i] + h*dx[i]
	}
	return out
}
