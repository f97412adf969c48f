package scene

import (
	"math"
	"testing"
)

func TestVecOps(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	if got := a.Add(b); got != (Vec3{5, 7, 9}) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v", got)
	}
	if got := a.Cross(b); got != (Vec3{-3, 6, -3}) {
		t.Errorf("Cross = %v", got)
	}
	if got := (Vec3{3, 4, 0}).Length(); got != 5 {
		t.Errorf("Length = %v", got)
	}
	n := (Vec3{10, 0, 0}).Normalize()
	if math.Abs(n.X-1) > 1e-12 || n.Y != 0 || n.Z != 0 {
		t.Errorf("Normalize = %v", n)
	}
}

func TestRotateEuler(t *testing.T) {
	p := Vec3{1, 0, 0}
	got := p.RotateEuler(Vec3{0, 0, math.Pi / 2})
	if math.Abs(got.X) > 1e-9 || math.Abs(got.Y-1) > 1e-9 {
		t.Errorf("rotated to %v, want ~(0,1,0)", got)
	}
}

func TestBoxEdgeCount(t *testing.T) {
	g := NewGraph()
	g.Mount(NewBox())
	if got := len(g.Edges()); got != 12 {
		t.Errorf("expected 12 box edges, got %d", got)
	}
}

func TestTransformComposition(t *testing.T) {
	g := NewGraph()
	group := g.Mount(NewGroup())
	group.SetPosition(10, 0, 0)
	child := group.Add(NewLine(Vec3{}, Vec3{1, 0, 0}))
	child.SetPosition(0, 5, 0)

	edges := g.Edges()
	if len(edges) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(edges))
	}
	if edges[0].A != (Vec3{10, 5, 0}) {
		t.Errorf("line start = %v, want (10,5,0)", edges[0].A)
	}
	if edges[0].B != (Vec3{11, 5, 0}) {
		t.Errorf("line end = %v, want (11,5,0)", edges[0].B)
	}
}

func TestClearDynamicKeepsBase(t *testing.T) {
	g := NewGraph()
	g.Base().Add(NewGrid(10, 10))
	g.Mount(NewSphere(1))

	base := len(g.Base().appendEdges(nil, func(p Vec3) Vec3 { return p }))
	before := len(g.Edges())
	g.ClearDynamic()
	after := len(g.Edges())

	if after != base {
		t.Errorf("after clear, %d edges remain, want base %d", after, base)
	}
	if before <= after {
		t.Errorf("clear removed nothing (before %d, after %d)", before, after)
	}
}

func TestFiniteDetectsDivergence(t *testing.T) {
	g := NewGraph()
	n := g.Mount(NewSphere(1))
	if !g.Finite() {
		t.Fatal("fresh graph should be finite")
	}
	n.SetPosition(math.NaN(), 0, 0)
	if g.Finite() {
		t.Error("NaN position not detected")
	}
}

func TestDiagnosticPlaceholder(t *testing.T) {
	g := NewGraph()
	g.Mount(NewBox())
	g.ShowDiagnostic()
	if g.DynamicCount() != 1 {
		t.Fatalf("placeholder count = %d", g.DynamicCount())
	}
	// crossed box: 12 box edges + 2 cross strokes
	if got := len(g.Edges()); got != 14 {
		t.Errorf("diagnostic edges = %d, want 14", got)
	}
}
