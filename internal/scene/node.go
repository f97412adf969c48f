package scene

import "math"

// Kind identifies the primitive a node renders as.
type Kind int

const (
	KindGroup Kind = iota
	KindBox
	KindSphere
	KindLine
	KindGrid
	KindDiagnostic
)

// Node is one element of the retained scene tree. Compiled scenario code
// holds node handles and mutates transforms between frames; the host only
// ever reads the tree when projecting it to the canvas.
type Node struct {
	kind     Kind
	pos      Vec3
	rot      Vec3
	scl      Vec3
	color    string
	children []*Node

	// primitive parameters
	radius    float64
	lineA     Vec3
	lineB     Vec3
	gridSize  float64
	gridLines int
}

func newNode(k Kind) *Node {
	return &Node{kind: k, scl: Vec3{1, 1, 1}}
}

func (n *Node) Kind() Kind     { return n.kind }
func (n *Node) Position() Vec3 { return n.pos }
func (n *Node) Rotation() Vec3 { return n.rot }
func (n *Node) Color() string  { return n.color }

func (n *Node) SetPosition(x, y, z float64) *Node {
	n.pos = Vec3{x, y, z}
	return n
}

func (n *Node) SetRotation(x, y, z float64) *Node {
	n.rot = Vec3{x, y, z}
	return n
}

func (n *Node) RotateX(a float64) *Node { n.rot.X += a; return n }
func (n *Node) RotateY(a float64) *Node { n.rot.Y += a; return n }
func (n *Node) RotateZ(a float64) *Node { n.rot.Z += a; return n }

func (n *Node) SetScale(x, y, z float64) *Node {
	n.scl = Vec3{x, y, z}
	return n
}

func (n *Node) SetColor(c string) *Node {
	n.color = c
	return n
}

func (n *Node) SetRadius(r float64) *Node {
	n.radius = r
	return n
}

// SetEnds repositions a line primitive in its parent's space.
func (n *Node) SetEnds(a, b Vec3) *Node {
	n.lineA, n.lineB = a, b
	return n
}

// Add attaches a child; returns the child so construction chains.
func (n *Node) Add(child *Node) *Node {
	n.children = append(n.children, child)
	return child
}

func (n *Node) transform(p Vec3) Vec3 {
	return p.Mul(n.scl).RotateEuler(n.rot).Add(n.pos)
}

// Edge is a world-space segment emitted by scene traversal.
type Edge struct {
	A, B  Vec3
	Color string
}

func (n *Node) appendEdges(out []Edge, parent func(Vec3) Vec3) []Edge {
	world := func(p Vec3) Vec3 { return parent(n.transform(p)) }
	switch n.kind {
	case KindBox:
		out = appendBoxEdges(out, world, n.color)
	case KindSphere:
		out = appendSphereEdges(out, world, n.radius, n.color)
	case KindLine:
		out = append(out, Edge{world(n.lineA), world(n.lineB), n.color})
	case KindGrid:
		out = appendGridEdges(out, world, n.gridSize, n.gridLines, n.color)
	case KindDiagnostic:
		out = appendBoxEdges(out, world, n.color)
		out = appendCrossEdges(out, world, n.color)
	}
	for _, c := range n.children {
		out = c.appendEdges(out, world)
	}
	return out
}

// finite reports false as soon as any transform in the subtree has diverged.
func (n *Node) finite() bool {
	if !n.pos.IsFinite() || !n.rot.IsFinite() || !n.scl.IsFinite() {
		return false
	}
	if n.kind == KindLine && (!n.lineA.IsFinite() || !n.lineB.IsFinite()) {
		return false
	}
	for _, c := range n.children {
		if !c.finite() {
			return false
		}
	}
	return true
}

var boxCorners = [8]Vec3{
	{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5},
	{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5},
}

var boxPairs = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

func appendBoxEdges(out []Edge, world func(Vec3) Vec3, color string) []Edge {
	for _, p := range boxPairs {
		out = append(out, Edge{world(boxCorners[p[0]]), world(boxCorners[p[1]]), color})
	}
	return out
}

const sphereSegments = 12

func appendSphereEdges(out []Edge, world func(Vec3) Vec3, r float64, color string) []Edge {
	if r <= 0 {
		r = 0.5
	}
	ring := func(point func(a float64) Vec3) {
		step := 2 * math.Pi / sphereSegments
		prev := point(0)
		for i := 1; i <= sphereSegments; i++ {
			cur := point(float64(i) * step)
			out = append(out, Edge{world(prev), world(cur), color})
			prev = cur
		}
	}
	ring(func(a float64) Vec3 { return Vec3{r * math.Cos(a), r * math.Sin(a), 0} })
	ring(func(a float64) Vec3 { return Vec3{r * math.Cos(a), 0, r * math.Sin(a)} })
	ring(func(a float64) Vec3 { return Vec3{0, r * math.Cos(a), r * math.Sin(a)} })
	return out
}

func appendGridEdges(out []Edge, world func(Vec3) Vec3, size float64, lines int, color string) []Edge {
	if lines < 1 {
		lines = 1
	}
	half := size / 2
	step := size / float64(lines)
	for i := 0; i <= lines; i++ {
		o := -half + float64(i)*step
		out = append(out, Edge{world(Vec3{o, 0, -half}), world(Vec3{o, 0, half}), color})
		out = append(out, Edge{world(Vec3{-half, 0, o}), world(Vec3{half, 0, o}), color})
	}
	return out
}

func appendCrossEdges(out []Edge, world func(Vec3) Vec3, color string) []Edge {
	out = append(out, Edge{world(Vec3{-0.5, -0.5, 0}), world(Vec3{0.5, 0.5, 0}), color})
	out = append(out, Edge{world(Vec3{-0.5, 0.5, 0}), world(Vec3{0.5, -0.5, 0}), color})
	return out
}
