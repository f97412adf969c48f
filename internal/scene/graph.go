package scene

// Graph holds two subtrees: a base layer the host owns (ground grid, axes)
// and a dynamic layer populated by the currently mounted scenario. Remounts
// clear only the dynamic layer, so the shared scene survives any failure of
// compiled code.
type Graph struct {
	base    *Node
	dynamic *Node
}

func NewGraph() *Graph {
	return &Graph{
		base:    newNode(KindGroup),
		dynamic: newNode(KindGroup),
	}
}

// Base is the host-owned layer. Compiled code never sees it.
func (g *Graph) Base() *Node { return g.base }

// NewGroup creates a detached group node.
func NewGroup() *Node { return newNode(KindGroup) }

// NewBox creates a detached unit box; scale it for other dimensions.
func NewBox() *Node { return newNode(KindBox) }

func NewSphere(radius float64) *Node {
	n := newNode(KindSphere)
	n.radius = radius
	return n
}

func NewLine(a, b Vec3) *Node {
	n := newNode(KindLine)
	n.lineA, n.lineB = a, b
	return n
}

func NewGrid(size float64, lines int) *Node {
	n := newNode(KindGrid)
	n.gridSize, n.gridLines = size, lines
	return n
}

// Mount attaches a node to the dynamic layer and returns it.
func (g *Graph) Mount(n *Node) *Node {
	g.dynamic.children = append(g.dynamic.children, n)
	return n
}

// ClearDynamic drops every scenario-owned node. Handles held by stale
// compiled code keep working against detached nodes, which the host never
// renders again.
func (g *Graph) ClearDynamic() {
	g.dynamic = newNode(KindGroup)
}

// ShowDiagnostic replaces the dynamic layer with the in-place failure
// placeholder: a crossed box at the origin.
func (g *Graph) ShowDiagnostic() {
	g.ClearDynamic()
	d := newNode(KindDiagnostic)
	d.SetScale(2, 2, 2)
	d.SetPosition(0, 1, 0)
	d.SetColor("red")
	g.dynamic.children = append(g.dynamic.children, d)
}

// Edges flattens both layers into world-space segments for projection.
func (g *Graph) Edges() []Edge {
	ident := func(p Vec3) Vec3 { return p }
	out := g.base.appendEdges(nil, ident)
	return g.dynamic.appendEdges(out, ident)
}

// Finite reports whether every transform in the dynamic layer is still a
// real number. A NaN or Inf means the mounted scenario has diverged.
func (g *Graph) Finite() bool {
	return g.dynamic.finite()
}

// DynamicCount returns the number of top-level scenario nodes, used by the
// pre-mount validation gate and the TUI status line.
func (g *Graph) DynamicCount() int {
	return len(g.dynamic.children)
}
