package storage

import "github.com/san-kum/particular/internal/vecmath"

// maxOrthtreeDepth bounds recursive subdivision. Two distinct particles always end up in
// different orthants eventually, but exactly-coincident (or near-ulp) positions never do;
// past this depth the remaining particles are coalesced into one leaf carrying their summed
// mass and mass-weighted centroid instead of recursing forever.
const maxOrthtreeDepth = 64

// NodeID indexes into a RootedOrthtree's node and data arrays. The empty-child sentinel is -1.
type NodeID = int32

const emptyNode NodeID = -1

// EmptyNode is the sentinel Children returns for an orthant with no particles in it.
const EmptyNode NodeID = emptyNode

// MassAggregate is the monopole (center-of-mass, total-mass) summary Barnes-Hut compares against
// its opening-angle criterion, whether the node is a leaf (one or more coincident particles) or
// an internal node (the mass-weighted combination of its children).
type MassAggregate[S vecmath.Float, V vecmath.Vector[S, V]] struct {
	CenterOfMass V
	TotalMass    S
}

type orthNode[S vecmath.Float, V vecmath.Vector[S, V]] struct {
	isLeaf bool

	// Leaf fields: indices into the affecting-particle slice passed to NewRootedOrthtree. Usually
	// length 1; longer only when maxOrthtreeDepth forced a coincident-point merge.
	leafParticles []int

	// Internal fields.
	children []NodeID // length 1<<dim, emptyNode where an orthant has no particles
	bboxMin  V
	bboxMax  V
}

// RootedOrthtree is an arena-based, pointer-free quadtree (dim==2) or octree (dim==3) over a
// fixed set of affecting particles. Nodes are addressed by NodeID into a flat slice rather than
// linked by pointers; each node still allocates its own child-id or leaf-index slice.
type RootedOrthtree[S vecmath.Float, V vecmath.Vector[S, V]] struct {
	root  NodeID
	nodes []orthNode[S, V]
	data  []MassAggregate[S, V]
	dim   int
}

// NewRootedOrthtree builds a tree over affecting, whose bounding box is first grown to a square
// (or cube) using its largest axis extent so every orthant at a given depth has equal width.
func NewRootedOrthtree[S vecmath.Float, V vecmath.Vector[S, V]](affecting []PointMass[S, V]) *RootedOrthtree[S, V] {
	var zero V
	dim := zero.Dim()

	t := &RootedOrthtree[S, V]{dim: dim}
	if len(affecting) == 0 {
		t.root = emptyNode
		return t
	}

	bboxMin, bboxMax := boundingBox(affecting)
	indices := make([]int, len(affecting))
	for i := range affecting {
		indices[i] = i
	}
	t.root = t.build(affecting, indices, bboxMin, bboxMax, 0)
	return t
}

// Root returns the id of the tree's root node, or emptyNode if there were no affecting particles.
func (t *RootedOrthtree[S, V]) Root() NodeID { return t.root }

// IsEmpty reports whether the tree has no nodes.
func (t *RootedOrthtree[S, V]) IsEmpty() bool { return t.root == emptyNode }

// Data returns the aggregate stored at id.
func (t *RootedOrthtree[S, V]) Data(id NodeID) MassAggregate[S, V] { return t.data[id] }

// IsLeaf reports whether id names a leaf node.
func (t *RootedOrthtree[S, V]) IsLeaf(id NodeID) bool { return t.nodes[id].isLeaf }

// BoxWidth returns an internal node's square/cube side length, used by the opening-angle test.
func (t *RootedOrthtree[S, V]) BoxWidth(id NodeID) S {
	n := &t.nodes[id]
	diag := n.bboxMax.Sub(n.bboxMin).ToArray()
	return diag[0]
}

// Children returns the (possibly empty) child ids of an internal node, one per orthant.
func (t *RootedOrthtree[S, V]) Children(id NodeID) []NodeID { return t.nodes[id].children }

// LeafParticles returns the indices (into the slice passed to NewRootedOrthtree) of the
// particles a leaf node holds. Usually length 1; longer only when maxOrthtreeDepth forced a
// coincident-point merge.
func (t *RootedOrthtree[S, V]) LeafParticles(id NodeID) []int { return t.nodes[id].leafParticles }

// NumNodes returns the number of nodes in the arena.
func (t *RootedOrthtree[S, V]) NumNodes() int { return len(t.nodes) }

// BBox returns an internal node's bounding box. Only meaningful when !IsLeaf(id).
func (t *RootedOrthtree[S, V]) BBox(id NodeID) (min, max V) {
	n := &t.nodes[id]
	return n.bboxMin, n.bboxMax
}

func boundingBox[S vecmath.Float, V vecmath.Vector[S, V]](particles []PointMass[S, V]) (min, max V) {
	min, max = particles[0].Position, particles[0].Position
	for _, p := range particles[1:] {
		min = min.ComponentMin(p.Position)
		max = max.ComponentMax(p.Position)
	}

	extent := max.Sub(min).ToArray()
	side := extent[0]
	for _, e := range extent[1:] {
		side = max_(side, e)
	}

	mid := min.Add(max).Scale(S(0.5))
	half := side / 2
	midArr := mid.ToArray()
	lo := make([]S, len(midArr))
	hi := make([]S, len(midArr))
	for k, m := range midArr {
		lo[k] = m - half
		hi[k] = m + half
	}
	return min.FromArray(lo), min.FromArray(hi)
}

// max_ avoids colliding with the builtin max used inside Vec*'s own methods.
func max_[S vecmath.Float](a, b S) S {
	if a > b {
		return a
	}
	return b
}

func (t *RootedOrthtree[S, V]) build(particles []PointMass[S, V], indices []int, bboxMin, bboxMax V, depth int) NodeID {
	switch {
	case len(indices) == 0:
		return emptyNode

	case len(indices) == 1:
		return t.newLeaf(particles, indices)

	case depth >= maxOrthtreeDepth:
		return t.newLeaf(particles, indices)

	default:
		return t.subdivide(particles, indices, bboxMin, bboxMax, depth)
	}
}

func (t *RootedOrthtree[S, V]) newLeaf(particles []PointMass[S, V], indices []int) NodeID {
	id := NodeID(len(t.nodes))
	leaf := make([]int, len(indices))
	copy(leaf, indices)
	t.nodes = append(t.nodes, orthNode[S, V]{isLeaf: true, leafParticles: leaf})
	t.data = append(t.data, combineParticles(particles, indices))
	return id
}

func (t *RootedOrthtree[S, V]) subdivide(particles []PointMass[S, V], indices []int, bboxMin, bboxMax V, depth int) NodeID {
	numChildren := 1 << t.dim
	mid := bboxMin.Add(bboxMax).Scale(S(0.5))
	minArr, maxArr, midArr := bboxMin.ToArray(), bboxMax.ToArray(), mid.ToArray()

	byOrthant := make([][]int, numChildren)
	for _, idx := range indices {
		orthant := orthantOf(particles[idx].Position, midArr)
		byOrthant[orthant] = append(byOrthant[orthant], idx)
	}

	// Reserve this node's slot before recursing so parent ids stay lower than child ids; the id
	// itself isn't used until every child has been built.
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, orthNode[S, V]{bboxMin: bboxMin, bboxMax: bboxMax})
	t.data = append(t.data, MassAggregate[S, V]{})

	children := make([]NodeID, numChildren)
	for o := 0; o < numChildren; o++ {
		childMin, childMax := childBounds[S, V](minArr, maxArr, midArr, o)
		children[o] = t.build(particles, byOrthant[o], childMin, childMax, depth+1)
	}

	t.nodes[id].children = children
	t.data[id] = t.combineChildren(children)
	return id
}

// orthantOf returns the bitmask (one bit per axis) selecting which orthant p falls in relative
// to mid: bit k is set iff p's k-th coordinate is at or past the midpoint on that axis.
func orthantOf[S vecmath.Float, V vecmath.Vector[S, V]](p V, mid []S) int {
	arr := p.ToArray()
	orthant := 0
	for k, c := range arr {
		if c >= mid[k] {
			orthant |= 1 << k
		}
	}
	return orthant
}

func childBounds[S vecmath.Float, V vecmath.Vector[S, V]](min, max, mid []S, orthant int) (V, V) {
	lo := make([]S, len(min))
	hi := make([]S, len(min))
	for k := range min {
		if orthant&(1<<k) == 0 {
			lo[k], hi[k] = min[k], mid[k]
		} else {
			lo[k], hi[k] = mid[k], max[k]
		}
	}
	var zero V
	return zero.FromArray(lo), zero.FromArray(hi)
}

func combineParticles[S vecmath.Float, V vecmath.Vector[S, V]](particles []PointMass[S, V], indices []int) MassAggregate[S, V] {
	var totalMass S
	var weighted V
	for _, idx := range indices {
		p := particles[idx]
		totalMass += p.Mass
		weighted = weighted.Add(p.Position.Scale(p.Mass))
	}
	if totalMass == 0 {
		return MassAggregate[S, V]{}
	}
	if len(indices) == 1 {
		// Keep a lone particle's exact position: position*mass*(1/mass) can be off by an ulp, and
		// a query from that same particle must see a distance of exactly zero.
		return MassAggregate[S, V]{CenterOfMass: particles[indices[0]].Position, TotalMass: totalMass}
	}
	return MassAggregate[S, V]{CenterOfMass: weighted.Scale(1 / totalMass), TotalMass: totalMass}
}

func (t *RootedOrthtree[S, V]) combineChildren(children []NodeID) MassAggregate[S, V] {
	var totalMass S
	var weighted V
	for _, c := range children {
		if c == emptyNode {
			continue
		}
		agg := t.data[c]
		totalMass += agg.TotalMass
		weighted = weighted.Add(agg.CenterOfMass.Scale(agg.TotalMass))
	}
	if totalMass == 0 {
		return MassAggregate[S, V]{}
	}
	return MassAggregate[S, V]{CenterOfMass: weighted.Scale(1 / totalMass), TotalMass: totalMass}
}
