// Package quadtree implements the Barnes-Hut spatial index used to
// approximate pairwise gravity in sub-quadratic time.
//
// The tree is rebuilt from scratch every step from the current particle
// slice. Nodes live in an index-addressed arena that is reused across
// builds, so a steady-state simulation allocates nothing per step.
package quadtree

import (
	"github.com/san-kum/gravbox/internal/body"
	"github.com/san-kum/gravbox/internal/geom"
	"github.com/san-kum/gravbox/internal/gravity"
)

const (
	// A leaf splits once it holds more than one particle, up to
	// maxDepth. Below that, coincident particles share a leaf as a
	// linked list instead of splitting forever.
	maxDepth = 32

	nilIdx = int32(-1)
)

type node struct {
	bounds   geom.Rect
	children int32 // index of the first of 4 contiguous children, nilIdx for leaves
	head     int32 // first particle in this leaf, nilIdx when empty
	mass     float64
	com      geom.Vec2
}

func (n *node) leaf() bool { return n.children == nilIdx }

// Tree is a Barnes-Hut quadtree over a particle slice. The zero value
// is ready to use; call Build before ForceOn.
type Tree struct {
	nodes     []node
	next      []int32 // per-particle intrusive list links for leaf buckets
	particles []body.Particle
	bounds    geom.Rect
}

// Build reconstructs the tree over particles within bounds, reusing the
// node arena from previous builds. The particle slice is retained until
// the next Build; callers must not mutate it while walking the tree.
func (t *Tree) Build(particles []body.Particle, bounds geom.Rect) {
	t.particles = particles
	t.bounds = bounds
	t.nodes = t.nodes[:0]

	if cap(t.next) < len(particles) {
		t.next = make([]int32, len(particles))
	}
	t.next = t.next[:len(particles)]
	for i := range t.next {
		t.next[i] = nilIdx
	}

	t.nodes = append(t.nodes, node{bounds: bounds, children: nilIdx, head: nilIdx})
	for i := range particles {
		t.insert(0, i, 0)
	}
}

func (t *Tree) insert(n int32, i, depth int) {
	p := &t.particles[i]

	// Aggregate mass and center of mass along the insertion path.
	nd := &t.nodes[n]
	total := nd.mass + p.Mass
	nd.com = nd.com.Scale(nd.mass).Add(p.Pos.Scale(p.Mass)).Scale(1 / total)
	nd.mass = total

	if !nd.leaf() {
		t.insertChild(n, i, depth)
		return
	}

	if nd.head == nilIdx {
		nd.head = int32(i)
		return
	}

	if depth >= maxDepth {
		t.next[i] = nd.head
		nd.head = int32(i)
		return
	}

	// Occupied leaf: split into four quadrants and push the resident
	// particles down. Appending may move the arena, so the node is
	// re-addressed by index after growth.
	old := nd.head
	nd.head = nilIdx

	first := int32(len(t.nodes))
	bounds := nd.bounds
	t.nodes[n].children = first
	for q := 0; q < 4; q++ {
		t.nodes = append(t.nodes, node{bounds: bounds.Quadrant(q), children: nilIdx, head: nilIdx})
	}

	for j := old; j != nilIdx; {
		nj := t.next[j]
		t.next[j] = nilIdx
		t.insertChild(n, int(j), depth)
		j = nj
	}
	t.insertChild(n, i, depth)
}

func (t *Tree) insertChild(n int32, i, depth int) {
	nd := &t.nodes[n]
	q := nd.bounds.QuadrantFor(t.particles[i].Pos)
	t.insert(nd.children+int32(q), i, depth+1)
}

// ForceOn returns the net attractive force on p. Nodes whose
// width-to-distance ratio falls below theta are treated as a single
// pseudo-particle at their center of mass; theta = 0 degenerates to
// exact pairwise summation. p excludes itself by ID, never by
// distance, so coincident particles still attract each other.
func (t *Tree) ForceOn(p *body.Particle, theta, g, softening float64) geom.Vec2 {
	if len(t.nodes) == 0 {
		return geom.Vec2{}
	}
	return t.forceFrom(0, p, theta, g, softening)
}

func (t *Tree) forceFrom(n int32, p *body.Particle, theta, g, softening float64) geom.Vec2 {
	nd := &t.nodes[n]
	if nd.mass == 0 {
		return geom.Vec2{}
	}

	if nd.leaf() {
		var f geom.Vec2
		for j := nd.head; j != nilIdx; j = t.next[j] {
			other := &t.particles[j]
			if other.ID == p.ID {
				continue
			}
			f = f.Add(gravity.Force(p.Mass, p.Pos, other.Mass, other.Pos, g, softening))
		}
		return f
	}

	if d := p.Pos.Dist(nd.com); d > 0 && nd.bounds.W()/d < theta {
		return gravity.Force(p.Mass, p.Pos, nd.mass, nd.com, g, softening)
	}

	var f geom.Vec2
	for q := int32(0); q < 4; q++ {
		f = f.Add(t.forceFrom(nd.children+q, p, theta, g, softening))
	}
	return f
}

// TotalMass returns the aggregate mass at the root.
func (t *Tree) TotalMass() float64 {
	if len(t.nodes) == 0 {
		return 0
	}
	return t.nodes[0].mass
}

// NodeCount reports the arena size of the last build.
func (t *Tree) NodeCount() int { return len(t.nodes) }
