package bsp

import (
	"fmt"

	"github.com/jumpstat/jumpstat/pkg/geom"

	"github.com/rs/zerolog/log"
)

var ErrNoModels = fmt.Errorf("level has no models")

// Ref is a decoded child reference: either another node or a leaf.
type Ref struct {
	Leaf    bool
	Node    int32
	Content Content
}

// broken stands in for any reference that does not resolve. It is a solid
// leaf so that queries touching corrupt data fail closed.
var broken = Ref{Leaf: true, Content: Solid}

type Node struct {
	Normal   geom.Vector3
	Distance float64
	Children [2]Ref
}

// Tree is the decoded clip tree of a level. It is immutable once built and
// safe to share between goroutines.
type Tree struct {
	nodes []Node
	roots [][HullCount]Ref

	// number of references that did not resolve while decoding
	malformed int
}

func resolve(child int32, numNodes int) (Ref, bool) {
	if child < 0 {
		return Ref{Leaf: true, Content: DecodeLeaf(child)}, true
	}

	if int(child) >= numNodes {
		return broken, false
	}

	return Ref{Node: child}, true
}

// Build decodes the raw records once so queries never have to interpret
// the sign convention or bounds-check plane references again.
func Build(data *Data) (*Tree, error) {
	if len(data.Models) == 0 {
		return nil, ErrNoModels
	}

	tree := &Tree{
		nodes: make([]Node, len(data.ClipNodes)),
		roots: make([][HullCount]Ref, len(data.Models)),
	}

	numNodes := len(data.ClipNodes)
	for i, raw := range data.ClipNodes {
		node := &tree.nodes[i]

		if raw.Plane < 0 || int(raw.Plane) >= len(data.Planes) {
			// Without a plane there is no side to pick
			node.Children = [2]Ref{broken, broken}
			tree.malformed++
			continue
		}

		plane := data.Planes[raw.Plane]
		node.Normal = geom.Vector3(plane.Normal)
		node.Distance = plane.Distance

		for side, child := range raw.Children {
			ref, ok := resolve(child, numNodes)
			if !ok {
				tree.malformed++
			}
			node.Children[side] = ref
		}
	}

	for i, model := range data.Models {
		for hull, head := range model.HeadNodes {
			ref, ok := resolve(head, numNodes)
			if !ok {
				tree.malformed++
			}
			tree.roots[i][hull] = ref
		}
	}

	if tree.malformed > 0 {
		log.Warn().
			Int("references", tree.malformed).
			Msg("clip tree contains unresolved references, queries touching them report blocked")
	}

	return tree, nil
}

// Malformed is the number of references that could not be resolved.
func (t *Tree) Malformed() int {
	return t.malformed
}

func (t *Tree) NumNodes() int {
	return len(t.nodes)
}

// HullContents walks one hull of one model down to the leaf containing
// point. Anything that does not resolve, including a cycle in the node
// graph, is reported as solid.
func (t *Tree) HullContents(model, hull int, point geom.Vector3) Content {
	if t == nil || model < 0 || model >= len(t.roots) || hull < 0 || hull >= HullCount {
		return Solid
	}

	ref := t.roots[model][hull]

	// A well formed tree visits every node at most once on the way down
	for steps := 0; steps <= len(t.nodes); steps++ {
		if ref.Leaf {
			return ref.Content
		}

		node := &t.nodes[ref.Node]

		side := 0
		if node.Normal.Dot(point)-node.Distance < 0 {
			side = 1
		}
		ref = node.Children[side]
	}

	return Solid
}

// PointIsBlocked reports whether a player-sized hull placed at point would
// sit in anything other than open space.
func (t *Tree) PointIsBlocked(point geom.Vector3) bool {
	return t.HullContents(0, PlayerHull, point).Blocking()
}
