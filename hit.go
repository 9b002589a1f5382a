package starship

// HitList is a flat, order-significant list of hit-testable nodes. It is
// filled once when the tree is built; order encodes priority, so front-most
// interactive parts must be registered first.
type HitList struct {
	nodes []*Node
}

// Register appends nodes in priority order. Nodes already present are skipped.
func (h *HitList) Register(nodes ...*Node) {
	for _, n := range nodes {
		if n == nil || h.contains(n) {
			continue
		}
		h.nodes = append(h.nodes, n)
	}
}

// Nodes returns the registered nodes. The returned slice MUST NOT be mutated.
func (h *HitList) Nodes() []*Node {
	return h.nodes
}

// PerformHitDetection returns the first registered node whose HitTest
// succeeds for the root-space point (x, y), or nil.
func (h *HitList) PerformHitDetection(x, y float64) *Node {
	for _, n := range h.nodes {
		if n.HitTest(x, y) {
			return n
		}
	}
	return nil
}

func (h *HitList) contains(n *Node) bool {
	for _, c := range h.nodes {
		if c == n {
			return true
		}
	}
	return false
}
