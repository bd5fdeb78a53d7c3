package simtree

// Setupable is implemented by every constructible setup-tree node
// (geometry, mixture, grid, composition) that needs a two-pass setup: a
// leaves-first SetupBefore (each node finishes readying its own state
// before any sibling or parent runs) and a root-to-leaves SetupAfter
// (each node can assume the whole tree's SetupBefore has completed),
// mirroring how the teacher's solver.New takes fully-constructed children
// rather than wiring them itself.
type Setupable interface {
	SetupBefore(h *Handle) error
	SetupAfter(h *Handle) error
}

// Node is one entry in a setup tree: a Setupable plus its already-built
// children. Walk visits children before the node itself for
// SetupBefore, and the node before its children for SetupAfter.
type Node struct {
	Item     Setupable
	Children []*Node
}

// Walk runs the two-pass setup over the tree rooted at n, stopping at the
// first error encountered.
func Walk(h *Handle, n *Node) error {
	if err := walkBefore(h, n); err != nil {
		return err
	}
	return walkAfter(h, n)
}

func walkBefore(h *Handle, n *Node) error {
	for _, c := range n.Children {
		if err := walkBefore(h, c); err != nil {
			return err
		}
	}
	return n.Item.SetupBefore(h)
}

func walkAfter(h *Handle, n *Node) error {
	if err := n.Item.SetupAfter(h); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := walkAfter(h, c); err != nil {
			return err
		}
	}
	return nil
}
