package graph

// Graph is an immutable, validated registry of connected nodes. Build one
// with a Builder; execute it with Resolve.
type Graph struct {
	nodes map[Node]*ConnectedNode
}

// Len returns the number of registered nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// Lookup returns the ConnectedNode registered for n, if any.
func (g *Graph) Lookup(n Node) (*ConnectedNode, bool) {
	cn, ok := g.nodes[n]
	return cn, ok
}
