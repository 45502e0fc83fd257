package graph

import (
	"fmt"
)

// Builder accumulates node declarations and produces a validated Graph.
type Builder struct {
	nodes map[Node]*ConnectedNode
	order []Node
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{nodes: make(map[Node]*ConnectedNode)}
}

// Call registers a node under a diagnostic name and returns a handle for
// declaring its inputs, predecessors and fallback. Registering the same
// node twice panics: two logical steps must not share identity.
func (b *Builder) Call(name string, n Node) *Call {
	if n == nil {
		panic("graph: Call with nil node")
	}
	if _, exists := b.nodes[n]; exists {
		panic(fmt.Sprintf("graph: node %q already registered", name))
	}

	cn := &ConnectedNode{name: name, node: n}
	b.nodes[n] = cn
	b.order = append(b.order, n)

	return &Call{cn: cn}
}

// Call is the declaration handle returned by Builder.Call.
type Call struct {
	cn *ConnectedNode
}

// With appends input dependencies. Declaration order across all With calls
// fixes the positional argument order of the node's invocation.
func (c *Call) With(deps ...Dep) *Call {
	c.cn.deps = append(c.cn.deps, deps...)
	return c
}

// After appends ordering-only predecessors: their completion is awaited,
// their values are discarded.
func (c *Call) After(preds ...Node) *Call {
	c.cn.preds = append(c.cn.preds, preds...)
	return c
}

// Fallback sets the value substituted for the node's result when its
// resolution fails. A nil fallback value is a valid fallback.
func (c *Call) Fallback(v any) *Call {
	c.cn.fallback = v
	c.cn.hasFallback = true
	return c
}

// Build validates the accumulated declarations and returns the Graph.
// Every referenced node must be registered and the dependency relation,
// predecessors included, must be acyclic.
func (b *Builder) Build() (*Graph, error) {
	for _, n := range b.order {
		cn := b.nodes[n]
		for _, dep := range cn.deps {
			if nd, ok := dep.(NodeDep); ok {
				if _, registered := b.nodes[nd.Node]; !registered {
					return nil, fmt.Errorf("%w: node %q depends on an unregistered node", ErrNotRegistered, cn.name)
				}
			}
		}
		for _, pred := range cn.preds {
			if _, registered := b.nodes[pred]; !registered {
				return nil, fmt.Errorf("%w: node %q has an unregistered predecessor", ErrNotRegistered, cn.name)
			}
		}
	}

	if err := b.detectCycles(); err != nil {
		return nil, err
	}

	nodes := make(map[Node]*ConnectedNode, len(b.nodes))
	for n, cn := range b.nodes {
		nodes[n] = cn
	}
	return &Graph{nodes: nodes}, nil
}

// detectCycles checks for circular dependencies using DFS over both value
// dependencies and predecessors.
func (b *Builder) detectCycles() error {
	visiting := make(map[Node]bool)
	visited := make(map[Node]bool)

	var visit func(n Node, path []string) error
	visit = func(n Node, path []string) error {
		cn := b.nodes[n]
		path = append(path, cn.name)
		visiting[n] = true

		for _, upstream := range b.upstreamOf(cn) {
			if visiting[upstream] {
				return &CycleError{Path: append(path, b.nodes[upstream].name)}
			}
			if !visited[upstream] {
				if err := visit(upstream, path); err != nil {
					return err
				}
			}
		}

		delete(visiting, n)
		visited[n] = true
		return nil
	}

	for _, n := range b.order {
		if !visited[n] {
			if err := visit(n, nil); err != nil {
				return err
			}
		}
	}
	return nil
}

// upstreamOf lists every node that must complete before cn runs.
func (b *Builder) upstreamOf(cn *ConnectedNode) []Node {
	upstream := make([]Node, 0, len(cn.deps)+len(cn.preds))
	for _, dep := range cn.deps {
		if nd, ok := dep.(NodeDep); ok {
			upstream = append(upstream, nd.Node)
		}
	}
	return append(upstream, cn.preds...)
}
