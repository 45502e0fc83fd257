package graph

import (
	"context"
	"fmt"

	"github.com/fsahin/trickle/internal/ctxlog"
	"github.com/fsahin/trickle/internal/executor"
	"github.com/fsahin/trickle/internal/future"
)

// execContext owns the state of one top-level Resolve call: the binding
// environment, the dispatch executor and the memo table. It is discarded
// when the execution completes and never shared across executions.
type execContext struct {
	ctx      context.Context
	graph    *Graph
	bindings Bindings
	exec     executor.Executor

	// visited memoizes the in-flight or completed handle per node. The
	// graph walk that populates it runs on the Resolve caller's goroutine
	// only; the asynchronous work itself runs on the executor.
	visited map[Node]*future.Future
}

// futureFor is the memoized recursion point. The first call for a node
// resolves it through its ConnectedNode and stores the handle; every later
// call, from any dependent, observes that same handle.
func (ec *execContext) futureFor(n Node) *future.Future {
	if f, ok := ec.visited[n]; ok {
		return f
	}

	cn, ok := ec.graph.nodes[n]
	if !ok {
		// Reachable only when a caller bypasses Build validation.
		return future.Failed(fmt.Errorf("%w: %T", ErrNotRegistered, n))
	}

	f := cn.future(ec)
	ec.visited[n] = f
	return f
}

// Resolve runs the graph toward the target node and returns the handle to
// its eventual value or failure. Every node reachable from the target is
// executed at most once per Resolve call.
func (g *Graph) Resolve(ctx context.Context, target Node, bindings Bindings, exec executor.Executor) *future.Future {
	logger := ctxlog.FromContext(ctx)

	ec := &execContext{
		ctx:      ctx,
		graph:    g,
		bindings: bindings,
		exec:     exec,
		visited:  make(map[Node]*future.Future, len(g.nodes)),
	}

	if cn, ok := g.nodes[target]; ok {
		logger.Debug("Resolving graph.", "target", cn.name, "nodes", len(g.nodes))
	}

	return ec.futureFor(target)
}
