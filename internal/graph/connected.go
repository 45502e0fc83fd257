package graph

import (
	"github.com/fsahin/trickle/internal/ctxlog"
	"github.com/fsahin/trickle/internal/future"
)

// ConnectedNode is a node together with its resolved dependency
// declarations: the ordered input list, the ordering-only predecessors and
// the optional fallback value.
type ConnectedNode struct {
	name        string
	node        Node
	deps        []Dep
	preds       []Node
	fallback    any
	hasFallback bool
}

// Name returns the node's diagnostic name.
func (cn *ConnectedNode) Name() string { return cn.name }

func (cn *ConnectedNode) String() string { return cn.name }

// future resolves the node's full input set, joins it and composes the
// invocation and fallback stages. Dependency resolution recurses through
// the execution context so shared ancestors are resolved once.
func (cn *ConnectedNode) future(ec *execContext) *future.Future {
	logger := ctxlog.FromContext(ec.ctx).With("node", cn.name)
	logger.Debug("Resolving node inputs.", "deps", len(cn.deps), "predecessors", len(cn.preds))

	// Input futures, strictly in declaration order: that order is the
	// positional argument order of the invocation.
	inputs := make([]*future.Future, 0, len(cn.deps))
	for _, dep := range cn.deps {
		switch d := dep.(type) {
		case NodeDep:
			inputs = append(inputs, ec.futureFor(d.Node))
		case BindingDep:
			inputs = append(inputs, resolveBinding(d, ec.bindings))
		}
	}

	// Predecessors join the completion barrier but contribute no value.
	barrier := make([]*future.Future, len(inputs), len(inputs)+len(cn.preds))
	copy(barrier, inputs)
	for _, pred := range cn.preds {
		barrier = append(barrier, ec.futureFor(pred))
	}

	joined := future.All(barrier...)

	result := future.ThenAsync(joined, ec.exec, func(any) *future.Future {
		args := make([]any, len(inputs))
		for i, input := range inputs {
			// The join guarantees every input has completed successfully.
			args[i], _ = input.Result()
		}
		logger.Debug("Invoking node.", "args", len(args))
		return cn.node.Run(ec.ctx, args)
	})

	if !cn.hasFallback {
		return result
	}
	return future.Recover(result, cn.fallback)
}
