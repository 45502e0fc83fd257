package graph

import (
	"context"

	"github.com/fsahin/trickle/internal/future"
)

// Node is one computational step. Run receives the resolved input values in
// the order the node's dependencies were declared and returns an
// asynchronous handle to the result.
//
// Node values are used as map keys by the engine, so implementations must
// be comparable; pointer receivers are the usual way to get that.
type Node interface {
	Run(ctx context.Context, args []any) *future.Future
}

// Func is the signature for a plain synchronous step.
type Func func(ctx context.Context, args []any) (any, error)

// funcNode gives a Func a stable pointer identity.
type funcNode struct {
	fn Func
}

// NewFunc wraps a plain function into a Node. Each call yields a distinct
// node identity, even for the same function.
func NewFunc(fn Func) Node {
	return &funcNode{fn: fn}
}

func (n *funcNode) Run(ctx context.Context, args []any) *future.Future {
	v, err := n.fn(ctx, args)
	if err != nil {
		return future.Failed(err)
	}
	return future.Completed(v)
}
