package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/zclconf/go-cty/cty"

	"github.com/fsahin/trickle/internal/config"
	"github.com/fsahin/trickle/internal/ctxlog"
	"github.com/fsahin/trickle/internal/future"
	"github.com/fsahin/trickle/internal/registry"
)

// refKind distinguishes what an argument expression references.
type refKind int

const (
	taskRef refKind = iota
	paramRef
)

// argRef is one reference found in a task's argument expressions. The
// ordered list of a task's argRefs is exactly the order of its declared
// value dependencies, so the i-th resolved argument belongs to refs[i].
type argRef struct {
	kind    refKind
	address string // task refs: "runner_type.task_name"
	param   string // param refs: the param name
}

// taskNode adapts one workflow task to the graph engine's Node contract.
type taskNode struct {
	task    *config.Task
	handler *registry.Handler
	refs    []argRef
}

// Run decodes the task's arguments against the resolved dependency values
// and invokes the runner handler.
func (t *taskNode) Run(ctx context.Context, args []any) *future.Future {
	logger := ctxlog.FromContext(ctx).With("task", t.task.Address())

	evalCtx, err := t.evalContext(args)
	if err != nil {
		return future.Failed(err)
	}

	var input any
	if t.handler.NewInput != nil {
		input = t.handler.NewInput()
		if t.task.ArgsBody != nil {
			if diags := gohcl.DecodeBody(t.task.ArgsBody, evalCtx, input); diags.HasErrors() {
				return future.Failed(fmt.Errorf("decoding arguments for task %s: %w", t.task.Address(), diags))
			}
		}
	}

	logger.Info("▶️ Starting task")
	output, err := t.handler.Invoke(ctx, input)
	if err != nil {
		logger.Error("Task failed.", "error", err)
		return future.Failed(fmt.Errorf("task %s: %w", t.task.Address(), err))
	}
	logger.Info("✅ Finished task")

	return future.Completed(output)
}

// evalContext builds the HCL evaluation context exposing the resolved
// dependency values as task.<runner>.<name>.output and param.<name>.
func (t *taskNode) evalContext(args []any) (*hcl.EvalContext, error) {
	if len(args) != len(t.refs) {
		return nil, fmt.Errorf("task %s: resolved %d values for %d references", t.task.Address(), len(args), len(t.refs))
	}

	taskOutputs := make(map[string]map[string]cty.Value)
	paramValues := make(map[string]cty.Value)

	for i, ref := range t.refs {
		value, ok := args[i].(cty.Value)
		if !ok {
			return nil, fmt.Errorf("task %s: dependency value %d is %T, want cty.Value", t.task.Address(), i, args[i])
		}

		switch ref.kind {
		case taskRef:
			runner, name, _ := strings.Cut(ref.address, ".")
			if taskOutputs[runner] == nil {
				taskOutputs[runner] = make(map[string]cty.Value)
			}
			taskOutputs[runner][name] = cty.ObjectVal(map[string]cty.Value{"output": value})
		case paramRef:
			paramValues[ref.param] = value
		}
	}

	vars := make(map[string]cty.Value)
	if len(taskOutputs) > 0 {
		byRunner := make(map[string]cty.Value, len(taskOutputs))
		for runner, byName := range taskOutputs {
			byRunner[runner] = cty.ObjectVal(byName)
		}
		vars["task"] = cty.ObjectVal(byRunner)
	}
	if len(paramValues) > 0 {
		vars["param"] = cty.ObjectVal(paramValues)
	}

	return &hcl.EvalContext{Variables: vars}, nil
}
