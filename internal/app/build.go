package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"github.com/fsahin/trickle/internal/config"
	"github.com/fsahin/trickle/internal/ctxlog"
	"github.com/fsahin/trickle/internal/graph"
)

// builtWorkflow is the executable form of a loaded workflow.
type builtWorkflow struct {
	graph  *graph.Graph
	nodes  map[string]graph.Node // task address -> node
	names  map[string]graph.Name // param name -> binding key
	params map[string]*config.Param
	sinks  []string // addresses no other task references
}

// buildWorkflow turns the config model into a validated dependency graph.
// References inside argument expressions become value dependencies, in
// source order; depends_on entries become ordering-only predecessors.
func (a *App) buildWorkflow(ctx context.Context, model *config.Model) (*builtWorkflow, error) {
	logger := ctxlog.FromContext(ctx)

	bw := &builtWorkflow{
		nodes:  make(map[string]graph.Node),
		names:  make(map[string]graph.Name),
		params: make(map[string]*config.Param),
	}

	for _, p := range model.Workflow.Params {
		bw.params[p.Name] = p
		bw.names[p.Name] = graph.NewName[cty.Value](p.Name)
	}

	// First pass: create a node per task.
	byBareName := make(map[string][]string)
	for _, task := range model.Workflow.Tasks {
		handler, ok := a.registry.Lookup(task.RunnerType)
		if !ok {
			return nil, fmt.Errorf("task %q: unknown runner type %q (registered: %v)", task.Address(), task.RunnerType, a.registry.Types())
		}
		bw.nodes[task.Address()] = &taskNode{task: task, handler: handler}
		byBareName[task.Name] = append(byBareName[task.Name], task.Address())
	}
	logger.Debug("Workflow nodes created.", "count", len(bw.nodes))

	// Second pass: link dependencies and build the graph.
	builder := graph.NewBuilder()
	referenced := make(map[string]bool)

	for _, task := range model.Workflow.Tasks {
		node := bw.nodes[task.Address()].(*taskNode)

		refs, err := bw.scanArgRefs(task)
		if err != nil {
			return nil, err
		}
		node.refs = refs

		deps := make([]graph.Dep, len(refs))
		for i, ref := range refs {
			switch ref.kind {
			case taskRef:
				deps[i] = graph.Output(bw.nodes[ref.address])
				referenced[ref.address] = true
			case paramRef:
				deps[i] = graph.Binding(bw.names[ref.param])
			}
		}

		var preds []graph.Node
		for _, entry := range task.DependsOn {
			address, err := bw.resolveTaskAddress(entry, byBareName)
			if err != nil {
				return nil, fmt.Errorf("task %q: %w", task.Address(), err)
			}
			preds = append(preds, bw.nodes[address])
			referenced[address] = true
		}

		call := builder.Call(task.Address(), node).With(deps...).After(preds...)
		if task.Fallback != nil {
			call.Fallback(*task.Fallback)
		}
		logger.Debug("Task linked.", "task", task.Address(), "deps", len(deps), "predecessors", len(preds))
	}

	g, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("building dependency graph: %w", err)
	}
	bw.graph = g

	for _, task := range model.Workflow.Tasks {
		if !referenced[task.Address()] {
			bw.sinks = append(bw.sinks, task.Address())
		}
	}

	logger.Debug("Workflow graph built.", "nodes", g.Len(), "sinks", bw.sinks)
	return bw, nil
}

// scanArgRefs extracts task and param references from a task's argument
// expressions, ordered by source position and deduplicated.
func (bw *builtWorkflow) scanArgRefs(task *config.Task) ([]argRef, error) {
	if len(task.Arguments) == 0 {
		return nil, nil
	}

	type namedExpr struct {
		name string
		expr hcl.Expression
	}
	ordered := make([]namedExpr, 0, len(task.Arguments))
	for name, expr := range task.Arguments {
		ordered = append(ordered, namedExpr{name: name, expr: expr})
	}
	sort.Slice(ordered, func(i, j int) bool {
		ri, rj := ordered[i].expr.Range(), ordered[j].expr.Range()
		if ri.Filename != rj.Filename {
			return ri.Filename < rj.Filename
		}
		if ri.Start.Byte != rj.Start.Byte {
			return ri.Start.Byte < rj.Start.Byte
		}
		return ordered[i].name < ordered[j].name
	})

	var refs []argRef
	seen := make(map[argRef]bool)
	for _, attr := range ordered {
		for _, traversal := range attr.expr.Variables() {
			ref, err := bw.parseRef(traversal)
			if err != nil {
				return nil, fmt.Errorf("task %q, argument %q: %w", task.Address(), attr.name, err)
			}
			if !seen[ref] {
				seen[ref] = true
				refs = append(refs, ref)
			}
		}
	}
	return refs, nil
}

// parseRef validates a single variable traversal against the workflow.
func (bw *builtWorkflow) parseRef(traversal hcl.Traversal) (argRef, error) {
	switch root := traversal.RootName(); root {
	case "task":
		if len(traversal) < 3 {
			return argRef{}, fmt.Errorf("task reference must be task.<runner_type>.<task_name>")
		}
		runnerAttr, runnerOk := traversal[1].(hcl.TraverseAttr)
		nameAttr, nameOk := traversal[2].(hcl.TraverseAttr)
		if !runnerOk || !nameOk {
			return argRef{}, fmt.Errorf("task reference must be task.<runner_type>.<task_name>")
		}
		address := fmt.Sprintf("%s.%s", runnerAttr.Name, nameAttr.Name)
		if _, ok := bw.nodes[address]; !ok {
			return argRef{}, fmt.Errorf("referenced task %q does not exist", address)
		}
		return argRef{kind: taskRef, address: address}, nil

	case "param":
		if len(traversal) < 2 {
			return argRef{}, fmt.Errorf("param reference must be param.<name>")
		}
		nameAttr, ok := traversal[1].(hcl.TraverseAttr)
		if !ok {
			return argRef{}, fmt.Errorf("param reference must be param.<name>")
		}
		if _, declared := bw.params[nameAttr.Name]; !declared {
			return argRef{}, fmt.Errorf("referenced param %q is not declared", nameAttr.Name)
		}
		return argRef{kind: paramRef, param: nameAttr.Name}, nil

	default:
		return argRef{}, fmt.Errorf("unknown reference root %q", root)
	}
}

// resolveTaskAddress resolves a depends_on entry, which may be a full
// "runner_type.task_name" address or a bare task name when unambiguous.
func (bw *builtWorkflow) resolveTaskAddress(entry string, byBareName map[string][]string) (string, error) {
	if _, ok := bw.nodes[entry]; ok {
		return entry, nil
	}

	addresses := byBareName[entry]
	switch len(addresses) {
	case 1:
		return addresses[0], nil
	case 0:
		return "", fmt.Errorf("depends_on references non-existent task %q", entry)
	default:
		return "", fmt.Errorf("depends_on reference %q is ambiguous between %v", entry, addresses)
	}
}
