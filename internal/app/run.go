package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/fsahin/trickle/internal/ctxlog"
	"github.com/fsahin/trickle/internal/executor"
	"github.com/fsahin/trickle/internal/graph"
	"github.com/fsahin/trickle/internal/hcl"
)

// Run loads the workflow, resolves the target task and writes its result as
// JSON to the application's output writer.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	logger := a.logger

	logger.Info("▶️ Loading workflow.", "path", cfg.WorkflowPath)
	model, err := hcl.NewLoader().Load(ctx, cfg.WorkflowPath)
	if err != nil {
		return fmt.Errorf("loading workflow: %w", err)
	}

	bw, err := a.buildWorkflow(ctx, model)
	if err != nil {
		return err
	}

	target, err := bw.selectTarget(cfg.Target)
	if err != nil {
		return err
	}

	bindings, err := bw.bindings(cfg.Params)
	if err != nil {
		return err
	}

	pool := executor.NewPool(cfg.WorkerCount)
	defer pool.Close()

	logger.Info("▶️ Resolving task.", "target", target)
	fut := bw.graph.Resolve(ctx, bw.nodes[target], bindings, pool)
	result, err := fut.Wait(ctx)
	if err != nil {
		return fmt.Errorf("resolving %q: %w", target, err)
	}
	logger.Info("✅ Task resolved.", "target", target)

	return a.render(result)
}

// selectTarget picks the task to resolve: the explicit target when given,
// otherwise the workflow's sole sink.
func (bw *builtWorkflow) selectTarget(target string) (string, error) {
	if target != "" {
		if _, ok := bw.nodes[target]; !ok {
			return "", fmt.Errorf("target task %q does not exist", target)
		}
		return target, nil
	}

	switch len(bw.sinks) {
	case 1:
		return bw.sinks[0], nil
	case 0:
		return "", fmt.Errorf("workflow has no sink task; specify a target")
	default:
		sorted := append([]string(nil), bw.sinks...)
		sort.Strings(sorted)
		return "", fmt.Errorf("workflow has multiple sink tasks %v; specify a target", sorted)
	}
}

// bindings converts the externally supplied param values, falling back to
// declared defaults, into the graph's binding set.
func (bw *builtWorkflow) bindings(supplied map[string]string) (graph.Bindings, error) {
	for name := range supplied {
		if _, declared := bw.params[name]; !declared {
			return nil, fmt.Errorf("supplied param %q is not declared by the workflow", name)
		}
	}

	out := make(graph.Bindings, len(bw.params))
	for name, p := range bw.params {
		key := bw.names[name]

		if raw, ok := supplied[name]; ok {
			val, err := convert.Convert(cty.StringVal(raw), p.Type)
			if err != nil {
				return nil, fmt.Errorf("param %q: cannot convert %q to %s: %w", name, raw, p.Type.FriendlyName(), err)
			}
			out[key] = val
			continue
		}

		if p.Default != nil {
			out[key] = *p.Default
		}
	}
	return out, nil
}

// render writes a task result to the output writer as JSON.
func (a *App) render(result any) error {
	val, ok := result.(cty.Value)
	if !ok {
		return fmt.Errorf("unexpected result type %T", result)
	}

	data, err := ctyjson.Marshal(val, val.Type())
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	_, err = fmt.Fprintf(a.out, "%s\n", data)
	return err
}
