// Package print provides the built-in 'print' runner: it renders a value to
// standard output and passes it through as its own output.
package print

import (
	"context"
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"

	"github.com/fsahin/trickle/internal/ctxlog"
	"github.com/fsahin/trickle/internal/ctyutil"
	"github.com/fsahin/trickle/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the print runner.
type Input struct {
	Value cty.Value `hcl:"value,optional"`
}

// OnRunPrint is the handler for the 'print' runner.
func OnRunPrint(ctx context.Context, input *Input) (cty.Value, error) {
	ctxlog.FromContext(ctx).Info("Printing value")

	if input.Value.IsNull() {
		fmt.Println("      (null)")
		return cty.NullVal(cty.DynamicPseudoType), nil
	}

	rendered, err := ctyutil.ToGo(input.Value)
	if err != nil {
		return cty.NilVal, err
	}

	// Sort map keys for consistent output.
	if m, ok := rendered.(map[string]any); ok {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("      %s = %v\n", k, m[k])
		}
	} else {
		fmt.Printf("      %v\n", rendered)
	}

	return input.Value, nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.Register("print", &registry.Handler{
		NewInput: func() any { return new(Input) },
		Fn:       OnRunPrint,
	})
}
