// Package env_vars provides the built-in 'env_vars' runner: it exposes the
// process environment, optionally filtered by prefix, as a task output.
package env_vars

import (
	"context"
	"os"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/fsahin/trickle/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the env_vars runner.
type Input struct {
	Prefix string `hcl:"prefix,optional"`
}

// OnRunEnvVars is the handler for the 'env_vars' runner.
func OnRunEnvVars(ctx context.Context, input *Input) (cty.Value, error) {
	vars := make(map[string]cty.Value)
	for _, e := range os.Environ() {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) != 2 {
			continue
		}
		if input.Prefix != "" && !strings.HasPrefix(pair[0], input.Prefix) {
			continue
		}
		vars[pair[0]] = cty.StringVal(pair[1])
	}

	all := cty.EmptyObjectVal
	if len(vars) > 0 {
		all = cty.ObjectVal(vars)
	}
	return cty.ObjectVal(map[string]cty.Value{"all": all}), nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.Register("env_vars", &registry.Handler{
		NewInput: func() any { return new(Input) },
		Fn:       OnRunEnvVars,
	})
}
