package registry

import (
	"context"
	"fmt"
	"reflect"

	"github.com/zclconf/go-cty/cty"
)

// Handler holds the compiled Go parts of a runner.
type Handler struct {
	// NewInput returns a pointer to a fresh, hcl-tagged input struct the
	// task's arguments are decoded into. Nil means the runner takes no
	// arguments.
	NewInput func() any
	// Fn is the handler function, of shape
	// func(ctx context.Context, input *T) (cty.Value, error).
	Fn any
}

// Invoke calls the handler function reflectively with the decoded input.
func (h *Handler) Invoke(ctx context.Context, input any) (cty.Value, error) {
	fn := reflect.ValueOf(h.Fn)

	args := []reflect.Value{reflect.ValueOf(ctx)}
	if input != nil {
		args = append(args, reflect.ValueOf(input))
	} else {
		args = append(args, reflect.Zero(fn.Type().In(1)))
	}

	results := fn.Call(args)

	value, ok := results[0].Interface().(cty.Value)
	if !ok {
		return cty.NilVal, fmt.Errorf("handler returned %T, want cty.Value", results[0].Interface())
	}
	if errResult := results[1].Interface(); errResult != nil {
		return cty.NilVal, errResult.(error)
	}
	return value, nil
}
