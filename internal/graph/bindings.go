package graph

import (
	"reflect"

	"github.com/fsahin/trickle/internal/future"
)

// Bindings is the per-execution environment mapping binding names to their
// supplied values. A value may be immediate or a *future.Future of the
// eventual value. The environment is treated as immutable for the duration
// of one execution.
type Bindings map[Name]any

// resolveBinding turns one BindingDep into an asynchronous handle,
// validating presence and type. Lookup and validation failures come back
// as failed futures so that a downstream fallback can still recover them.
func resolveBinding(dep BindingDep, bindings Bindings) *future.Future {
	value, ok := bindings[dep.Name]
	if !ok || value == nil {
		return future.Failed(&BindingError{Kind: ErrNameNotBound, Name: dep.Name})
	}

	// An already-asynchronous value passes through unchanged; its type can
	// only be known once it completes.
	if f, ok := value.(*future.Future); ok {
		return f
	}

	if actual := reflect.TypeOf(value); !actual.AssignableTo(dep.Name.typ) {
		return future.Failed(&BindingError{Kind: ErrTypeMismatch, Name: dep.Name, Actual: actual})
	}

	return future.Completed(value)
}
