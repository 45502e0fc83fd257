package graph

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	// ErrNameNotBound reports a required external name missing from the
	// binding environment.
	ErrNameNotBound = errors.New("name not bound")
	// ErrTypeMismatch reports a bound value whose runtime type is not
	// assignable to the type the binding declares.
	ErrTypeMismatch = errors.New("binding type mismatch")
	// ErrNotRegistered reports a dependency or predecessor reference to a
	// node the graph does not contain.
	ErrNotRegistered = errors.New("node not registered")
	// ErrCycle reports a circular dependency.
	ErrCycle = errors.New("dependency cycle")
)

// BindingError wraps a binding lookup or validation failure.
type BindingError struct {
	Kind   error
	Name   Name
	Actual reflect.Type
}

func (e *BindingError) Error() string {
	switch e.Kind {
	case ErrNameNotBound:
		return fmt.Sprintf("name not bound to a value for %s", e.Name)
	case ErrTypeMismatch:
		return fmt.Sprintf("binding type mismatch for %q: expected %s, found %s", e.Name.id, e.Name.typ, e.Actual)
	}
	return e.Kind.Error()
}

func (e *BindingError) Unwrap() error { return e.Kind }

// CycleError reports a circular dependency, naming the nodes on the cycle.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	if len(e.Path) == 0 {
		return ErrCycle.Error()
	}
	return fmt.Sprintf("%s: %s", ErrCycle.Error(), strings.Join(e.Path, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrCycle }
