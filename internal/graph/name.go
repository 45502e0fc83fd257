package graph

import (
	"fmt"
	"reflect"
)

// Name is a typed key for an externally bound value. The type captured at
// construction is what bound values are validated against at resolution
// time.
type Name struct {
	id  string
	typ reflect.Type
}

// NewName creates a binding key expecting values assignable to T.
func NewName[T any](id string) Name {
	return Name{id: id, typ: reflect.TypeFor[T]()}
}

// ID returns the binding name.
func (n Name) ID() string { return n.id }

// Type returns the expected value type.
func (n Name) Type() reflect.Type { return n.typ }

func (n Name) String() string {
	return fmt.Sprintf("%q (%s)", n.id, n.typ)
}
