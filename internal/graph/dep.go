package graph

// Dep is a declared input source for a connected node: either another
// node's output or an externally bound named value. The variant set is
// closed; the engine switches over it exhaustively.
type Dep interface {
	dep()
}

// NodeDep references another node whose resolved output becomes a
// positional input value.
type NodeDep struct {
	Node Node
}

func (NodeDep) dep() {}

// BindingDep references an externally supplied named value.
type BindingDep struct {
	Name Name
}

func (BindingDep) dep() {}

// Output declares a dependency on another node's output.
func Output(n Node) Dep {
	return NodeDep{Node: n}
}

// Binding declares a dependency on an externally bound name.
func Binding(name Name) Dep {
	return BindingDep{Name: name}
}
