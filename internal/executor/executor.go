// Package executor defines the dispatch surface the graph engine submits
// node invocations to, and provides the standard implementations.
package executor

// Executor accepts units of work for asynchronous execution. The engine
// never creates threads of its own; all node invocations and continuations
// are funneled through an Executor.
type Executor interface {
	Submit(task func())
}
