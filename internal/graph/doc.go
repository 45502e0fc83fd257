// Package graph implements the dependency-graph resolution engine: nodes
// declare their inputs as other nodes' outputs or externally bound names,
// and one Resolve call turns the static declaration into a running
// asynchronous computation in which every reachable node executes at most
// once.
package graph
