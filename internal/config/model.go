// Package config holds the format-agnostic model of a loaded workflow.
package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Model is the unified representation of everything loaded for one run.
type Model struct {
	Workflow *Workflow
}

// Workflow is the user's execution graph definition.
type Workflow struct {
	Params []*Param
	Tasks  []*Task
}

// Param declares an externally supplied value.
type Param struct {
	Name        string
	Type        cty.Type
	Description string
	Default     *cty.Value
}

// Task is the format-agnostic representation of a `task` block.
type Task struct {
	RunnerType string
	Name       string
	// Arguments maps attribute names to their unevaluated expressions;
	// ArgsBody is the same block kept whole for late decoding.
	Arguments map[string]hcl.Expression
	ArgsBody  hcl.Body
	// DependsOn lists ordering-only predecessors by task address.
	DependsOn []string
	// Fallback, when set, replaces the task's result on failure.
	Fallback *cty.Value
}

// Address returns the task's canonical identifier, e.g. "fetch.users" for
// task "fetch" "users".
func (t *Task) Address() string {
	return fmt.Sprintf("%s.%s", t.RunnerType, t.Name)
}
