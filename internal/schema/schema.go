// Package schema defines the HCL surface of a workflow file.
package schema

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// TaskArgs represents the content of the 'arguments' block within a task.
// It stays a raw body so expressions can be evaluated late, against the
// outputs of the tasks they reference.
type TaskArgs struct {
	Body hcl.Body `hcl:",remain"`
}

// Task represents a `task` block from a workflow file: one runnable
// instance of a registered runner type.
type Task struct {
	RunnerType string         `hcl:"runner_type,label"`
	Name       string         `hcl:"task_name,label"`
	Arguments  *TaskArgs      `hcl:"arguments,block"`
	DependsOn  []string       `hcl:"depends_on,optional"`
	Fallback   hcl.Expression `hcl:"fallback,optional"`
}

// Param represents a `param` block: an externally supplied value the
// workflow requires at run time.
type Param struct {
	Name        string     `hcl:"name,label"`
	Type        string     `hcl:"type,optional"`
	Description string     `hcl:"description,optional"`
	Default     *cty.Value `hcl:"default,optional"`
}

// WorkflowConfig represents the top-level structure of a workflow file.
type WorkflowConfig struct {
	Params []*Param `hcl:"param,block"`
	Tasks  []*Task  `hcl:"task,block"`
	Body   hcl.Body `hcl:",remain"`
}
