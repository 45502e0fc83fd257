package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/fsahin/trickle/internal/config"
	"github.com/fsahin/trickle/internal/schema"
)

// translate converts the HCL-specific workflow schema into the agnostic model.
func (l *Loader) translate(wf *schema.WorkflowConfig) (*config.Model, error) {
	workflow := &config.Workflow{}

	seenParams := make(map[string]bool)
	for _, p := range wf.Params {
		if seenParams[p.Name] {
			return nil, fmt.Errorf("duplicate param %q", p.Name)
		}
		seenParams[p.Name] = true

		param, err := l.translateParam(p)
		if err != nil {
			return nil, err
		}
		workflow.Params = append(workflow.Params, param)
	}

	seenTasks := make(map[string]bool)
	for _, t := range wf.Tasks {
		task, err := l.translateTask(t)
		if err != nil {
			return nil, err
		}
		if seenTasks[task.Address()] {
			return nil, fmt.Errorf("duplicate task %q", task.Address())
		}
		seenTasks[task.Address()] = true
		workflow.Tasks = append(workflow.Tasks, task)
	}

	return &config.Model{Workflow: workflow}, nil
}

// translateParam resolves the declared type and checks the default against it.
func (l *Loader) translateParam(p *schema.Param) (*config.Param, error) {
	typ, err := paramType(p.Type)
	if err != nil {
		return nil, fmt.Errorf("param %q: %w", p.Name, err)
	}

	param := &config.Param{
		Name:        p.Name,
		Type:        typ,
		Description: p.Description,
	}

	if p.Default != nil && !p.Default.IsNull() {
		converted, err := convert.Convert(*p.Default, typ)
		if err != nil {
			return nil, fmt.Errorf("param %q: default does not match type %s: %w", p.Name, typ.FriendlyName(), err)
		}
		param.Default = &converted
	}

	return param, nil
}

// translateTask extracts argument expressions and evaluates the fallback.
func (l *Loader) translateTask(t *schema.Task) (*config.Task, error) {
	task := &config.Task{
		RunnerType: t.RunnerType,
		Name:       t.Name,
		DependsOn:  t.DependsOn,
	}

	if t.Arguments != nil {
		task.ArgsBody = t.Arguments.Body
		task.Arguments = extractAttributes(t.Arguments.Body)
	}

	if t.Fallback != nil {
		val, diags := t.Fallback.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("task %q: fallback must be a constant expression: %w", task.Address(), diags)
		}
		if !val.IsNull() {
			task.Fallback = &val
		}
	}

	return task, nil
}

// paramType maps a declared param type keyword to its cty type. An empty
// declaration defaults to string.
func paramType(keyword string) (cty.Type, error) {
	switch keyword {
	case "", "string":
		return cty.String, nil
	case "number":
		return cty.Number, nil
	case "bool":
		return cty.Bool, nil
	}
	return cty.NilType, fmt.Errorf("unsupported param type %q", keyword)
}

// extractAttributes pulls the attribute expressions out of an arguments body.
func extractAttributes(body hcl.Body) map[string]hcl.Expression {
	if body == nil {
		return nil
	}
	attrs, _ := body.JustAttributes()
	if len(attrs) == 0 {
		return nil
	}
	exprs := make(map[string]hcl.Expression, len(attrs))
	for name, attr := range attrs {
		exprs[name] = attr.Expr
	}
	return exprs
}
