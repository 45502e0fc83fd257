// Package hcl loads workflow files written in HCL and translates them into
// the format-agnostic config model.
package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/fsahin/trickle/internal/config"
	"github.com/fsahin/trickle/internal/ctxlog"
	"github.com/fsahin/trickle/internal/fsutil"
	"github.com/fsahin/trickle/internal/schema"
)

// Loader parses .hcl workflow files.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a Loader with a fresh parser.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Load reads every .hcl file at path (a file or a directory), merges the
// declarations and returns the translated model.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("finding workflow files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl workflow files found at %s", path)
	}
	logger.Debug("Found workflow files.", "count", len(files))

	merged := &schema.WorkflowConfig{}
	for _, file := range files {
		hclFile, diags := l.parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("parsing %s: %w", file, diags)
		}

		var wf schema.WorkflowConfig
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &wf); diags.HasErrors() {
			return nil, fmt.Errorf("decoding %s: %w", file, diags)
		}

		merged.Params = append(merged.Params, wf.Params...)
		merged.Tasks = append(merged.Tasks, wf.Tasks...)
		logger.Debug("Loaded workflow file.", "file", file, "tasks", len(wf.Tasks), "params", len(wf.Params))
	}

	return l.translate(merged)
}
