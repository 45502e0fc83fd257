package app

import "errors"

// Config holds everything an App instance needs to run one workflow.
type Config struct {
	// WorkflowPath is a single .hcl file or a directory of .hcl files.
	WorkflowPath string
	// Target addresses the task whose result is requested. Empty means the
	// workflow's sole sink.
	Target string
	// Params are the externally supplied binding values, by param name.
	Params map[string]string

	LogFormat   string
	LogLevel    string
	WorkerCount int
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.WorkflowPath == "" {
		return nil, errors.New("WorkflowPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
