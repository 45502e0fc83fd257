// Package app wires the workflow loader, the runner registry and the graph
// engine together into the runnable application.
package app

import (
	"io"
	"log/slog"

	"github.com/fsahin/trickle/internal/registry"
	"github.com/fsahin/trickle/modules/env_vars"
	"github.com/fsahin/trickle/modules/http_request"
	"github.com/fsahin/trickle/modules/print"
	"github.com/fsahin/trickle/modules/socketio_request"
)

// App is one application instance with its own logger and registry.
type App struct {
	out      io.Writer
	logger   *slog.Logger
	registry *registry.Registry
}

// NewApp creates an App with all built-in runner modules registered.
func NewApp(outW io.Writer, errW io.Writer, cfg *Config) *App {
	a := &App{
		out:      outW,
		logger:   newLogger(cfg.LogLevel, cfg.LogFormat, errW),
		registry: registry.New(),
	}

	for _, m := range builtinModules() {
		m.Register(a.registry)
	}

	return a
}

// builtinModules lists the runner modules compiled into the binary.
func builtinModules() []registry.Module {
	return []registry.Module{
		&print.Module{},
		&env_vars.Module{},
		&http_request.Module{},
		&socketio_request.Module{},
	}
}
