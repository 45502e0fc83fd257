// Package http_request provides the built-in 'http_request' runner.
package http_request

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/zclconf/go-cty/cty"

	"github.com/fsahin/trickle/internal/ctxlog"
	"github.com/fsahin/trickle/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the http_request runner.
type Input struct {
	URL     string `hcl:"url"`
	Method  string `hcl:"method,optional"`
	Body    string `hcl:"body,optional"`
	Timeout string `hcl:"timeout,optional"`
}

// OnRunHttpRequest is the handler for the 'http_request' runner.
func OnRunHttpRequest(ctx context.Context, input *Input) (cty.Value, error) {
	logger := ctxlog.FromContext(ctx)

	method := input.Method
	if method == "" {
		method = http.MethodGet
	}

	timeout := 30 * time.Second
	if input.Timeout != "" {
		parsed, err := time.ParseDuration(input.Timeout)
		if err != nil {
			return cty.NilVal, fmt.Errorf("failed to parse timeout: %w", err)
		}
		timeout = parsed
	}

	logger.Info("Making HTTP request", "method", method, "url", input.URL)

	var body io.Reader
	if input.Body != "" {
		body = strings.NewReader(input.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, input.URL, body)
	if err != nil {
		return cty.NilVal, fmt.Errorf("failed to create request: %w", err)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return cty.NilVal, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	logger.Info("Received HTTP response", "status", resp.Status)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return cty.NilVal, fmt.Errorf("failed to read response body: %w", err)
	}

	return cty.ObjectVal(map[string]cty.Value{
		"status_code": cty.NumberIntVal(int64(resp.StatusCode)),
		"body":        cty.StringVal(string(respBody)),
	}), nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.Register("http_request", &registry.Handler{
		NewInput: func() any { return new(Input) },
		Fn:       OnRunHttpRequest,
	})
}
