// Package socketio_request provides the built-in 'socketio_request' runner:
// it connects to a socket.io endpoint, emits one event and waits for the
// reply event before disconnecting.
package socketio_request

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/zclconf/go-cty/cty"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/fsahin/trickle/internal/ctxlog"
	"github.com/fsahin/trickle/internal/ctyutil"
	"github.com/fsahin/trickle/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the socketio_request runner.
type Input struct {
	URL                string    `hcl:"url"`
	Namespace          string    `hcl:"namespace,optional"`
	EmitEvent          string    `hcl:"emit_event"`
	OnEvent            string    `hcl:"on_event"`
	EmitData           cty.Value `hcl:"emit_data,optional"`
	Timeout            string    `hcl:"timeout,optional"`
	InsecureSkipVerify bool      `hcl:"insecure_skip_verify,optional"`
}

type opResult struct {
	value cty.Value
	err   error
}

// OnRunSocketIORequest is the handler for the 'socketio_request' runner.
func OnRunSocketIORequest(ctx context.Context, input *Input) (cty.Value, error) {
	logger := ctxlog.FromContext(ctx).With("runner", "socketio_request", "url", input.URL)

	timeout := 15 * time.Second
	if input.Timeout != "" {
		parsed, err := time.ParseDuration(input.Timeout)
		if err != nil {
			return cty.NilVal, fmt.Errorf("failed to parse timeout: %w", err)
		}
		timeout = parsed
	}

	client, err := connect(ctx, input, timeout)
	if err != nil {
		return cty.NilVal, err
	}
	defer client.Disconnect()

	logger.Info("Executing request", "emitEvent", input.EmitEvent, "onEvent", input.OnEvent)

	done := make(chan opResult, 1)
	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client.Once(types.EventName(input.OnEvent), func(data ...any) {
		logger.Debug("Reply event received.", "event", input.OnEvent)
		responseData := cty.NullVal(cty.DynamicPseudoType)
		if len(data) > 0 {
			converted, err := ctyutil.FromGo(data[0])
			if err != nil {
				done <- opResult{err: err}
				return
			}
			responseData = converted
		}
		done <- opResult{value: cty.ObjectVal(map[string]cty.Value{"response_data": responseData})}
	})

	emitData, err := ctyutil.ToGo(input.EmitData)
	if err != nil {
		return cty.NilVal, fmt.Errorf("failed to convert emit_data: %w", err)
	}
	logger.Debug("Emitting event.", "event", input.EmitEvent)
	client.Emit(input.EmitEvent, emitData)

	select {
	case <-opCtx.Done():
		return cty.NilVal, fmt.Errorf("timed out after %v waiting for event '%s'", timeout, input.OnEvent)
	case res := <-done:
		if res.err != nil {
			return cty.NilVal, res.err
		}
		logger.Info("Received reply event", "event", input.OnEvent)
		return res.value, nil
	}
}

// connect establishes the socket.io connection and waits for it to come up.
func connect(ctx context.Context, input *Input, timeout time.Duration) (*socket.Socket, error) {
	logger := ctxlog.FromContext(ctx)

	parsedURL, err := url.Parse(input.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	opts := socket.DefaultOptions()
	opts.SetPath(parsedURL.Path)
	if input.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(input.Namespace, opts)

	connectChan := make(chan error, 1)
	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Connected", "sid", io.Id())
		connectChan <- nil
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		connectChan <- errs[0].(error)
	})

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return io, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection")
	case <-time.After(timeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %v waiting for socket.io connection", timeout)
	}
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.Register("socketio_request", &registry.Handler{
		NewInput: func() any { return new(Input) },
		Fn:       OnRunSocketIORequest,
	})
}
