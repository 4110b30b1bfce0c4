// Package scripting runs JavaScript files against the termscroll native
// modules on a goja event loop.
package scripting

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/eventloop"
	"github.com/dop251/goja_nodejs/require"
)

// DefaultSyncTimeout bounds RunOnLoopSync.
const DefaultSyncTimeout = 5 * time.Second

// ErrNotRunning is returned once the runtime has been closed.
var ErrNotRunning = errors.New("event loop not running")

// Runtime owns a goja event loop. goja.Runtime is not goroutine-safe, so every
// access goes through RunOnLoop or RunOnLoopSync.
type Runtime struct {
	loop     *eventloop.EventLoop
	registry *require.Registry
	logger   *slog.Logger

	mu      sync.RWMutex
	vm      *goja.Runtime
	timeout time.Duration
	stopped bool

	ctx    context.Context
	cancel context.CancelFunc
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger behind the script "log" global.
func WithLogger(logger *slog.Logger) Option {
	return func(rt *Runtime) {
		if logger != nil {
			rt.logger = logger
		}
	}
}

// WithTimeout overrides DefaultSyncTimeout. Zero disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(rt *Runtime) { rt.timeout = d }
}

// NewRuntime starts an event loop resolving require() through registry, which
// may be nil. The runtime closes when ctx is done.
//
// Besides the standard library, scripts see console, log (debug/info/warn/error
// through the logger) and print, which writes a line to stdout.
func NewRuntime(ctx context.Context, registry *require.Registry, stdout io.Writer, opts ...Option) (*Runtime, error) {
	if registry == nil {
		registry = require.NewRegistry()
	}
	if stdout == nil {
		stdout = io.Discard
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	rt := &Runtime{
		loop: eventloop.NewEventLoop(
			eventloop.WithRegistry(registry),
			eventloop.EnableConsole(true),
		),
		registry: registry,
		logger:   slog.New(slog.DiscardHandler),
		timeout:  DefaultSyncTimeout,
		ctx:      loopCtx,
		cancel:   cancel,
	}
	for _, opt := range opts {
		opt(rt)
	}

	rt.loop.Start()

	err := rt.RunOnLoopSync(func(vm *goja.Runtime) error {
		rt.mu.Lock()
		rt.vm = vm
		rt.mu.Unlock()
		if err := vm.Set("log", newLogObject(vm, rt.logger)); err != nil {
			return err
		}
		return vm.Set("print", func(call goja.FunctionCall) goja.Value {
			args := make([]any, len(call.Arguments))
			for i, arg := range call.Arguments {
				args[i] = arg.String()
			}
			_, _ = fmt.Fprintln(stdout, args...)
			return goja.Undefined()
		})
	})
	if err != nil {
		_ = rt.Close()
		return nil, fmt.Errorf("failed to initialize runtime: %w", err)
	}

	context.AfterFunc(ctx, func() { _ = rt.Close() })

	return rt, nil
}

// Registry returns the require registry shared with the loop.
func (rt *Runtime) Registry() *require.Registry { return rt.registry }

// Done is closed once the runtime stops.
func (rt *Runtime) Done() <-chan struct{} { return rt.ctx.Done() }

// Close interrupts any running script and stops the event loop. Pending
// timers are dropped. It is safe to call more than once.
func (rt *Runtime) Close() error {
	rt.mu.Lock()
	if rt.stopped {
		rt.mu.Unlock()
		return nil
	}
	rt.stopped = true
	rt.mu.Unlock()

	rt.cancel()
	rt.interrupt(ErrNotRunning)
	rt.loop.Stop()
	return nil
}

// interrupt aborts the JavaScript currently executing on the loop, if any.
func (rt *Runtime) interrupt(v any) {
	rt.mu.RLock()
	vm := rt.vm
	rt.mu.RUnlock()
	if vm != nil {
		vm.Interrupt(v)
	}
}

// RunOnLoop schedules fn on the loop goroutine. It reports false if the loop
// is not running.
func (rt *Runtime) RunOnLoop(fn func(*goja.Runtime)) bool {
	rt.mu.RLock()
	stopped := rt.stopped
	rt.mu.RUnlock()
	if stopped {
		return false
	}
	return rt.loop.RunOnLoop(fn)
}

// RunOnLoopSync runs fn on the loop goroutine and waits for its result.
func (rt *Runtime) RunOnLoopSync(fn func(*goja.Runtime) error) error {
	rt.mu.RLock()
	timeout := rt.timeout
	rt.mu.RUnlock()

	errCh := make(chan error, 1)
	if !rt.RunOnLoop(func(vm *goja.Runtime) { errCh <- fn(vm) }) {
		return ErrNotRunning
	}

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case err := <-errCh:
		return err
	case <-rt.Done():
		return errors.New("runtime stopped before completion")
	case <-expired:
		err := fmt.Errorf("operation timed out after %v", timeout)
		rt.interrupt(err)
		return err
	}
}

// LoadScript compiles and runs code. name is used in stack traces.
func (rt *Runtime) LoadScript(name, code string) error {
	return rt.RunOnLoopSync(func(vm *goja.Runtime) error {
		// left over from an earlier timeout; Close interrupts after cancelling
		vm.ClearInterrupt()
		if rt.ctx.Err() != nil {
			return ErrNotRunning
		}
		prg, err := goja.Compile(name, code, true)
		if err != nil {
			return fmt.Errorf("failed to compile %s: %w", name, err)
		}
		if _, err := vm.RunProgram(prg); err != nil {
			return fmt.Errorf("failed to run %s: %w", name, err)
		}
		return nil
	})
}

// GetGlobal exports a global variable, or returns nil if it is unset.
func (rt *Runtime) GetGlobal(name string) (any, error) {
	var result any
	err := rt.RunOnLoopSync(func(vm *goja.Runtime) error {
		val := vm.Get(name)
		if val == nil || goja.IsUndefined(val) || goja.IsNull(val) {
			return nil
		}
		result = val.Export()
		return nil
	})
	return result, err
}
