package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Weboses/analyse.arsenio/internal/shared/telemetry"
)

// Handle tracks one submitted task. Done closes when the task finishes;
// Err is valid after that.
type Handle struct {
	done chan struct{}

	mu  sync.Mutex
	err error
}

// Done returns a channel closed when the task has finished.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Err returns the task's error, if any. Only meaningful after Done.
func (h *Handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

func (h *Handle) finish(err error) {
	h.mu.Lock()
	h.err = err
	h.mu.Unlock()
	close(h.done)
}

// Runner executes background tasks. Submissions outlive the request that
// made them, so the task gets a detached context with its own timeout.
type Runner interface {
	Submit(ctx context.Context, name string, fn func(context.Context) error) (*Handle, error)
	Shutdown(ctx context.Context) error
}

// InProcess runs tasks on goroutines within the server process.
type InProcess struct {
	Timeout time.Duration

	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
}

// NewInProcess builds a runner with a per-task timeout.
func NewInProcess(timeout time.Duration) *InProcess {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &InProcess{Timeout: timeout}
}

// Submit starts the task on its own goroutine. The request context is only
// consulted for values callers explicitly carry over; cancellation of the
// request does not cancel the task.
func (r *InProcess) Submit(ctx context.Context, name string, fn func(context.Context) error) (*Handle, error) {
	_ = ctx
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, fmt.Errorf("runner is shut down")
	}
	r.wg.Add(1)
	r.mu.Unlock()

	handle := &Handle{done: make(chan struct{})}
	go func() {
		defer r.wg.Done()
		taskCtx, cancel := context.WithTimeout(context.Background(), r.Timeout)
		defer cancel()

		started := time.Now()
		var err error
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					err = fmt.Errorf("task panic: %v", rec)
				}
			}()
			err = fn(taskCtx)
		}()

		fields := map[string]any{
			"task":        name,
			"duration_ms": float64(time.Since(started).Microseconds()) / 1000.0,
		}
		if err != nil {
			fields["error"] = err.Error()
			telemetry.Error("task.finished", fields)
		} else {
			telemetry.Info("task.finished", fields)
		}
		handle.finish(err)
	}()
	return handle, nil
}

// Shutdown stops accepting tasks and waits for running ones, bounded by ctx.
func (r *InProcess) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
