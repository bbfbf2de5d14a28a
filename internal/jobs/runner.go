// Package jobs runs named background work. At most one instance per name is active:
// enqueueing a name again cancels the previous instance and starts after it has stopped.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ccfrost/climbsync/internal/lib"
)

// State is the lifecycle state of a job.
type State int

const (
	Enqueued State = iota
	Running
	Succeeded
	Failed
	Cancelled
)

func (s State) String() string {
	switch s {
	case Enqueued:
		return "enqueued"
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	case Cancelled:
		return "cancelled"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Terminal reports whether s is a final state.
func (s State) Terminal() bool {
	return s >= Succeeded
}

// Result is the terminal state of a job and an optional message.
type Result struct {
	State   State
	Message string
}

// Work is the unit a job executes. It must return promptly once ctx is done.
type Work func(ctx context.Context) Result

// Constraint gates the start of a job.
type Constraint struct {
	Name string
	// Satisfied reports whether the job may start now.
	Satisfied func(ctx context.Context) bool
}

// Handle tracks one enqueued instance of a job.
type Handle struct {
	Name string

	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.Mutex
	state  State
	result Result
}

func (h *Handle) setState(s State) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = s
}

// State returns the current state.
func (h *Handle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Cancel stops the job. It has no effect on a finished job.
func (h *Handle) Cancel() {
	h.cancel()
}

// Done is closed when the job reaches a terminal state.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the job finishes or ctx is done.
func (h *Handle) Wait(ctx context.Context) (Result, error) {
	select {
	case <-h.done:
		h.mu.Lock()
		defer h.mu.Unlock()
		return h.result, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Runner executes jobs with a replace-existing policy per name.
type Runner struct {
	// Poll is how often unsatisfied constraints are re-checked.
	Poll time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu   sync.Mutex
	jobs map[string]*Handle
}

// NewRunner returns a Runner re-checking constraints every poll.
func NewRunner(poll time.Duration) *Runner {
	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{
		Poll:   poll,
		ctx:    ctx,
		cancel: cancel,
		jobs:   make(map[string]*Handle),
	}
}

// Enqueue schedules work under name. A pending or running instance with the
// same name is cancelled; the new instance starts only after it has finished.
func (r *Runner) Enqueue(name string, work Work, constraints ...Constraint) *Handle {
	ctx, cancel := context.WithCancel(r.ctx)
	h := &Handle{
		Name:   name,
		cancel: cancel,
		done:   make(chan struct{}),
		state:  Enqueued,
	}

	r.mu.Lock()
	prev := r.jobs[name]
	r.jobs[name] = h
	r.mu.Unlock()

	if prev != nil {
		lib.Logger().Info("Replacing job", slog.String("job", name), slog.String("previous_state", prev.State().String()))
		prev.Cancel()
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if prev != nil {
			<-prev.done
		}
		r.run(ctx, h, work, constraints)
	}()
	return h
}

// Current returns the most recently enqueued instance of name, if any.
func (r *Runner) Current(name string) *Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.jobs[name]
}

// Shutdown cancels every job and waits for them to finish.
func (r *Runner) Shutdown() {
	r.cancel()
	r.wg.Wait()
}

func (r *Runner) run(ctx context.Context, h *Handle, work Work, constraints []Constraint) {
	defer h.cancel()
	res := r.execute(ctx, h, work, constraints)

	r.mu.Lock()
	if r.jobs[h.Name] == h {
		delete(r.jobs, h.Name)
	}
	r.mu.Unlock()

	h.mu.Lock()
	h.state = res.State
	h.result = res
	h.mu.Unlock()
	close(h.done)

	lib.Logger().Info("Job finished",
		slog.String("job", h.Name),
		slog.String("state", res.State.String()),
		slog.String("message", res.Message))
}

func (r *Runner) execute(ctx context.Context, h *Handle, work Work, constraints []Constraint) Result {
	if err := r.awaitConstraints(ctx, h.Name, constraints); err != nil {
		return Result{State: Cancelled, Message: "cancelled before start"}
	}

	h.setState(Running)
	lib.Logger().Debug("Job started", slog.String("job", h.Name))
	res := work(ctx)
	if ctx.Err() != nil && res.State != Succeeded {
		res.State = Cancelled
	}
	if !res.State.Terminal() {
		res = Result{State: Failed, Message: fmt.Sprintf("job returned non-terminal state %s", res.State)}
	}
	return res
}

// awaitConstraints blocks until every constraint is satisfied or ctx is done.
func (r *Runner) awaitConstraints(ctx context.Context, name string, constraints []Constraint) error {
	if len(constraints) == 0 {
		return ctx.Err()
	}
	ticker := time.NewTicker(r.Poll)
	defer ticker.Stop()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		unmet := ""
		for _, c := range constraints {
			if !c.Satisfied(ctx) {
				unmet = c.Name
				break
			}
		}
		if unmet == "" {
			return nil
		}
		lib.Logger().Debug("Job waiting for constraint",
			slog.String("job", name),
			slog.String("constraint", unmet))
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
