// Package runner hosts pipeline executions off the caller's thread with
// a latest-request-wins contract: every Submit gets a monotonically
// increasing ID, a newer submission cancels the in-flight run, and a
// stale result arriving after a newer request reports ErrSuperseded
// instead of its output.
package runner

import (
	"context"
	"errors"
	"sync"

	"resort_proforma/pkg/core/pipeline"
	"resort_proforma/pkg/models"
)

// ErrSuperseded marks a result discarded because a newer request was
// issued before this one completed.
var ErrSuperseded = errors.New("request superseded by a newer submission")

// Pipeline is the execution surface the runner drives. Satisfied by
// *pipeline.Orchestrator; tests substitute a controllable fake.
type Pipeline interface {
	Run(ctx context.Context, input models.FullModelInput) (*pipeline.FullModelOutput, error)
}

// Result is what a request resolves to: exactly one of Output or Err.
type Result struct {
	Output *pipeline.FullModelOutput
	Err    error
}

// Request is a handle to one submitted run. Done receives exactly one
// Result.
type Request struct {
	ID   uint64
	Done chan Result
}

// Runner serializes the "which request is current" bookkeeping; the
// runs themselves execute concurrently on their own goroutines.
type Runner struct {
	pipe Pipeline

	mu     sync.Mutex
	seq    uint64
	latest uint64
	cancel context.CancelFunc
}

// New creates a runner over the given pipeline. nil gets a default
// orchestrator with an in-memory cache.
func New(pipe Pipeline) *Runner {
	if pipe == nil {
		pipe = pipeline.New(nil)
	}
	return &Runner{pipe: pipe}
}

// Submit starts a run and returns immediately. Any in-flight run is
// cancelled: its goroutine still drains, but its result arrives as
// ErrSuperseded. The caller reads the outcome from Request.Done.
func (r *Runner) Submit(ctx context.Context, input models.FullModelInput) *Request {
	r.mu.Lock()
	r.seq++
	id := r.seq
	r.latest = id
	if r.cancel != nil {
		r.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.mu.Unlock()

	req := &Request{ID: id, Done: make(chan Result, 1)}
	go func() {
		out, err := r.pipe.Run(runCtx, input)

		r.mu.Lock()
		stale := id != r.latest
		if !stale {
			// This run is still current; release its cancel func so a
			// later Submit does not cancel a dead context.
			cancel()
			r.cancel = nil
		}
		r.mu.Unlock()

		if stale {
			req.Done <- Result{Err: ErrSuperseded}
			return
		}
		req.Done <- Result{Output: out, Err: err}
	}()
	return req
}
