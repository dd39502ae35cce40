package jobs

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/dmitrijs2005/vidbatch/internal/client/client"
	"github.com/dmitrijs2005/vidbatch/internal/client/models"
)

// Handle controls one polling loop.
type Handle struct {
	id       string
	jobID    string
	poller   *Poller
	onUpdate UpdateFunc
	cancel   context.CancelFunc
	done     chan struct{}

	stopped atomic.Bool

	// written once before done is closed
	result models.Job
	err    error
}

func (h *Handle) ID() string    { return h.id }
func (h *Handle) JobID() string { return h.jobID }

// Done is closed when the loop has exited.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Stop ends the loop and waits for it to exit, including a callback that is
// already running. Calling it again is a no-op. The update callback must use
// Cancel instead: Stop from inside it never returns.
func (h *Handle) Stop() {
	h.signal()
	<-h.done
}

// Cancel ends the loop without waiting for it to exit. Use Stop to be sure
// no callback is still running.
func (h *Handle) Cancel() {
	h.signal()
}

// Wait blocks until the loop exits and returns the terminal snapshot.
// A stopped or superseded loop yields ErrStopped.
func (h *Handle) Wait(ctx context.Context) (models.Job, error) {
	select {
	case <-h.done:
		return h.result, h.err
	case <-ctx.Done():
		return models.Job{}, ctx.Err()
	}
}

func (h *Handle) signal() {
	h.stopped.Store(true)
	h.cancel()
}

func (h *Handle) run(ctx context.Context) {
	defer close(h.done)
	defer h.poller.release(h)
	defer h.cancel()

	if h.stopped.Load() {
		h.err = ErrStopped
		return
	}

	p := h.poller
	log := p.log.With("job_id", h.jobID, "handle", h.id)

	ticker := p.newTicker(p.interval)
	defer ticker.Stop()

	failures := 0
	for {
		job, err := p.fetcher.JobStatus(ctx, h.jobID)

		// a fetch that resolves after Stop is discarded
		if h.stopped.Load() || ctx.Err() != nil {
			h.err = ErrStopped
			return
		}

		if err != nil {
			if client.IsAuthError(err) {
				log.Warn(ctx, "poll aborted", "error", err)
				h.err = err
				return
			}
			failures++
			log.Warn(ctx, "poll failed", "attempt", failures, "error", err)
			if p.maxErrors > 0 && failures >= p.maxErrors {
				h.err = fmt.Errorf("%w: %d in a row: %w", ErrTooManyFailures, failures, err)
				return
			}
		} else {
			failures = 0
			if !h.deliver(job) {
				h.err = ErrStopped
				return
			}
			if job.IsTerminal() {
				log.Debug(ctx, "job finished", "status", string(job.Status))
				h.result = job
				return
			}
		}

		select {
		case <-ctx.Done():
			h.err = ErrStopped
			return
		case <-ticker.C():
		}
	}
}

// deliver invokes the callback unless the handle has been stopped. It
// reports false when the handle was stopped before or during the callback.
func (h *Handle) deliver(job models.Job) bool {
	if h.stopped.Load() {
		return false
	}
	if h.onUpdate != nil {
		h.onUpdate(job)
	}
	return !h.stopped.Load()
}
