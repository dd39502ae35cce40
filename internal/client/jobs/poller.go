package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/vidbatch/internal/client/models"
	"github.com/dmitrijs2005/vidbatch/internal/logging"
	"github.com/google/uuid"
)

const DefaultInterval = 2 * time.Second

var (
	ErrStopped         = errors.New("polling stopped")
	ErrTooManyFailures = errors.New("too many consecutive poll failures")
	ErrEmptyJobID      = errors.New("job id is required")
	ErrInvalidInterval = errors.New("poll interval must be positive")
)

// StatusFetcher returns one job snapshot.
type StatusFetcher interface {
	JobStatus(ctx context.Context, jobID string) (models.Job, error)
}

// UpdateFunc receives every successfully fetched snapshot.
type UpdateFunc func(job models.Job)

type Poller struct {
	fetcher   StatusFetcher
	interval  time.Duration
	maxErrors int
	log       logging.Logger
	newTicker TickerFunc

	mu     sync.Mutex
	active map[string]*Handle
}

type Option func(*Poller)

func WithInterval(d time.Duration) Option {
	return func(p *Poller) { p.interval = d }
}

func WithLogger(l logging.Logger) Option {
	return func(p *Poller) { p.log = l }
}

func WithTicker(fn TickerFunc) Option {
	return func(p *Poller) { p.newTicker = fn }
}

// WithMaxConsecutiveErrors ends a loop with ErrTooManyFailures after n
// failed fetches in a row. Zero means unlimited.
func WithMaxConsecutiveErrors(n int) Option {
	return func(p *Poller) { p.maxErrors = n }
}

func NewPoller(fetcher StatusFetcher, opts ...Option) (*Poller, error) {
	p := &Poller{
		fetcher:   fetcher,
		interval:  DefaultInterval,
		log:       logging.Nop(),
		newTicker: newRealTicker,
		active:    make(map[string]*Handle),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.interval <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInterval, p.interval)
	}
	if p.maxErrors < 0 {
		return nil, fmt.Errorf("max consecutive errors must not be negative: %d", p.maxErrors)
	}
	return p, nil
}

// Start begins polling jobID. If jobID is already being polled, the previous
// handle is stopped and the new loop makes its first fetch only after the
// previous loop has exited. Start itself does not block, so it is safe to
// call from an update callback. Cancelling ctx stops the loop.
func (p *Poller) Start(ctx context.Context, jobID string, onUpdate UpdateFunc) (*Handle, error) {
	if jobID == "" {
		return nil, ErrEmptyJobID
	}

	loopCtx, cancel := context.WithCancel(ctx)
	h := &Handle{
		id:       uuid.NewString(),
		jobID:    jobID,
		poller:   p,
		onUpdate: onUpdate,
		cancel:   cancel,
		done:     make(chan struct{}),
	}

	p.mu.Lock()
	prev := p.active[jobID]
	p.active[jobID] = h
	if prev != nil {
		prev.signal()
	}
	p.mu.Unlock()

	if prev == nil {
		go h.run(loopCtx)
		return h, nil
	}

	p.log.Debug(ctx, "superseding poll", "job_id", jobID, "previous", prev.id, "handle", h.id)
	go func() {
		<-prev.done
		h.run(loopCtx)
	}()
	return h, nil
}

// Active returns the handle currently polling jobID.
func (p *Poller) Active(jobID string) (*Handle, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	h, ok := p.active[jobID]
	return h, ok
}

// StopAll stops every active loop and waits for them to exit.
func (p *Poller) StopAll() {
	p.mu.Lock()
	handles := make([]*Handle, 0, len(p.active))
	for _, h := range p.active {
		handles = append(handles, h)
	}
	p.mu.Unlock()

	for _, h := range handles {
		h.Stop()
	}
}

func (p *Poller) release(h *Handle) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active[h.jobID] == h {
		delete(p.active, h.jobID)
	}
}
