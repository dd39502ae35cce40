package upload

import "sync"

// Func receives progress percentages.
type Func func(percent int)

// Progress turns transport events into the reported percentage sequence.
// It is safe for concurrent use; the transport reports bytes from its own
// goroutine.
type Progress struct {
	mu     sync.Mutex
	policy Policy
	fn     Func
	last   int
	pinned bool
	closed bool
}

func NewProgress(policy Policy, fn Func) *Progress {
	return &Progress{policy: policy, fn: fn, last: -1}
}

// Start reports 0.
func (p *Progress) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.emit(0)
}

func (p *Progress) Transferred(sent, total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pinned {
		return
	}
	p.emit(p.policy.transferPercent(sent, total))
}

// TransferComplete pins the value at Policy.Pin. Repeated calls are no-ops.
func (p *Progress) TransferComplete() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pin()
}

// Succeeded reports 100, pinning first if the transfer never signalled
// completion. It closes the reporter.
func (p *Progress) Succeeded() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pin()
	p.emit(100)
	p.closed = true
}

// Failed closes the reporter without emitting.
func (p *Progress) Failed() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
}

// Last returns the most recently reported value, or -1.
func (p *Progress) Last() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

func (p *Progress) pin() {
	if p.pinned || p.closed {
		return
	}
	p.pinned = true
	p.emit(p.policy.Pin())
}

// emit must be called with mu held.
func (p *Progress) emit(v int) {
	if p.closed || v <= p.last {
		return
	}
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	p.last = v
	if p.fn != nil {
		p.fn(v)
	}
}
