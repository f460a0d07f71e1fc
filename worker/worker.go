package worker

import (
	"io"
	"log/slog"
	"runtime"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/roam/oerror"
	"github.com/sasha-s/go-deadlock"
)

// Pool runs submitted jobs on a fixed set of goroutines. Jobs that panic are reported to sentry
// and do not take the worker down.
type Pool struct {
	queue  chan func()
	logger *slog.Logger

	closed bool
	done   chan struct{}
	mu     deadlock.RWMutex
}

// NewPool starts workers goroutines. A non-positive count uses runtime.NumCPU.
func NewPool(workers int, logger *slog.Logger) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	p := &Pool{
		queue:  make(chan func(), workers*64),
		logger: logger,
		done:   make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for {
		select {
		case f := <-p.queue:
			p.run(f)
		case <-p.done:
			return
		}
	}
}

func (p *Pool) run(f func()) {
	defer func() {
		if err := recover(); err != nil {
			hub := sentry.CurrentHub().Clone()
			hub.Recover(oerror.New("worker job crashed: %v", err))
			hub.Flush(time.Second * 5)
			p.logger.Error("worker job crashed", "err", err)
		}
	}()
	f()
}

// Submit queues f without blocking. It returns false if the queue is full or the pool is closed,
// in which case f will not run.
func (p *Pool) Submit(f func()) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}

	select {
	case p.queue <- f:
		return true
	default:
		return false
	}
}

// Close stops the workers. Jobs still queued are dropped.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.done)
}
