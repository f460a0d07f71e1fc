package worker

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoolRunsJobs(t *testing.T) {
	p := NewPool(4, nil)
	defer p.Close()

	var (
		wg    sync.WaitGroup
		count atomic.Int32
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		if !p.Submit(func() {
			defer wg.Done()
			count.Add(1)
		}) {
			wg.Done()
			t.Fatalf("expected submit %d to succeed", i)
		}
	}
	wg.Wait()
	if count.Load() != 100 {
		t.Fatalf("expected 100 jobs to run, got %d", count.Load())
	}
}

func TestPoolRecoversPanics(t *testing.T) {
	p := NewPool(1, nil)
	defer p.Close()

	p.Submit(func() { panic("boom") })

	ran := make(chan struct{})
	p.Submit(func() { close(ran) })
	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatalf("expected worker to survive a panic")
	}
}

func TestPoolSubmitAfterClose(t *testing.T) {
	p := NewPool(1, nil)
	p.Close()
	p.Close()
	if p.Submit(func() {}) {
		t.Fatalf("expected submit on a closed pool to fail")
	}
}
