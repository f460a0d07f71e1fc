package utils

import "testing"

func TestCircularQueueAppendOverwritesOldest(t *testing.T) {
	q := NewCircularQueue[int](3)
	if q.Len() != 0 || q.Cap() != 3 {
		t.Fatalf("expected empty queue of capacity 3, got len %d cap %d", q.Len(), q.Cap())
	}
	for i := 1; i <= 5; i++ {
		if err := q.Append(i); err != nil {
			t.Fatalf("expected append to succeed, got %v", err)
		}
	}
	if !q.Full() {
		t.Fatalf("expected queue to be full")
	}
	got := q.Slice(nil)
	if len(got) != 3 || got[0] != 3 || got[1] != 4 || got[2] != 5 {
		t.Fatalf("expected [3 4 5], got %v", got)
	}
	if v, err := q.Get(0); err != nil || v != 3 {
		t.Fatalf("expected oldest item 3, got %d (%v)", v, err)
	}
	if _, err := q.Get(3); err == nil {
		t.Fatalf("expected out of range error")
	}
}

func TestCircularQueuePopAndSet(t *testing.T) {
	q := NewCircularQueue[string](2)
	_ = q.Append("a")
	_ = q.Append("b")
	if err := q.Set(1, "c"); err != nil {
		t.Fatalf("expected set to succeed, got %v", err)
	}
	if v, ok := q.Pop(); !ok || v != "a" {
		t.Fatalf("expected to pop a, got %q", v)
	}
	if v, ok := q.Pop(); !ok || v != "c" {
		t.Fatalf("expected to pop c, got %q", v)
	}
	if _, ok := q.Pop(); ok {
		t.Fatalf("expected empty queue")
	}
}

func TestCircularQueueZeroCapacity(t *testing.T) {
	q := NewCircularQueue[int](0)
	if err := q.Append(1); err == nil {
		t.Fatalf("expected append on zero-capacity queue to fail")
	}
}

func TestCircularQueueClear(t *testing.T) {
	q := NewCircularQueue[int](4)
	for i := range 6 {
		_ = q.Append(i)
	}
	q.Clear()
	if q.Len() != 0 {
		t.Fatalf("expected cleared queue, got %d items", q.Len())
	}
	_ = q.Append(9)
	if got := q.Slice(nil); len(got) != 1 || got[0] != 9 {
		t.Fatalf("expected [9], got %v", got)
	}
}
