package relay

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestRelay_BasicOperations(t *testing.T) {
	r := New()

	if l := r.Len(); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
	if _, ok := r.TryRecv(); ok {
		t.Error("expected empty relay to yield nothing")
	}

	if err := r.Send("first"); err != nil {
		t.Fatalf("expected send to succeed, got %v", err)
	}
	if err := r.Send("second"); err != nil {
		t.Fatalf("expected send to succeed, got %v", err)
	}
	if l := r.Len(); l != 2 {
		t.Errorf("expected length 2, got %d", l)
	}

	msg, ok := r.TryRecv()
	if !ok || msg != "first" {
		t.Errorf("expected first, got %q (ok=%v)", msg, ok)
	}
	msg, ok = r.TryRecv()
	if !ok || msg != "second" {
		t.Errorf("expected second, got %q (ok=%v)", msg, ok)
	}
	if l := r.Len(); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
}

func TestRelay_Drain(t *testing.T) {
	r := New()

	if got := r.Drain(); got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}

	for i := 0; i < 3; i++ {
		if err := r.Send(fmt.Sprintf("msg-%d", i)); err != nil {
			t.Fatalf("send %d: %v", i, err)
		}
	}

	got := r.Drain()
	want := []string{"msg-0", "msg-1", "msg-2"}
	if len(got) != len(want) {
		t.Fatalf("expected %d messages, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], got[i])
		}
	}
	if l := r.Len(); l != 0 {
		t.Errorf("expected drained relay to be empty, got %d", l)
	}
}

func TestRelay_Unbounded(t *testing.T) {
	r := New()
	const n = 100000

	for i := 0; i < n; i++ {
		if err := r.Send("x"); err != nil {
			t.Fatalf("send %d failed without a consumer: %v", i, err)
		}
	}
	if l := r.Len(); l != n {
		t.Errorf("expected %d queued, got %d", n, l)
	}
}

func TestRelay_Capacity(t *testing.T) {
	r := New(WithCapacity(2))

	if err := r.Send("a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Send("b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Send("c"); !errors.Is(err, ErrFull) {
		t.Errorf("expected ErrFull, got %v", err)
	}

	got := r.Drain()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("expected [a b], got %v", got)
	}

	if err := r.Send("d"); err != nil {
		t.Errorf("expected room after drain, got %v", err)
	}
}

func TestRelay_Close(t *testing.T) {
	r := New()
	_ = r.Send("queued")

	if r.IsClosed() {
		t.Error("expected relay to be open initially")
	}

	r.Close()

	if !r.IsClosed() {
		t.Error("expected relay to be closed after Close()")
	}
	if err := r.Send("late"); !errors.Is(err, ErrDisconnected) {
		t.Errorf("expected ErrDisconnected, got %v", err)
	}
	if _, ok := r.TryRecv(); ok {
		t.Error("expected queued messages to be discarded on close")
	}

	// Close again should be harmless.
	r.Close()
}

func TestRelay_ConcurrentProducerConsumer(t *testing.T) {
	r := New()
	const n = 5000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			if err := r.Send(fmt.Sprintf("%d", i)); err != nil {
				t.Errorf("send %d: %v", i, err)
				return
			}
		}
	}()

	received := make([]string, 0, n)
	for len(received) < n {
		received = append(received, r.Drain()...)
	}
	wg.Wait()

	for i, msg := range received {
		if msg != fmt.Sprintf("%d", i) {
			t.Fatalf("out of order at %d: got %q", i, msg)
		}
	}
}
