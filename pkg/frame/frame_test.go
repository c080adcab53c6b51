package frame

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestManualFire(t *testing.T) {
	m := NewManual()
	var order []int
	m.RequestFrame(func() { order = append(order, 1) })
	id := m.RequestFrame(func() { order = append(order, 2) })
	m.RequestFrame(func() {
		order = append(order, 3)
		m.RequestFrame(func() { order = append(order, 4) })
	})
	m.CancelFrame(id)

	if n := m.Fire(); n != 2 {
		t.Errorf("Fire() = %d, want 2", n)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 3 {
		t.Errorf("order = %v, want [1 3]", order)
	}
	if m.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1 requested during the frame", m.Pending())
	}
	m.Fire()
	if len(order) != 3 || order[2] != 4 {
		t.Errorf("order = %v, want [1 3 4]", order)
	}
	if m.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2", m.Frames())
	}
}

func TestManualIDsAreNonZero(t *testing.T) {
	m := NewManual()
	if id := m.RequestFrame(func() {}); id == 0 {
		t.Error("RequestFrame() returned the zero ID")
	}
}

func TestLoopRunsTasksAndFrames(t *testing.T) {
	l := NewLoop(1000, nil)
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- l.Run(ctx) }()

	fired := make(chan struct{})
	var loopOnly int32
	if !l.Post(func() {
		atomic.AddInt32(&loopOnly, 1)
		l.RequestFrame(func() {
			atomic.AddInt32(&loopOnly, 1)
			close(fired)
		})
	}) {
		t.Fatal("Post() = false on a running loop")
	}

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("frame did not fire")
	}
	if n := atomic.LoadInt32(&loopOnly); n != 2 {
		t.Errorf("callbacks ran %d times, want 2", n)
	}

	cancel()
	if err := <-errc; err != nil {
		t.Errorf("Run() = %v, want nil", err)
	}
	if l.Post(func() {}) {
		t.Error("Post() after stop = true, want false")
	}
}

func TestLoopCancelFrame(t *testing.T) {
	l := NewLoop(1000, nil)
	var ran int32
	id := l.RequestFrame(func() { atomic.AddInt32(&ran, 1) })
	l.CancelFrame(id)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	l.Run(ctx)

	if atomic.LoadInt32(&ran) != 0 {
		t.Error("cancelled callback ran")
	}
}

func TestNewLoopDefaultRate(t *testing.T) {
	l := NewLoop(0, nil)
	if l.Interval() != time.Second/DefaultFrameRate {
		t.Errorf("Interval() = %v", l.Interval())
	}
}

func TestLoopAfterFrame(t *testing.T) {
	l := NewLoop(1000, nil)
	var order []string
	done := make(chan struct{})
	l.AfterFrame(func() {
		order = append(order, "after")
		close(done)
	})
	l.RequestFrame(func() { order = append(order, "a") })
	l.RequestFrame(func() { order = append(order, "b") })

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- l.Run(ctx) }()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("after frame hook did not run")
	}
	cancel()
	<-errc

	if got := strings.Join(order, ","); got != "a,b,after" {
		t.Errorf("order = %s, want a,b,after", got)
	}
}
