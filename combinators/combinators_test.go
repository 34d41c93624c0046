package combinators

import (
	"context"
	"testing"
	"time"

	"github.com/example/conduit/channel"
)

func TestFromArrayAndDrain(t *testing.T) {
	ch := FromArray([]int{1, 2, 3})
	var got []int
	ForEach(ch, func(v int) { got = append(got, v) })
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("got %v", got)
	}
}

func TestSingletonAndEmpty(t *testing.T) {
	ch := Singleton(42)
	v, ok := ch.Recv()
	if !ok || v != 42 {
		t.Fatalf("Recv() = (%d, %v), want (42, true)", v, ok)
	}
	if _, ok := ch.Recv(); ok {
		t.Fatal("Singleton channel should be closed after one value")
	}

	if n := Drain(Empty[int]()); n != 0 {
		t.Fatalf("Drain(Empty) = %d, want 0", n)
	}
}

func TestMapAndFilter(t *testing.T) {
	in := FromArray([]int{1, 2, 3, 4, 5})
	doubled := Map(in, func(v int) int { return v * 2 })
	evens := Filter(doubled, func(v int) bool { return v%4 == 0 })

	var got []int
	ForEach(evens, func(v int) { got = append(got, v) })
	if len(got) != 2 || got[0] != 4 || got[1] != 8 {
		t.Fatalf("got %v, want [4 8]", got)
	}
}

func TestMerge(t *testing.T) {
	a := FromArray([]int{1, 2})
	b := FromArray([]int{3, 4})
	merged := Merge(a, b)

	n := Drain(merged)
	if n != 4 {
		t.Fatalf("Drain(Merge) = %d, want 4", n)
	}
}

func TestOrDoneStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := channel.New[int]()
	out := OrDone(ctx, src)

	cancel()

	select {
	case _, ok := <-waitClosed(out):
		if ok {
			t.Fatal("expected closed channel signal")
		}
	case <-time.After(time.Second):
		t.Fatal("OrDone did not close output after cancel")
	}
}

// waitClosed adapts a channel.Channel's close into a native channel so
// the test can use a native select with a timeout.
func waitClosed[T any](ch *channel.Channel[T]) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		for {
			if ch.IsClosed() && ch.Len() == 0 {
				close(done)
				return
			}
			time.Sleep(time.Millisecond)
		}
	}()
	return done
}

func TestSemaphore(t *testing.T) {
	sem := NewSemaphore(2)
	sem.Acquire()
	sem.Acquire()
	if sem.TryAcquire() {
		t.Fatal("TryAcquire should fail with no permits left")
	}
	sem.Release()
	if !sem.TryAcquire() {
		t.Fatal("TryAcquire should succeed after Release")
	}
}
