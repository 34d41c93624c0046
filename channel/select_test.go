package channel

import (
	"testing"
	"time"
)

func TestSelectPollPriority(t *testing.T) {
	ch1 := NewBuffered[int](1)
	ch2 := NewBuffered[int](1)
	ch1.Send(1)
	ch2.Send(2)

	idx, ok := SelectPoll([]Case{RecvCase(ch1), RecvCase(ch2)})
	if !ok || idx != 0 {
		t.Fatalf("SelectPoll = (%d, %v), want (0, true)", idx, ok)
	}
}

func TestSelectPollNoneReady(t *testing.T) {
	ch1 := New[int]()
	ch2 := New[int]()
	idx, ok := SelectPoll([]Case{RecvCase(ch1), RecvCase(ch2)})
	if ok {
		t.Fatalf("SelectPoll = (%d, true), want ok=false", idx)
	}
}

func TestSelectWaitTimeout(t *testing.T) {
	ch := New[int]()
	start := time.Now()
	idx, ok := SelectWait([]Case{RecvCase(ch)}, 10*time.Millisecond)
	elapsed := time.Since(start)

	if ok {
		t.Fatalf("SelectWait = (%d, true), want ok=false on timeout", idx)
	}
	if elapsed < 10*time.Millisecond {
		t.Fatalf("SelectWait returned after %v, want >= 10ms", elapsed)
	}
}

func TestSelectWaitWakesOnClose(t *testing.T) {
	ch := New[int]()
	result := make(chan struct {
		idx int
		ok  bool
	}, 1)

	go func() {
		idx, ok := SelectWait([]Case{RecvCase(ch)}, 0)
		result <- struct {
			idx int
			ok  bool
		}{idx, ok}
	}()

	time.Sleep(20 * time.Millisecond)
	ch.Close()

	select {
	case r := <-result:
		if !r.ok || r.idx != 0 {
			t.Fatalf("SelectWait after close = (%d, %v), want (0, true)", r.idx, r.ok)
		}
	case <-time.After(time.Second):
		t.Fatal("SelectWait did not wake on close")
	}

	if _, ok := ch.Recv(); ok {
		t.Fatal("Recv after closed-wakeup should report ok=false")
	}
}

func TestSelectWaitWakesOnSend(t *testing.T) {
	ch := New[int]()
	result := make(chan int, 1)

	go func() {
		idx, ok := SelectWait([]Case{RecvCase(ch)}, 0)
		if ok {
			result <- idx
		} else {
			result <- -1
		}
	}()

	time.Sleep(20 * time.Millisecond)
	go ch.Send(7)

	select {
	case idx := <-result:
		if idx != 0 {
			t.Fatalf("SelectWait returned idx %d, want 0", idx)
		}
	case <-time.After(time.Second):
		t.Fatal("SelectWait did not wake on send")
	}

	v, ok := ch.Recv()
	if !ok || v != 7 {
		t.Fatalf("Recv() after SelectWait = (%d, %v), want (7, true)", v, ok)
	}
}

func TestSelectSendCase(t *testing.T) {
	ch := NewBuffered[int](1)
	ch.Send(1) // fill it, so send-case is not ready

	idx, ok := SelectPoll([]Case{SendCase(ch, 2)})
	if ok {
		t.Fatalf("SelectPoll on full channel send-case = (%d, true), want ok=false", idx)
	}

	ch.Recv() // drain
	idx, ok = SelectPoll([]Case{SendCase(ch, 2)})
	if !ok || idx != 0 {
		t.Fatalf("SelectPoll on drained channel send-case = (%d, %v), want (0, true)", idx, ok)
	}
}

func TestSelectWaitAllClosedReportsFirstCase(t *testing.T) {
	ch1 := NewBuffered[int](1)
	ch2 := New[int]()
	ch1.Close()
	ch2.Close()

	idx, ok := SelectWait([]Case{RecvCase(ch1), RecvCase(ch2)}, 0)
	if !ok || idx != 0 {
		t.Fatalf("SelectWait on two drained-closed channels = (%d, %v), want (0, true)", idx, ok)
	}
}
