package channel

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// caseKind is a closed, two-member tag: a tagged enum switched on in
// readyLocked/doneLocked rather than an interface with per-variant
// methods, since the set of case shapes never grows.
type caseKind int

const (
	caseRecv caseKind = iota
	caseSend
)

// Case is one arm of a select: either "this channel has a value to
// give" (recv) or "this channel has room/a receiver waiting" (send).
// Construct with RecvCase/SendCase; the element type is erased here —
// SelectPoll/SelectWait only ever evaluate readiness, never move a
// value, so Case itself never needs to know T.
type Case struct {
	kind caseKind
	core *core

	// trySend performs the actual non-blocking send for a send-case,
	// closing over the typed channel and value supplied to SendCase so
	// Case itself never needs to know T. Only set for send-cases.
	trySend func() TrySendResult
}

// RecvCase builds a select arm that becomes ready when ch has a value
// ready to hand to a receiver, or is closed.
func RecvCase[T any](ch *Channel[T]) Case {
	return Case{kind: caseRecv, core: ch.c}
}

// SendCase builds a select arm that becomes ready when ch has room (or
// a parked receiver, for a rendezvous channel) to accept v. Select
// itself never deposits v; once a SendCase wins, call TrySend on the
// winning Case to perform the actual, still-non-blocking send.
func SendCase[T any](ch *Channel[T], v T) Case {
	return Case{kind: caseSend, core: ch.c, trySend: func() TrySendResult {
		return ch.TrySend(v)
	}}
}

// TrySend performs the non-blocking follow-up send for a winning
// send-case, using the value originally supplied to SendCase. Calling
// it on a recv-case returns the zero TrySendResult.
func (cs Case) TrySend() TrySendResult {
	if cs.trySend == nil {
		return TrySendResult{}
	}
	return cs.trySend()
}

func (cs Case) readyLocked() bool {
	switch cs.kind {
	case caseRecv:
		return cs.core.recvReadyLocked()
	case caseSend:
		return cs.core.sendReadyLocked()
	default:
		return false
	}
}

func (cs Case) doneLocked() bool {
	switch cs.kind {
	case caseRecv:
		return cs.core.recvDrainedLocked()
	case caseSend:
		return cs.core.sendDrainedLocked()
	default:
		return true
	}
}

// waiter is a per-call parking record, owned by the calling goroutine
// for the duration of one SelectWait. Channels hold only a map entry
// pointing at it, a weak, non-owning association; the waiter removes
// itself from every channel before it stops parking, so a channel can
// never outlive a waiter's ability to deregister.
type waiter struct {
	id       uuid.UUID
	mu       sync.Mutex
	cond     *sync.Cond
	signaled bool
	timedOut bool
}

func newWaiter() *waiter {
	w := &waiter{id: uuid.New()}
	w.cond = sync.NewCond(&w.mu)
	return w
}

// ID returns a correlation identifier for this wait.
func (w *waiter) ID() uuid.UUID { return w.id }

// distinctCores returns the unique channel cores touched by cases,
// ordered by creation sequence. That sequence is a total order fixed at
// core construction, a safe stand-in for ascending address order that
// needs no unsafe.Pointer arithmetic and cannot be invalidated by a
// moving GC. Locking every participant in this same order, everywhere,
// is what keeps concurrent selects from deadlocking against each other.
func distinctCores(cases []Case) []*core {
	seen := make(map[*core]bool, len(cases))
	cores := make([]*core, 0, len(cases))
	for _, cs := range cases {
		if !seen[cs.core] {
			seen[cs.core] = true
			cores = append(cores, cs.core)
		}
	}
	sort.Slice(cores, func(i, j int) bool { return cores[i].id < cores[j].id })
	return cores
}

func lockAll(cores []*core) {
	for _, c := range cores {
		c.mu.Lock()
	}
}

func unlockAll(cores []*core) {
	for i := len(cores) - 1; i >= 0; i-- {
		cores[i].mu.Unlock()
	}
}

func registerAll(cores []*core, w *waiter) {
	for _, c := range cores {
		c.register(w)
	}
}

func unregisterAll(cores []*core, w *waiter) {
	for _, c := range cores {
		c.unregister(w)
	}
}

// pollLocked returns the index of the first ready case, in the order
// cases were given. Every participant core's mutex must already be
// held by the caller.
func pollLocked(cases []Case) (int, bool) {
	for i, cs := range cases {
		if cs.readyLocked() {
			return i, true
		}
	}
	return 0, false
}

func allDoneLocked(cases []Case) bool {
	for _, cs := range cases {
		if !cs.doneLocked() {
			return false
		}
	}
	return true
}

// SelectPoll examines cases in order under their combined locks and
// returns the first ready index, without performing any I/O — the
// caller still must call Recv/TrySend/etc. on the winning channel, and
// must treat that follow-up result as authoritative: another goroutine
// may have raced away the readiness between this call returning and the
// follow-up running.
func SelectPoll(cases []Case) (int, bool) {
	if len(cases) == 0 {
		return 0, false
	}
	cores := distinctCores(cases)
	lockAll(cores)
	defer unlockAll(cores)
	return pollLocked(cases)
}

// SelectWait blocks until some case becomes ready or until timeout
// elapses; timeout == 0 means wait forever. A recv-case on a closed
// channel counts as ready, so closing a channel wakes the wait with that
// case's index. It also returns false, without waiting, when no case is
// ready and every case is a send-case on a closed channel.
func SelectWait(cases []Case, timeout time.Duration) (int, bool) {
	if len(cases) == 0 {
		return 0, false
	}
	cores := distinctCores(cases)
	w := newWaiter()

	var timer *time.Timer
	if timeout > 0 {
		timer = time.AfterFunc(timeout, func() {
			w.mu.Lock()
			w.timedOut = true
			w.signaled = true
			w.cond.Signal()
			w.mu.Unlock()
		})
		defer timer.Stop()
	}

	for {
		lockAll(cores)
		if idx, ok := pollLocked(cases); ok {
			unlockAll(cores)
			return idx, true
		}
		if allDoneLocked(cases) {
			unlockAll(cores)
			return 0, false
		}
		registerAll(cores, w)
		unlockAll(cores)

		w.mu.Lock()
		for !w.signaled {
			w.cond.Wait()
		}
		timedOut := w.timedOut
		w.signaled = false
		w.timedOut = false
		w.mu.Unlock()

		lockAll(cores)
		unregisterAll(cores, w)
		if idx, ok := pollLocked(cases); ok {
			unlockAll(cores)
			return idx, true
		}
		done := allDoneLocked(cases)
		unlockAll(cores)

		if done {
			return 0, false
		}
		if timedOut {
			return 0, false
		}
		// Spurious wake, or another consumer won the race for the
		// readiness that woke us: loop and re-register.
	}
}
