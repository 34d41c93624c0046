package combinators

import (
	"time"

	"github.com/example/conduit/channel"
)

// Semaphore is a counting semaphore built over a buffered token
// channel: instead of a raw `chan struct{}`, the token channel is a
// conduit channel.Channel[struct{}] sized to the number of permits,
// using TryRecv/RecvTimeout for non-blocking and timed acquire.
type Semaphore struct {
	tokens *channel.Channel[struct{}]
}

// NewSemaphore creates a semaphore with the given number of permits.
func NewSemaphore(permits uint) *Semaphore {
	s := &Semaphore{tokens: channel.NewBuffered[struct{}](permits)}
	for i := uint(0); i < permits; i++ {
		s.tokens.Send(struct{}{})
	}
	return s
}

// Acquire blocks until a permit is available.
func (s *Semaphore) Acquire() {
	s.tokens.Recv()
}

// TryAcquire attempts to acquire a permit without blocking.
func (s *Semaphore) TryAcquire() bool {
	return s.tokens.TryRecv().Ok
}

// AcquireTimeout attempts to acquire a permit, giving up after the
// given duration. The duration is truncated to whole milliseconds; a
// timeout under one millisecond waits without limit, as RecvTimeout(0)
// does.
func (s *Semaphore) AcquireTimeout(timeout time.Duration) bool {
	return s.tokens.RecvTimeout(uint(timeout.Milliseconds())).Ok
}

// Release returns a permit to the semaphore.
func (s *Semaphore) Release() {
	s.tokens.TrySend(struct{}{})
}
