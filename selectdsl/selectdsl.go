// Package selectdsl is a thin fluent builder over channel.SelectPoll and
// channel.SelectWait, composing channel.Case values into named helpers
// like SelectFirst, SendFirst, FanIn, and FanOut instead of raw select
// statements.
package selectdsl

import (
	"sync"
	"time"

	"github.com/example/conduit/channel"
)

// Builder accumulates select cases in call order.
type Builder struct {
	cases []channel.Case
}

// New starts an empty case list.
func New() *Builder {
	return &Builder{}
}

// Recv adds a recv-case for ch.
func Recv[T any](b *Builder, ch *channel.Channel[T]) *Builder {
	b.cases = append(b.cases, channel.RecvCase(ch))
	return b
}

// Send adds a send-case for ch with value v.
func Send[T any](b *Builder, ch *channel.Channel[T], v T) *Builder {
	b.cases = append(b.cases, channel.SendCase(ch, v))
	return b
}

// Poll returns the index of the first ready case without blocking,
// matching channel.SelectPoll.
func (b *Builder) Poll() (int, bool) {
	return channel.SelectPoll(b.cases)
}

// Wait blocks until a case is ready or timeout elapses (0 = forever),
// matching channel.SelectWait.
func (b *Builder) Wait(timeout time.Duration) (int, bool) {
	return channel.SelectWait(b.cases, timeout)
}

// SelectFirst receives from whichever of two channels is ready first,
// or reports false after timeout. The follow-up TryRecv is the
// authoritative step: a concurrent consumer may have raced the winning
// channel empty between Wait and this call.
func SelectFirst[T any](ch1, ch2 *channel.Channel[T], timeout time.Duration) (T, bool) {
	var zero T
	idx, ok := channel.SelectWait([]channel.Case{channel.RecvCase(ch1), channel.RecvCase(ch2)}, timeout)
	if !ok {
		return zero, false
	}
	winner := ch1
	if idx == 1 {
		winner = ch2
	}
	r := winner.TryRecv()
	if !r.Ok {
		return zero, false
	}
	return r.Value, true
}

// SendFirst sends v1 to ch1 or v2 to ch2, whichever becomes ready
// first, and reports which index sent. The follow-up TrySend on the
// winning case is the authoritative step, carrying out the actual
// deposit with the value each SendCase closed over.
func SendFirst[T any](ch1 *channel.Channel[T], v1 T, ch2 *channel.Channel[T], v2 T, timeout time.Duration) (int, bool) {
	cases := []channel.Case{channel.SendCase(ch1, v1), channel.SendCase(ch2, v2)}
	idx, ok := channel.SelectWait(cases, timeout)
	if !ok {
		return -1, false
	}
	if !cases[idx].TrySend().Ok {
		return -1, false
	}
	return idx, true
}

// FanIn merges any number of channels into one, using the same
// one-forwarding-goroutine-per-input Send/Recv pattern as
// combinators.Merge; the output closes once every input has closed.
func FanIn[T any](inputs ...*channel.Channel[T]) *channel.Channel[T] {
	output := channel.New[T]()
	var wg sync.WaitGroup
	for _, in := range inputs {
		wg.Add(1)
		go func(in *channel.Channel[T]) {
			defer wg.Done()
			for {
				v, ok := in.Recv()
				if !ok {
					return
				}
				if output.Send(v).Closed {
					return
				}
			}
		}(in)
	}
	go func() {
		wg.Wait()
		output.Close()
	}()
	return output
}

// FanOut distributes values from input across n worker channels in
// round-robin order, closing all of them once input closes.
func FanOut[T any](input *channel.Channel[T], n uint) []*channel.Channel[T] {
	outputs := make([]*channel.Channel[T], n)
	for i := range outputs {
		outputs[i] = channel.New[T]()
	}
	go func() {
		defer func() {
			for _, out := range outputs {
				out.Close()
			}
		}()
		i := uint(0)
		for {
			v, ok := input.Recv()
			if !ok {
				return
			}
			if outputs[i%n].Send(v).Closed {
				return
			}
			i++
		}
	}()
	return outputs
}
