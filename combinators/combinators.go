// Package combinators provides higher-order helpers built entirely on
// top of channel.Channel: FromArray, Singleton, Empty, ForEach, Drain,
// Map, Filter, Merge, Pipe, and OrDone, each implementable in a few
// dozen lines by composing the core send/recv primitives.
package combinators

import (
	"context"
	"sync"

	"github.com/example/conduit/channel"
)

// FromArray returns an unbuffered channel that yields each element of
// vs in order, then closes.
func FromArray[T any](vs []T) *channel.Channel[T] {
	ch := channel.New[T]()
	go func() {
		for _, v := range vs {
			if ch.Send(v).Closed {
				return
			}
		}
		ch.Close()
	}()
	return ch
}

// Singleton returns a channel that yields v once, then closes.
func Singleton[T any](v T) *channel.Channel[T] {
	ch := channel.NewBuffered[T](1)
	ch.Send(v)
	ch.Close()
	return ch
}

// Empty returns a channel that is already closed and yields nothing.
func Empty[T any]() *channel.Channel[T] {
	ch := channel.New[T]()
	ch.Close()
	return ch
}

// ForEach calls f for every value received from ch until it closes.
func ForEach[T any](ch *channel.Channel[T], f func(T)) {
	for {
		v, ok := ch.Recv()
		if !ok {
			return
		}
		f(v)
	}
}

// Drain consumes and discards every value from ch until it closes,
// returning the count consumed.
func Drain[T any](ch *channel.Channel[T]) int {
	n := 0
	for {
		if _, ok := ch.Recv(); !ok {
			return n
		}
		n++
	}
}

// Map returns a channel that applies f to every value forwarded from
// input, closing when input closes.
func Map[T, U any](input *channel.Channel[T], f func(T) U) *channel.Channel[U] {
	output := channel.New[U]()
	go func() {
		defer output.Close()
		for {
			v, ok := input.Recv()
			if !ok {
				return
			}
			if output.Send(f(v)).Closed {
				return
			}
		}
	}()
	return output
}

// Filter returns a channel that forwards only values from input for
// which predicate returns true, closing when input closes.
func Filter[T any](input *channel.Channel[T], predicate func(T) bool) *channel.Channel[T] {
	output := channel.New[T]()
	go func() {
		defer output.Close()
		for {
			v, ok := input.Recv()
			if !ok {
				return
			}
			if !predicate(v) {
				continue
			}
			if output.Send(v).Closed {
				return
			}
		}
	}()
	return output
}

// Merge fans multiple input channels into one output channel, closing
// the output only once every input has closed.
func Merge[T any](inputs ...*channel.Channel[T]) *channel.Channel[T] {
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

// Pipe wires input's values through stages in sequence, returning the
// final stage's output channel.
func Pipe[T any](input *channel.Channel[T], stages ...func(*channel.Channel[T]) *channel.Channel[T]) *channel.Channel[T] {
	cur := input
	for _, stage := range stages {
		cur = stage(cur)
	}
	return cur
}

// OrDone wraps input so that it also closes promptly when ctx is
// cancelled. Note: a Recv already in flight when ctx is cancelled is abandoned,
// not interrupted — channel.Channel has no cooperative-cancellation
// hook, so the abandoned goroutine exits only once input eventually
// yields a value or closes.
func OrDone[T any](ctx context.Context, input *channel.Channel[T]) *channel.Channel[T] {
	output := channel.New[T]()
	go func() {
		defer output.Close()
		for {
			type received struct {
				v  T
				ok bool
			}
			got := make(chan received, 1)
			go func() {
				v, ok := input.Recv()
				got <- received{v, ok}
			}()

			select {
			case <-ctx.Done():
				return
			case m := <-got:
				if !m.ok {
					return
				}
				select {
				case <-ctx.Done():
					return
				default:
				}
				if output.Send(m.v).Closed {
					return
				}
			}
		}
	}()
	return output
}
