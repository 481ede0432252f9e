package core

import "sync"

// AwaitNotifier counterpart of an `Awaiter`
type AwaitNotifier struct {
	once sync.Once
	done chan struct{}
	err  error
}

// Notify records err as the outcome and signals the `Awaiter`.
// Only the first call has an effect, so racing producers
// (e.g. a timer and a process exit) can both call it.
func (n *AwaitNotifier) Notify(err error) {
	n.once.Do(func() {
		n.err = err
		close(n.done)
	})
}

// Awaiter is a one-shot future used to observe the completion
// of an independently executing goroutine: the child process
// exiting, the redirect server binding, a server loop returning.
// The producer keeps the `AwaitNotifier`, consumers get the
// `Awaiter` and use either `Done()` or `Err()`.
type Awaiter struct {
	notifier *AwaitNotifier
}

// Done channel is closed once the `Awaiter` is signaled.
// Use it in `select` statements.
func (a *Awaiter) Done() <-chan struct{} {
	return a.notifier.done
}

// Err blocks until the `Awaiter` is signaled and
// returns the recorded error.
func (a *Awaiter) Err() error {
	<-a.Done()
	return a.notifier.err
}

// Resolved reports without blocking whether the `Awaiter` was signaled.
func (a *Awaiter) Resolved() bool {
	select {
	case <-a.Done():
		return true
	default:
		return false
	}
}

// NewAwaiter creates a new `Awaiter` and `AwaitNotifier`
// pair.
func NewAwaiter() (*Awaiter, *AwaitNotifier) {
	notifier := &AwaitNotifier{
		done: make(chan struct{}),
	}

	return &Awaiter{notifier: notifier}, notifier
}
