package controller

import (
	"mars-photos/internal/domain/state"
	"sync"
)

// A controller publishes at most two states (Loading, then a terminal one), so a buffer of two
// means delivery never blocks.
const subscriptionBuffer = 2

// Subscription receives the state current at subscribe time, then the terminal state.
// The channel is closed once the fetch settles, the controller closes or Cancel is called.
type Subscription struct {
	owner *FetchController
	ch    chan state.ViewState
	once  sync.Once
}

func newSubscription(owner *FetchController) *Subscription {
	return &Subscription{
		owner: owner,
		ch:    make(chan state.ViewState, subscriptionBuffer),
	}
}

func (s *Subscription) Updates() <-chan state.ViewState {
	return s.ch
}

func (s *Subscription) Cancel() {
	s.owner.unsubscribe(s)
}

// deliver and close are only called with owner.mu held.
func (s *Subscription) deliver(v state.ViewState) {
	select {
	case s.ch <- v:
	default:
	}
}

func (s *Subscription) close() {
	s.once.Do(func() {
		close(s.ch)
	})
}
