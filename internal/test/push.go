package test

import (
	"context"
	"sync"

	"github.com/polkiloo/warungpos/internal/wire"
)

// PushChannelStub simulates the broker-backed push channel. Emit feeds
// events to the current subscriber; Drop closes the stream the way a lost
// connection would.
type PushChannelStub struct {
	SubscribeFn func(context.Context) (<-chan wire.Event, error)

	mu         sync.Mutex
	current    chan wire.Event
	subscribes int
}

// Subscribe hands out a fresh event stream, replacing any previous one.
func (s *PushChannelStub) Subscribe(ctx context.Context) (<-chan wire.Event, error) {
	if s.SubscribeFn != nil {
		return s.SubscribeFn(ctx)
	}
	s.mu.Lock()
	s.subscribes++
	ch := make(chan wire.Event, 16)
	s.current = ch
	s.mu.Unlock()

	// Mirror the real subscriber's contract: the stream closes when the
	// caller's context is cancelled.
	go func() {
		<-ctx.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.current == ch {
			close(ch)
			s.current = nil
		}
	}()
	return ch, nil
}

// Emit delivers one event to the active subscriber.
func (s *PushChannelStub) Emit(event wire.Event) {
	s.mu.Lock()
	ch := s.current
	s.mu.Unlock()
	if ch != nil {
		ch <- event
	}
}

// Drop closes the active stream, signalling a disconnect.
func (s *PushChannelStub) Drop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		close(s.current)
		s.current = nil
	}
}

// Subscribes reports how many times Subscribe was called.
func (s *PushChannelStub) Subscribes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subscribes
}
