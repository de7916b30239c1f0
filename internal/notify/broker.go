// Package notify fans out the unanswered-question count to live subscribers.
// Every message is the full current count, so a subscriber that misses an
// update is corrected by the next one.
package notify

import (
	"context"
	"sync"
)

type Broker interface {
	Publish(ctx context.Context, count int64) error
	// Subscribe returns a channel of counts and a cancel func that must be
	// called to release the subscription.
	Subscribe(ctx context.Context) (<-chan int64, func(), error)
}

type MemoryBroker struct {
	mu   sync.Mutex
	subs map[chan int64]struct{}
}

var _ Broker = (*MemoryBroker)(nil)

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{subs: make(map[chan int64]struct{})}
}

func (b *MemoryBroker) Publish(_ context.Context, count int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		offerLatest(ch, count)
	}
	return nil
}

func (b *MemoryBroker) Subscribe(_ context.Context) (<-chan int64, func(), error) {
	ch := make(chan int64, 1)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, ch)
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel, nil
}

// offerLatest replaces a pending undelivered value with v. Callers must be the
// only sender on ch.
func offerLatest(ch chan int64, v int64) {
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- v:
	default:
	}
}
