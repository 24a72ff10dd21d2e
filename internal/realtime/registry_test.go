package realtime

import (
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry() *Registry {
	return NewRegistry(slog.New(slog.DiscardHandler))
}

func TestRegistry_SubscribeAndBroadcast(t *testing.T) {
	r := newTestRegistry()

	sub, err := r.Subscribe("topic-a")
	require.NoError(t, err)
	assert.Equal(t, 1, r.SubscriberCount("topic-a"))

	r.Broadcast("topic-a", Message{Type: MessageWishlistUpdated})

	msg := <-sub.Messages
	assert.Equal(t, MessageWishlistUpdated, msg.Type)
}

func TestRegistry_BroadcastOnlyReachesTopic(t *testing.T) {
	r := newTestRegistry()

	subA, err := r.Subscribe("topic-a")
	require.NoError(t, err)
	subB, err := r.Subscribe("topic-b")
	require.NoError(t, err)

	r.Broadcast("topic-a", Message{Type: MessageWishlistUpdated})

	assert.Len(t, subA.Messages, 1)
	assert.Len(t, subB.Messages, 0)
}

func TestRegistry_UnsubscribeClosesChannel(t *testing.T) {
	r := newTestRegistry()

	sub, err := r.Subscribe("topic-a")
	require.NoError(t, err)

	r.Unsubscribe(sub)

	_, open := <-sub.Messages
	assert.False(t, open)
	assert.Equal(t, 0, r.SubscriberCount("topic-a"))
}

func TestRegistry_UnsubscribeTwiceIsSafe(t *testing.T) {
	r := newTestRegistry()

	sub, err := r.Subscribe("topic-a")
	require.NoError(t, err)

	r.Unsubscribe(sub)
	r.Unsubscribe(sub)
}

func TestRegistry_EmptyTopicIsRemoved(t *testing.T) {
	r := newTestRegistry()

	sub, err := r.Subscribe("topic-a")
	require.NoError(t, err)
	r.Unsubscribe(sub)

	r.mu.RLock()
	_, exists := r.topics["topic-a"]
	r.mu.RUnlock()
	assert.False(t, exists)
}

func TestRegistry_SlowSubscriberIsDropped(t *testing.T) {
	r := newTestRegistry()

	slow, err := r.Subscribe("topic-a")
	require.NoError(t, err)
	healthy, err := r.Subscribe("topic-a")
	require.NoError(t, err)

	// Fill the slow subscriber's buffer, then drain the healthy one
	// so only the slow one overflows.
	for range subscriberBuffer {
		r.Broadcast("topic-a", Message{Type: MessageWishlistUpdated})
		<-healthy.Messages
	}

	r.Broadcast("topic-a", Message{Type: MessageWishlistUpdated})

	assert.Equal(t, 1, r.SubscriberCount("topic-a"))

	// The dropped subscriber's channel gets closed after draining.
	for range subscriberBuffer {
		<-slow.Messages
	}
	_, open := <-slow.Messages
	assert.False(t, open)
}

func TestRegistry_BroadcastToEmptyTopicIsNoop(t *testing.T) {
	r := newTestRegistry()

	r.Broadcast("nobody-home", Message{Type: MessageWishlistUpdated})
}

func TestRegistry_ConcurrentSubscribeBroadcastUnsubscribe(t *testing.T) {
	r := newTestRegistry()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub, err := r.Subscribe("topic-a")
			if err != nil {
				t.Error(err)
				return
			}
			for range 20 {
				r.Broadcast("topic-a", Message{Type: MessageWishlistUpdated})
			}
			r.Unsubscribe(sub)
			// Drain until close so buffered messages do not leak.
			for range sub.Messages {
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, r.SubscriberCount("topic-a"))
}

func TestRegistry_Shutdown(t *testing.T) {
	r := newTestRegistry()

	subA, err := r.Subscribe("topic-a")
	require.NoError(t, err)
	subB, err := r.Subscribe("topic-b")
	require.NoError(t, err)

	r.Shutdown()

	_, openA := <-subA.Messages
	_, openB := <-subB.Messages
	assert.False(t, openA)
	assert.False(t, openB)
	assert.Equal(t, 0, r.SubscriberCount("topic-a"))
}

func TestRegistry_SubscribeAfterShutdownIsRejected(t *testing.T) {
	r := newTestRegistry()
	r.Shutdown()

	sub, err := r.Subscribe("topic-a")
	assert.Nil(t, sub)
	assert.ErrorIs(t, err, ErrRegistryClosed)
	assert.Equal(t, 0, r.SubscriberCount("topic-a"))
}
