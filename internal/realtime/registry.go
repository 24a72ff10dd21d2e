// Package realtime fans wishlist updates out to live subscribers.
//
// Subscribers register under a topic (the wishlist's public ID) and
// receive every broadcast for that topic on a buffered channel.
// Delivery is best effort: a subscriber that cannot keep up is dropped
// rather than allowed to stall the broadcast.
package realtime

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/giftwell/giftwell-server/internal/id"
)

// subscriberBuffer is the per-subscriber channel depth. Updates for a
// single wishlist are infrequent, so a small buffer absorbs bursts
// without letting a dead connection hold memory.
const subscriberBuffer = 16

// Subscriber is one live connection listening on a topic.
type Subscriber struct {
	ID          string
	Topic       string
	ConnectedAt time.Time

	// Messages delivers broadcasts. Closed by the registry on
	// Unsubscribe; receivers must treat channel close as disconnect.
	Messages chan Message

	closed bool // guarded by the registry mutex
}

// Registry tracks subscribers per topic and broadcasts to them.
type Registry struct {
	mu       sync.RWMutex
	topics   map[string]map[*Subscriber]struct{}
	shutdown bool
	logger   *slog.Logger
}

// ErrRegistryClosed is returned by Subscribe after Shutdown.
var ErrRegistryClosed = errors.New("realtime: registry is shut down")

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		topics: make(map[string]map[*Subscriber]struct{}),
		logger: logger,
	}
}

// Subscribe registers a new subscriber on the given topic.
func (r *Registry) Subscribe(topic string) (*Subscriber, error) {
	subID, err := id.Generate("sub")
	if err != nil {
		return nil, err
	}

	sub := &Subscriber{
		ID:          subID,
		Topic:       topic,
		ConnectedAt: time.Now(),
		Messages:    make(chan Message, subscriberBuffer),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.shutdown {
		return nil, ErrRegistryClosed
	}

	subs, ok := r.topics[topic]
	if !ok {
		subs = make(map[*Subscriber]struct{})
		r.topics[topic] = subs
	}
	subs[sub] = struct{}{}

	r.logger.Debug("subscriber connected",
		slog.String("subscriber_id", sub.ID),
		slog.String("topic", topic),
		slog.Int("topic_subscribers", len(subs)))

	return sub, nil
}

// Unsubscribe removes a subscriber and closes its channel. Removing a
// subscriber twice is a no-op, so disconnect paths and broadcast
// pruning can race safely.
func (r *Registry) Unsubscribe(sub *Subscriber) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeLocked(sub)
}

// removeLocked deletes the subscriber from its topic and closes its
// channel. Caller must hold the write lock.
func (r *Registry) removeLocked(sub *Subscriber) {
	if sub.closed {
		return
	}
	sub.closed = true

	if subs, ok := r.topics[sub.Topic]; ok {
		delete(subs, sub)
		if len(subs) == 0 {
			delete(r.topics, sub.Topic)
		}
	}
	close(sub.Messages)

	r.logger.Debug("subscriber disconnected",
		slog.String("subscriber_id", sub.ID),
		slog.String("topic", sub.Topic))
}

// Broadcast delivers a message to every subscriber on the topic.
// Subscribers whose buffers are full are removed; channel sends never
// block the caller.
func (r *Registry) Broadcast(topic string, msg Message) {
	var delivered int
	var dead []*Subscriber

	r.mu.RLock()
	for sub := range r.topics[topic] {
		select {
		case sub.Messages <- msg:
			delivered++
		default:
			dead = append(dead, sub)
		}
	}
	r.mu.RUnlock()

	if len(dead) > 0 {
		r.mu.Lock()
		for _, sub := range dead {
			r.logger.Warn("dropping slow subscriber",
				slog.String("subscriber_id", sub.ID),
				slog.String("topic", topic))
			r.removeLocked(sub)
		}
		r.mu.Unlock()
	}

	r.logger.Debug("broadcast complete",
		slog.String("topic", topic),
		slog.String("message_type", string(msg.Type)),
		slog.Int("delivered", delivered),
		slog.Int("dropped", len(dead)))
}

// SubscriberCount returns the number of live subscribers on a topic.
func (r *Registry) SubscriberCount(topic string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.topics[topic])
}

// Shutdown disconnects every subscriber and rejects further
// subscriptions.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.shutdown = true

	var count int
	for _, subs := range r.topics {
		for sub := range subs {
			sub.closed = true
			close(sub.Messages)
			count++
		}
	}
	r.topics = make(map[string]map[*Subscriber]struct{})

	r.logger.Info("realtime registry shut down", slog.Int("disconnected", count))
}
