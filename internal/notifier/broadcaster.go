// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

// Package notifier fans out state-change notifications to connected
// dashboard clients.
package notifier

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/impactops/notetaker-service/internal/domain"
)

// subscriberBuffer bounds how many undelivered notifications one slow
// subscriber can hold before further notifications to it are dropped.
const subscriberBuffer = 16

// Notification is one frame pushed to subscribed clients.
type Notification struct {
	Kind string    `json:"kind"`
	Data any       `json:"data,omitempty"`
	At   time.Time `json:"at"`
}

// Subscription is one client's registration with the broadcaster. The
// holder must call Close when the client disconnects.
type Subscription struct {
	id     string
	ch     chan Notification
	closer func()
	once   sync.Once
}

// Events returns the channel notifications are delivered on. The channel
// is closed when the subscription is closed.
func (s *Subscription) Events() <-chan Notification {
	return s.ch
}

// Close unregisters the subscription. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(s.closer)
}

// Broadcaster is a process-wide publish/subscribe hub. It is constructed
// once at startup and injected into the webhook handlers and the HTTP
// stream endpoint.
type Broadcaster struct {
	mu          sync.Mutex
	subscribers map[string]chan Notification
}

var _ domain.Notifier = (*Broadcaster)(nil)

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan Notification),
	}
}

// Subscribe registers a new client. Only notifications emitted after
// registration are delivered; there is no replay of earlier events.
func (b *Broadcaster) Subscribe() *Subscription {
	id := uuid.New().String()
	ch := make(chan Notification, subscriberBuffer)

	b.mu.Lock()
	b.subscribers[id] = ch
	b.mu.Unlock()

	return &Subscription{
		id: id,
		ch: ch,
		closer: func() {
			b.mu.Lock()
			delete(b.subscribers, id)
			b.mu.Unlock()
			close(ch)
		},
	}
}

// Emit delivers a notification to every current subscriber. A subscriber
// whose buffer is full has this notification dropped rather than blocking
// the emitter.
func (b *Broadcaster) Emit(kind string, data any) {
	notification := Notification{
		Kind: kind,
		Data: data,
		At:   time.Now().UTC(),
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subscribers {
		select {
		case ch <- notification:
		default:
			slog.Warn("dropping notification for slow subscriber",
				"subscriber_id", id, "kind", kind)
		}
	}
}

// SubscriberCount returns the number of currently registered subscribers.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscribers)
}
