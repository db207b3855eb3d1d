// Copyright The Impact Ops Collective and each contributor to NotetakerService.
// SPDX-License-Identifier: MIT

package notifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitDeliversToAllSubscribers(t *testing.T) {
	b := NewBroadcaster()

	sub1 := b.Subscribe()
	defer sub1.Close()
	sub2 := b.Subscribe()
	defer sub2.Close()

	b.Emit("session_updated", map[string]string{"notetaker_id": "nt-1"})

	for _, sub := range []*Subscription{sub1, sub2} {
		select {
		case notification := <-sub.Events():
			assert.Equal(t, "session_updated", notification.Kind)
			assert.False(t, notification.At.IsZero())
		default:
			t.Fatal("expected a buffered notification")
		}
	}
}

func TestNoReplayForLateSubscribers(t *testing.T) {
	b := NewBroadcaster()

	b.Emit("before_subscribe", nil)

	sub := b.Subscribe()
	defer sub.Close()

	select {
	case <-sub.Events():
		t.Fatal("late subscriber must not receive earlier notifications")
	default:
	}
}

func TestCloseRemovesSubscriber(t *testing.T) {
	b := NewBroadcaster()
	require.Equal(t, 0, b.SubscriberCount())

	sub := b.Subscribe()
	require.Equal(t, 1, b.SubscriberCount())

	sub.Close()
	assert.Equal(t, 0, b.SubscriberCount())

	// Events channel is closed so a stream loop terminates.
	_, open := <-sub.Events()
	assert.False(t, open)

	// Emits after close must not panic or deliver.
	b.Emit("after_close", nil)
}

func TestCloseIsIdempotent(t *testing.T) {
	b := NewBroadcaster()

	sub := b.Subscribe()
	sub.Close()
	sub.Close()

	assert.Equal(t, 0, b.SubscriberCount())
}

func TestSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	b := NewBroadcaster()

	sub := b.Subscribe()
	defer sub.Close()

	// Overfill the buffer. Emit must return without blocking.
	for i := 0; i < subscriberBuffer+5; i++ {
		b.Emit("tick", i)
	}

	received := 0
	for {
		select {
		case <-sub.Events():
			received++
			continue
		default:
		}
		break
	}

	assert.Equal(t, subscriberBuffer, received)
}
