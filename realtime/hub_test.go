package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(userID string, buffer int) *Client {
	return &Client{
		ID:     "socket-" + userID,
		UserID: userID,
		send:   make(chan Event, buffer),
	}
}

func TestHubPublishReachesSubscribers(t *testing.T) {
	hub := NewHub(8)

	alice := newTestClient("alice", 8)
	bob := newTestClient("bob", 8)
	hub.register(alice)
	hub.register(bob)

	hub.subscribe(alice, UserChannel("alice"))
	hub.subscribe(bob, UserChannel("bob"))

	err := hub.Publish(UserChannel("alice"), EventMention, map[string]string{"note_id": "n1"})
	require.NoError(t, err)

	select {
	case ev := <-alice.send:
		assert.Equal(t, EventMention, ev.Event)
		assert.Equal(t, UserChannel("alice"), ev.Channel)
	default:
		t.Fatal("alice should have received the mention event")
	}

	assert.Empty(t, bob.send, "bob is not subscribed to alice's channel")
}

func TestHubSharedCandidateChannel(t *testing.T) {
	hub := NewHub(8)

	alice := newTestClient("alice", 8)
	bob := newTestClient("bob", 8)
	hub.register(alice)
	hub.register(bob)

	channel := CandidateChannel("cand-1")
	hub.subscribe(alice, channel)
	hub.subscribe(bob, channel)

	require.NoError(t, hub.Publish(channel, EventMessageNew, nil))

	assert.Len(t, alice.send, 1)
	assert.Len(t, bob.send, 1)
}

func TestHubUnsubscribeStopsDelivery(t *testing.T) {
	hub := NewHub(8)

	alice := newTestClient("alice", 8)
	hub.register(alice)

	channel := CandidateChannel("cand-1")
	hub.subscribe(alice, channel)
	hub.unsubscribe(alice, channel)

	require.NoError(t, hub.Publish(channel, EventMessageNew, nil))
	assert.Empty(t, alice.send)
	assert.Zero(t, hub.SubscriberCount(channel))
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub(8)

	slow := newTestClient("slow", 1)
	hub.register(slow)

	channel := UserChannel("slow")
	hub.subscribe(slow, channel)

	// First publish fills the queue, second finds it full.
	require.NoError(t, hub.Publish(channel, EventMention, nil))
	require.NoError(t, hub.Publish(channel, EventMention, nil))

	assert.Zero(t, hub.SubscriberCount(channel), "slow client should be dropped")

	// Queue is closed on drop; drain what was delivered before the close.
	_, open := <-slow.send
	assert.True(t, open)
	_, open = <-slow.send
	assert.False(t, open)
}

func TestHubDropWhileClientReplies(t *testing.T) {
	hub := NewHub(8)

	slow := newTestClient("slow", 1)
	hub.register(slow)
	channel := UserChannel("slow")
	hub.subscribe(slow, channel)

	// The client keeps answering subscribe requests on its own goroutine
	// while the hub drops it for falling behind.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			slow.enqueue(Event{Channel: channel, Event: "subscription:succeeded"})
		}
	}()

	for i := 0; i < 50; i++ {
		require.NoError(t, hub.Publish(channel, EventMention, nil))
	}
	<-done

	assert.Zero(t, hub.SubscriberCount(channel), "slow client should be dropped")

	// Enqueue after the drop is a discard, not a panic.
	slow.enqueue(Event{Channel: channel, Event: "subscription:succeeded"})
}

func TestHubUnregisterClearsSubscriptions(t *testing.T) {
	hub := NewHub(8)

	alice := newTestClient("alice", 8)
	hub.register(alice)
	hub.subscribe(alice, UserChannel("alice"))
	hub.subscribe(alice, CandidateChannel("cand-1"))

	hub.unregister(alice)

	assert.Zero(t, hub.SubscriberCount(UserChannel("alice")))
	assert.Zero(t, hub.SubscriberCount(CandidateChannel("cand-1")))
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name    string
		userID  string
		channel string
		want    bool
	}{
		{"own user channel", "u1", "user:u1", true},
		{"foreign user channel", "u1", "user:u2", false},
		{"candidate channel", "u1", "candidate:c1", true},
		{"empty candidate id", "u1", "candidate:", false},
		{"unknown prefix", "u1", "admin:u1", false},
		{"empty channel", "u1", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorize(tt.userID, tt.channel))
		})
	}
}
