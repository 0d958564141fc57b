package realtime

import (
	"sync"

	"recruitdesk_backend/internal/logger"
)

// Hub tracks connected clients and their channel subscriptions and fans
// published events out to them. It is the in-process stand-in for a hosted
// pub/sub broker.
type Hub struct {
	mu sync.RWMutex
	// subscriptions maps channel name -> subscribed clients.
	subscriptions map[string]map[*Client]struct{}
	clients       map[*Client]struct{}

	sendBuffer int
}

func NewHub(sendBuffer int) *Hub {
	if sendBuffer <= 0 {
		sendBuffer = 256
	}
	return &Hub{
		subscriptions: make(map[string]map[*Client]struct{}),
		clients:       make(map[*Client]struct{}),
		sendBuffer:    sendBuffer,
	}
}

func (h *Hub) register(client *Client) {
	h.mu.Lock()
	h.clients[client] = struct{}{}
	total := len(h.clients)
	h.mu.Unlock()
	logger.Debug("realtime: client connected", "socket_id", client.ID, "user_id", client.UserID, "total", total)
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client)
	for channel, subs := range h.subscriptions {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.subscriptions, channel)
		}
	}
	client.closeSend()
	total := len(h.clients)
	h.mu.Unlock()
	logger.Debug("realtime: client disconnected", "socket_id", client.ID, "total", total)
}

func (h *Hub) subscribe(client *Client, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; !ok {
		return
	}
	subs, ok := h.subscriptions[channel]
	if !ok {
		subs = make(map[*Client]struct{})
		h.subscriptions[channel] = subs
	}
	subs[client] = struct{}{}
}

func (h *Hub) unsubscribe(client *Client, channel string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs, ok := h.subscriptions[channel]; ok {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.subscriptions, channel)
		}
	}
}

// Publish implements Publisher. Events go to every current subscriber of
// the channel; clients whose send queue is full are dropped rather than
// allowed to stall the rest.
func (h *Hub) Publish(channel, event string, data interface{}) error {
	msg := Event{Channel: channel, Event: event, Data: data}

	h.mu.RLock()
	subs := h.subscriptions[channel]
	var slow []*Client
	for client := range subs {
		select {
		case client.send <- msg:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		logger.Warn("realtime: dropping slow client", "socket_id", client.ID, "channel", channel)
		h.unregister(client)
	}
	return nil
}

// SubscriberCount reports how many clients are subscribed to channel.
func (h *Hub) SubscriberCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscriptions[channel])
}
