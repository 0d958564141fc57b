package realtime

// Event is one message pushed to subscribers of a channel.
type Event struct {
	Channel string      `json:"channel"`
	Event   string      `json:"event"`
	Data    interface{} `json:"data"`
}

// Publisher pushes events to whoever is subscribed right now. Delivery is
// best-effort: the durable notification rows remain the source of truth and
// a failed publish is never retried. Services take a Publisher instead of
// touching the hub directly so tests can substitute a stub.
type Publisher interface {
	Publish(channel, event string, data interface{}) error
}

// NopPublisher discards every event.
type NopPublisher struct{}

func (NopPublisher) Publish(string, string, interface{}) error { return nil }
