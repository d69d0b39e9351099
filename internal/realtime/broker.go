package realtime

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
)

// Message is the shape of a real-time notification sent to connected
// clients, e.g. a score submission that should trigger a leaderboard
// refetch.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Broker fans messages out to every connected SSE client. Leaderboards are
// a shared view, so unlike a per-user notification hub every subscriber
// receives every message; the same athlete may hold several subscriptions
// (one per open tab).
type Broker struct {
	// Subscriber channels keyed by a random connection ID.
	subscribers map[string]chan []byte
	mu          sync.RWMutex
}

// NewBroker creates a new Broker instance.
func NewBroker() *Broker {
	return &Broker{
		subscribers: make(map[string]chan []byte),
	}
}

// Subscribe registers a new client connection and returns its ID along with
// the channel messages will arrive on. The caller must Unsubscribe with the
// same ID when the connection closes.
func (b *Broker) Subscribe() (string, <-chan []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.NewString()
	ch := make(chan []byte, 10) // Buffered so one slow client can lag briefly
	b.subscribers[id] = ch
	log.Printf("SSE client %s connected (%d active)", id, len(b.subscribers))
	return id, ch
}

// Unsubscribe removes a client connection and closes its channel.
func (b *Broker) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[id]; ok {
		delete(b.subscribers, id)
		close(ch)
		log.Printf("SSE client %s disconnected (%d active)", id, len(b.subscribers))
	}
}

// Broadcast sends a message to every connected client. Sends are
// non-blocking: a subscriber whose buffer is full simply misses the
// message rather than stalling the submitting request.
func (b *Broker) Broadcast(message Message) {
	jsonMsg, err := json.Marshal(message)
	if err != nil {
		log.Printf("ERROR: could not marshal SSE message: %v", err)
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subscribers {
		select {
		case ch <- jsonMsg:
		default:
			log.Printf("WARN: SSE channel for client %s is full. Dropping message.", id)
		}
	}
}
