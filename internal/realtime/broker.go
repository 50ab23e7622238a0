package realtime

import (
	"encoding/json"
	"log"
	"sync"
)

// Message defines the shape of the events pushed over the results stream,
// e.g. {"type": "result", "payload": {...}}.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Broker is the central hub for managing SSE client connections. Unlike a
// per-user notification hub, the results stream is public: every connected
// client receives every event.
type Broker struct {
	clients map[int64]chan []byte
	nextID  int64
	mu      sync.RWMutex
}

// NewBroker creates a new Broker instance.
func NewBroker() *Broker {
	return &Broker{
		clients: make(map[int64]chan []byte),
	}
}

// AddClient registers a new client connection with the broker and returns
// its id along with the channel the handler should drain.
func (b *Broker) AddClient() (int64, chan []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	ch := make(chan []byte, 10) // Buffered so a slow reader doesn't block Publish
	b.clients[id] = ch
	log.Printf("SSE client %d connected", id)
	return id, ch
}

// RemoveClient unregisters a client from the broker.
func (b *Broker) RemoveClient(id int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.clients[id]; ok {
		delete(b.clients, id)
		close(ch)
		log.Printf("SSE client %d disconnected", id)
	}
}

// Publish sends a message to every connected client. Sends are non-blocking:
// a client whose buffer is full simply misses the message rather than
// stalling the publisher.
func (b *Broker) Publish(message Message) {
	jsonMsg, err := json.Marshal(message)
	if err != nil {
		log.Printf("ERROR: could not marshal SSE message: %v", err)
		return
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.clients {
		select {
		case ch <- jsonMsg:
		default:
			log.Printf("WARN: SSE channel for client %d is full. Dropping message.", id)
		}
	}
}
