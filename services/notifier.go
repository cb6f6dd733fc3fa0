// services/notifier.go
package services

import (
	"bufio"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Outcome is one user-visible result of a completed operation. Every mutation
// produces exactly one, success or failure, never both.
type Outcome struct {
	ID      string    `json:"id"`
	Level   string    `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Event types on the SSE wire.
const (
	EventToast            = "toast"
	EventCollectionChange = "collection_change"
)

// Event is one frame on the dashboard event stream: an outcome toast or a
// hint that a named collection changed and should be refetched.
type Event struct {
	Type       string   `json:"type"`
	Outcome    *Outcome `json:"outcome,omitempty"`
	Collection string   `json:"collection,omitempty"`
}

// Notifier fans operation outcomes out to connected dashboards and the log.
type Notifier struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[chan Event]struct{})}
}

// Success reports a completed mutation.
func (n *Notifier) Success(message string) {
	log.Printf("✅ %s", message)
	n.broadcast(Event{Type: EventToast, Outcome: n.outcome(OutcomeSuccess, message)})
}

// Error reports a failed mutation.
func (n *Notifier) Error(message string) {
	log.Printf("❌ %s", message)
	n.broadcast(Event{Type: EventToast, Outcome: n.outcome(OutcomeError, message)})
}

// CollectionChanged hints that the named collection was modified outside the
// request cycle (live channel, another operator) and should be refetched.
func (n *Notifier) CollectionChanged(collection string) {
	log.Printf("🔁 Collection %q changed", collection)
	n.broadcast(Event{Type: EventCollectionChange, Collection: collection})
}

func (n *Notifier) outcome(level, message string) *Outcome {
	return &Outcome{
		ID:      uuid.NewString(),
		Level:   level,
		Message: message,
		At:      time.Now().UTC(),
	}
}

// Subscribe registers a consumer. The returned cancel func must be called
// when the consumer goes away.
func (n *Notifier) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)
	n.mu.Lock()
	n.subs[ch] = struct{}{}
	n.mu.Unlock()

	cancel := func() {
		n.mu.Lock()
		delete(n.subs, ch)
		n.mu.Unlock()
	}
	return ch, cancel
}

func (n *Notifier) broadcast(ev Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for ch := range n.subs {
		select {
		case ch <- ev:
		default:
			// Slow consumer: drop rather than stall the mutation path.
		}
	}
}

// StreamSSE streams events to one dashboard connection until it closes.
func (n *Notifier) StreamSSE(c *fiber.Ctx) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("X-Accel-Buffering", "no") // nginx

	events, cancel := n.Subscribe()

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel()

		keepalive := time.NewTicker(15 * time.Second)
		defer keepalive.Stop()

		// Initial keepalive comment so proxies commit to the stream.
		_, _ = w.WriteString(":\n\n")
		if err := w.Flush(); err != nil {
			return
		}

		for {
			select {
			case ev := <-events:
				payload, err := json.Marshal(ev)
				if err != nil {
					log.Printf("⚠️  Failed to encode SSE event: %v", err)
					continue
				}
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, payload)
				if err := w.Flush(); err != nil {
					// Client disconnected.
					return
				}
			case <-keepalive.C:
				_, _ = w.WriteString(":\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			case <-c.Context().Done():
				return
			}
		}
	})

	return nil
}
