// Package sse streams catalog events to Server-Sent Events clients.
package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/fieldscope/internal/server/events"
)

// Compile-time check that the broadcaster can subscribe to the broker.
var _ events.Subscriber = (*Broadcaster)(nil)

// Event is one SSE frame.
type Event struct {
	Event string `json:"event,omitempty"`
	ID    string `json:"id,omitempty"`
	Data  any    `json:"data"`
}

// Broadcaster fans events out to every open stream.
type Broadcaster struct {
	mu      sync.RWMutex
	clients map[chan Event]struct{}

	join   chan chan Event
	leave  chan chan Event
	events chan Event

	seq    uint64
	logger *zerolog.Logger
}

// NewBroadcaster creates a broadcaster. Streams may connect before Run starts.
func NewBroadcaster(logger *zerolog.Logger) *Broadcaster {
	return &Broadcaster{
		clients: make(map[chan Event]struct{}),
		join:    make(chan chan Event, 16),
		leave:   make(chan chan Event, 16),
		events:  make(chan Event, 256),
		logger:  logger,
	}
}

// Run serves streams until ctx is cancelled.
func (b *Broadcaster) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			b.mu.Lock()
			for c := range b.clients {
				close(c)
			}
			b.clients = make(map[chan Event]struct{})
			b.mu.Unlock()
			return

		case c := <-b.join:
			b.mu.Lock()
			b.clients[c] = struct{}{}
			n := len(b.clients)
			b.mu.Unlock()
			b.logger.Info().Int("total_clients", n).Msg("SSE client connected")

		case c := <-b.leave:
			b.mu.Lock()
			if _, ok := b.clients[c]; ok {
				delete(b.clients, c)
				close(c)
			}
			b.mu.Unlock()

		case e := <-b.events:
			b.mu.RLock()
			for c := range b.clients {
				select {
				case c <- e:
				default:
					b.logger.Warn().Msg("SSE client buffer full, event skipped")
				}
			}
			b.mu.RUnlock()
		}
	}
}

// Broadcast queues an event for every stream.
func (b *Broadcaster) Broadcast(e Event) {
	select {
	case b.events <- e:
	default:
		b.logger.Warn().Msg("SSE queue full, event dropped")
	}
}

// Send implements events.Subscriber.
func (b *Broadcaster) Send(e events.Event) error {
	b.mu.Lock()
	b.seq++
	id := b.seq
	b.mu.Unlock()

	b.Broadcast(Event{Event: string(e.Type), ID: fmt.Sprint(id), Data: e.Data})
	return nil
}

// Close implements events.Subscriber. The broadcaster's lifetime is bound to Run.
func (b *Broadcaster) Close() error {
	return nil
}

// ClientCount returns the number of open streams.
func (b *Broadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// ServeHTTP streams events until the client disconnects.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	c := make(chan Event, 64)
	b.join <- c
	defer func() { b.leave <- c }()

	b.write(w, flusher, Event{
		Event: string(events.ClientConnected),
		Data:  map[string]any{"timestamp": time.Now()},
	})

	for {
		select {
		case e, open := <-c:
			if !open {
				return
			}
			b.write(w, flusher, e)
		case <-r.Context().Done():
			return
		}
	}
}

func (b *Broadcaster) write(w http.ResponseWriter, flusher http.Flusher, e Event) {
	data, err := json.Marshal(e.Data)
	if err != nil {
		b.logger.Error().Err(err).Msg("Failed to marshal SSE event")
		return
	}
	if e.Event != "" {
		_, _ = fmt.Fprintf(w, "event: %s\n", e.Event)
	}
	if e.ID != "" {
		_, _ = fmt.Fprintf(w, "id: %s\n", e.ID)
	}
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
	flusher.Flush()
}
