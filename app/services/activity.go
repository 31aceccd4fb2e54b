package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/tracechain/tracechain/app/models"
	"github.com/tracechain/tracechain/pkg/event"
	"github.com/tracechain/tracechain/pkg/logger"
	"github.com/tracechain/tracechain/pkg/ws"
)

// ActivityBroker fans live activity out to every connected client: the
// WebSocket hub and any number of SSE subscribers. Feedback submissions
// reach it through the event dispatcher.
type ActivityBroker struct {
	hub *ws.Hub

	mu   sync.Mutex
	subs map[chan []byte]struct{}
}

func NewActivityBroker() *ActivityBroker {
	return &ActivityBroker{
		hub:  ws.NewHub(),
		subs: make(map[chan []byte]struct{}),
	}
}

// Hub exposes the WebSocket hub for route wiring.
func (b *ActivityBroker) Hub() *ws.Hub { return b.hub }

// Start runs the hub loop and hooks the broker into the event dispatcher.
func (b *ActivityBroker) Start() {
	go b.hub.Run()

	event.Listen(EventFeedbackCreated, func(payload interface{}) {
		fb, ok := payload.(models.FeedbackEvent)
		if !ok {
			return
		}
		b.Publish("feedback", fb)
	})
}

// Publish broadcasts one activity message to all websocket clients and
// SSE subscribers. Slow subscribers drop messages rather than block.
func (b *ActivityBroker) Publish(kind string, payload any) {
	data, err := json.Marshal(map[string]any{
		"kind":      kind,
		"payload":   payload,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		logger.Error("activity: marshal", "error", err)
		return
	}

	select {
	case b.hub.Broadcast <- data:
	default:
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- data:
		default:
		}
	}
}

// Subscribe registers an SSE listener. The returned cancel func must be
// called when the client disconnects.
func (b *ActivityBroker) Subscribe() (<-chan []byte, func()) {
	ch := make(chan []byte, 16)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		delete(b.subs, ch)
		b.mu.Unlock()
	}
	return ch, cancel
}
