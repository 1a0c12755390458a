// Package sse provides Server-Sent Events support for pushing live pipeline
// progress to connected dashboards.
package sse

import (
	"encoding/json"
	"sync"

	"github.com/gin-gonic/gin"

	"leadqual_backend/platform/logger"
)

// EventType represents different types of SSE events.
type EventType string

const (
	EventActivity    EventType = "activity"
	EventLeadUpdated EventType = "lead_updated"
	EventLeadFailed  EventType = "lead_failed"
)

// Event represents an SSE event payload.
type Event struct {
	Type    EventType   `json:"type"`
	LeadID  string      `json:"leadId,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// client represents a connected SSE client. Its channel is closed exactly
// once, whichever of handler teardown or service shutdown comes first, and
// sends are refused after that.
type client struct {
	mu     sync.Mutex
	closed bool
	events chan Event
}

// send delivers an event unless the client is closed or its buffer is full.
// It reports whether the event was queued.
func (c *client) send(e Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.events <- e:
		return true
	default:
		return false
	}
}

func (c *client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.events)
}

// Service manages SSE connections and event broadcasting. The dashboard is
// session-scoped, so every connected client receives every event.
type Service struct {
	mu      sync.RWMutex
	clients []*client
	log     *logger.Logger
}

// New creates a new SSE service.
func New(log *logger.Logger) *Service {
	return &Service{log: log}
}

func (s *Service) addClient(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients = append(s.clients, c)
}

func (s *Service) removeClient(c *client) {
	s.mu.Lock()
	for i, cl := range s.clients {
		if cl == c {
			s.clients = append(s.clients[:i], s.clients[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	c.close()
}

// Broadcast sends an event to every connected client. Slow clients drop
// events rather than stall the pipeline.
func (s *Service) Broadcast(event Event) {
	s.mu.RLock()
	clients := make([]*client, len(s.clients))
	copy(clients, s.clients)
	s.mu.RUnlock()

	for _, c := range clients {
		if !c.send(event) {
			s.log.Debug("sse: event dropped", "type", string(event.Type))
		}
	}
}

// ClientCount reports the number of connected dashboards.
func (s *Service) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Handler returns a Gin handler for SSE connections.
// GET /api/v1/stream
func (s *Service) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("X-Accel-Buffering", "no")

		cl := &client{events: make(chan Event, 32)}
		s.addClient(cl)
		defer s.removeClient(cl)

		c.SSEvent("connected", gin.H{"status": "ok"})
		c.Writer.Flush()

		s.log.Debug("sse: client connected")

		clientGone := c.Request.Context().Done()
		for {
			select {
			case <-clientGone:
				s.log.Debug("sse: client disconnected")
				return
			case event, ok := <-cl.events:
				if !ok {
					return
				}
				data, _ := json.Marshal(event)
				c.SSEvent(string(event.Type), string(data))
				c.Writer.Flush()
			}
		}
	}
}

// Close shuts down the SSE service, disconnecting all clients. Handlers
// still draining will observe their channel closed and run removeClient as
// a no-op close.
func (s *Service) Close() {
	s.mu.Lock()
	clients := s.clients
	s.clients = nil
	s.mu.Unlock()
	for _, c := range clients {
		c.close()
	}
}
