package activity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"leadqual_backend/platform/logger"
)

// Streamer consumes the live event channel for one submission and folds its
// frames into the feed. Stream connectivity is best-effort telemetry: every
// failure mode here degrades the feed silently and never affects lead state.
type Streamer struct {
	baseURL string
	apiKey  string
	feed    *Feed
	log     *logger.Logger
}

// NewStreamer creates a live channel consumer writing into feed.
func NewStreamer(baseURL, apiKey string, feed *Feed, log *logger.Logger) *Streamer {
	return &Streamer{
		baseURL: baseURL,
		apiKey:  apiKey,
		feed:    feed,
		log:     log,
	}
}

// Open dials the channel for the given correlation token and starts reading
// frames until the returned close function is called or the connection drops.
// Connection failures are swallowed; the caller always gets a usable close
// function and must invoke it on every exit path.
func (s *Streamer) Open(sessionID string) func() {
	if s.baseURL == "" || s.apiKey == "" {
		return func() {}
	}

	url := fmt.Sprintf("%s/%s?x-api-key=%s", s.baseURL, sessionID, s.apiKey)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		s.log.StreamEvent(sessionID, "dial_failed", err)
		return func() {}
	}
	s.log.StreamEvent(sessionID, "connected", nil)

	done := make(chan struct{})
	go s.readLoop(conn, sessionID, done)

	var once bool
	return func() {
		if once {
			return
		}
		once = true
		_ = conn.Close()
		<-done
		s.log.StreamEvent(sessionID, "closed", nil)
	}
}

// frame is the ideal shape of one JSON text frame. Identity is assigned by
// the remote source; frames without one get a fresh id at merge time.
type frame struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Text    string `json:"text"`
}

func (s *Streamer) readLoop(conn *websocket.Conn, sessionID string, done chan<- struct{}) {
	defer close(done)

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			// Read errors include normal closure; either way the feed
			// simply stops growing from this source.
			s.log.StreamEvent(sessionID, "read_ended", err)
			return
		}
		if evt, ok := decodeFrame(payload); ok {
			s.feed.Merge(evt)
		}
	}
}

// decodeFrame translates one raw frame into an activity event. Frames that
// cannot be parsed as an event envelope are discarded; parseable frames
// lacking any recognizable message text become a best-effort textual event.
func decodeFrame(payload []byte) (Event, bool) {
	var f frame
	if err := json.Unmarshal(payload, &f); err != nil {
		return Event{}, false
	}

	description := f.Message
	if description == "" {
		description = f.Text
	}
	if description == "" {
		description = string(payload)
	}

	kind := KindQualify
	if f.Type == "error" {
		kind = KindError
	}

	return Event{
		ID:          f.ID,
		Kind:        kind,
		Description: description,
		Timestamp:   time.Now(),
	}, true
}
