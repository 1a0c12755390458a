package events

import (
	"context"
	"testing"
	"time"

	"leadqual_backend/platform/logger"
)

type testEvent struct {
	BaseEvent
	Name string
}

func (e testEvent) EventName() string { return "test.event" }

type recordingHandler struct {
	got chan Event
}

func (h *recordingHandler) Handle(_ context.Context, e Event) error {
	h.got <- e
	return nil
}

func TestPublishReachesSubscribers(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	a := &recordingHandler{got: make(chan Event, 1)}
	b := &recordingHandler{got: make(chan Event, 1)}
	bus.Subscribe("test.event", a)
	bus.Subscribe("test.event", b)

	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent(), Name: "x"})

	for _, h := range []*recordingHandler{a, b} {
		select {
		case e := <-h.got:
			if e.EventName() != "test.event" {
				t.Fatalf("event name = %q", e.EventName())
			}
		case <-time.After(time.Second):
			t.Fatalf("handler never received the event")
		}
	}
}

func TestPublishWithoutSubscribersIsNoop(t *testing.T) {
	bus := NewInMemoryBus(logger.New("test"))

	h := &recordingHandler{got: make(chan Event, 1)}
	bus.Subscribe("other.event", h)

	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent()})

	select {
	case e := <-h.got:
		t.Fatalf("handler for a different event received %+v", e)
	case <-time.After(50 * time.Millisecond):
	}
}
