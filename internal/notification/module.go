// Package notification pushes pipeline progress to connected dashboards.
// It subscribes to domain events and bridges the activity feed onto SSE,
// so the leads module never needs to know how clients are connected.
package notification

import (
	"context"

	"leadqual_backend/internal/activity"
	"leadqual_backend/internal/events"
	apphttp "leadqual_backend/internal/http"
	"leadqual_backend/internal/notification/sse"
	"leadqual_backend/platform/logger"
)

// Module is the notification bounded context implementing http.Module.
type Module struct {
	sse *sse.Service
	log *logger.Logger
}

// NewModule creates and initializes the notification module.
func NewModule(log *logger.Logger) *Module {
	return &Module{
		sse: sse.New(log),
		log: log,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "notification" }

// RegisterRoutes mounts the SSE stream endpoint.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/stream", m.sse.Handler())
}

// RegisterHandlers subscribes the module to lifecycle events.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.LeadSubmitted{}.EventName(), m)
	bus.Subscribe(events.LeadCompleted{}.EventName(), m)
	bus.Subscribe(events.LeadFailed{}.EventName(), m)
}

// ActivityNotifier returns the callback the activity feed invokes on every
// appended or merged event.
func (m *Module) ActivityNotifier() func(activity.Event) {
	return func(e activity.Event) {
		m.sse.Broadcast(sse.Event{
			Type:    sse.EventActivity,
			Message: e.Description,
			Data:    e,
		})
	}
}

// Handle dispatches domain events to their SSE translations.
func (m *Module) Handle(_ context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.LeadSubmitted:
		m.sse.Broadcast(sse.Event{Type: sse.EventLeadUpdated, LeadID: e.LeadID})
	case events.LeadCompleted:
		m.sse.Broadcast(sse.Event{Type: sse.EventLeadUpdated, LeadID: e.LeadID, Data: e.Status})
	case events.LeadFailed:
		m.sse.Broadcast(sse.Event{Type: sse.EventLeadFailed, LeadID: e.LeadID, Message: e.Reason})
	}
	return nil
}

// SSE exposes the underlying service for shutdown.
func (m *Module) SSE() *sse.Service { return m.sse }
