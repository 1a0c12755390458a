// Package leads is the lead qualification bounded context: submission,
// agent orchestration, activity merging, and metrics.
package leads

import (
	"leadqual_backend/internal/activity"
	"leadqual_backend/internal/config"
	"leadqual_backend/internal/events"
	apphttp "leadqual_backend/internal/http"
	"leadqual_backend/internal/leads/agent"
	"leadqual_backend/internal/leads/handler"
	"leadqual_backend/internal/leads/repository"
	"leadqual_backend/internal/leads/service"
	"leadqual_backend/internal/leads/transport"
	"leadqual_backend/platform/logger"
	"leadqual_backend/platform/validator"
)

// Module is the leads bounded context implementing http.Module.
type Module struct {
	handler *handler.Handler
	orch    *service.Orchestrator
	store   *repository.Store
	feed    *activity.Feed
}

// NewModule creates and initializes the leads module.
func NewModule(cfg *config.Config, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	store := repository.New()
	feed := activity.NewFeed()

	client := agent.NewClient(cfg.AgentAPIURL, cfg.AgentAPIKey, log)
	streamer := activity.NewStreamer(cfg.ActivityStreamURL, cfg.AgentAPIKey, feed, log)

	orch := service.NewOrchestrator(client, streamer, store, feed, bus, log, cfg.ManagerAgentID, cfg.StreamWarmup)
	h := handler.New(orch, store, feed, roster(cfg), val)

	return &Module{
		handler: h,
		orch:    orch,
		store:   store,
		feed:    feed,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "leads" }

// RegisterRoutes mounts the leads API under /api/v1.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1)
}

// Feed exposes the activity feed so the notification module can attach
// its push callback.
func (m *Module) Feed() *activity.Feed { return m.feed }

func roster(cfg *config.Config) []transport.AgentInfo {
	return []transport.AgentInfo{
		{ID: cfg.ManagerAgentID, Name: "Lead Qualification Manager", Purpose: "Orchestrates the full qualification pipeline"},
		{ID: cfg.EmailAgentID, Name: "Email Validation Agent", Purpose: "Validates email legitimacy and risk"},
		{ID: cfg.EnrichmentAgentID, Name: "Lead Enrichment Agent", Purpose: "Enriches company firmographic data"},
		{ID: cfg.QualificationAgentID, Name: "Interest Qualification Agent", Purpose: "Scores intent and buying signals"},
	}
}
