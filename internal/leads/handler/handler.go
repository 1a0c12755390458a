// Package handler exposes the lead qualification HTTP API.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"leadqual_backend/internal/activity"
	"leadqual_backend/internal/leads/agent"
	"leadqual_backend/internal/leads/repository"
	"leadqual_backend/internal/leads/service"
	"leadqual_backend/internal/leads/transport"
	"leadqual_backend/platform/httpkit"
	"leadqual_backend/platform/validator"
)

// Handler handles HTTP requests for lead qualification.
type Handler struct {
	orch   *service.Orchestrator
	store  *repository.Store
	feed   *activity.Feed
	roster []transport.AgentInfo
	val    *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgLeadNotFound     = "lead not found"
)

// New creates a new leads handler.
func New(orch *service.Orchestrator, store *repository.Store, feed *activity.Feed, roster []transport.AgentInfo, val *validator.Validator) *Handler {
	return &Handler{orch: orch, store: store, feed: feed, roster: roster, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/leads", h.Submit)
	rg.GET("/leads", h.List)
	rg.POST("/leads/:id/expand", h.ToggleExpand)
	rg.GET("/activity", h.Activity)
	rg.GET("/metrics", h.Metrics)
	rg.GET("/demo", h.Demo)
	rg.GET("/agents", h.Agents)
}

// Submit accepts a new lead and starts the qualification pipeline.
// POST /api/v1/leads
func (h *Handler) Submit(c *gin.Context) {
	var req transport.SubmitLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead, err := h.orch.Submit(c.Request.Context(), agent.Submission{
		Name:       req.Name,
		Email:      req.Email,
		Company:    req.Company,
		Role:       req.Role,
		Transcript: req.Transcript,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusAccepted, transport.LeadFromDomain(lead))
}

// List returns all leads of the current session, most recent first.
// GET /api/v1/leads
func (h *Handler) List(c *gin.Context) {
	httpkit.OK(c, transport.LeadsFromDomain(h.store.Snapshot()))
}

// ToggleExpand flips the detail toggle on a lead.
// POST /api/v1/leads/:id/expand
func (h *Handler) ToggleExpand(c *gin.Context) {
	lead, err := h.store.ToggleExpanded(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusNotFound, msgLeadNotFound, nil)
		return
	}
	httpkit.OK(c, transport.LeadFromDomain(lead))
}

// Activity returns the merged activity feed in arrival order.
// GET /api/v1/activity
func (h *Handler) Activity(c *gin.Context) {
	httpkit.OK(c, transport.ActivityFromDomain(h.feed.Snapshot()))
}

// Metrics returns aggregate counters derived from the current leads.
// GET /api/v1/metrics
func (h *Handler) Metrics(c *gin.Context) {
	httpkit.OK(c, service.ComputeMetrics(h.store.Snapshot()))
}

// Demo returns the canned dataset used by the dashboard's sample mode.
// GET /api/v1/demo
func (h *Handler) Demo(c *gin.Context) {
	httpkit.OK(c, gin.H{
		"leads":    transport.LeadsFromDomain(service.SampleLeads()),
		"activity": transport.ActivityFromDomain(service.SampleActivity()),
	})
}

// Agents returns the processing roster.
// GET /api/v1/agents
func (h *Handler) Agents(c *gin.Context) {
	httpkit.OK(c, h.roster)
}
