package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"leadqual_backend/internal/activity"
	"leadqual_backend/internal/events"
	"leadqual_backend/internal/leads/agent"
	"leadqual_backend/internal/leads/domain"
	"leadqual_backend/internal/leads/repository"
	"leadqual_backend/internal/leads/service"
	"leadqual_backend/internal/leads/transport"
	"leadqual_backend/platform/logger"
	"leadqual_backend/platform/validator"
)

type stubCaller struct{}

func (stubCaller) Call(context.Context, string, string, string) (*agent.Response, error) {
	return &agent.Response{
		Success:  true,
		Response: &agent.ResponseBody{Result: json.RawMessage(`{"lead_name":"Ann","lead_email":"ann@co.com"}`)},
	}, nil
}

type stubStreams struct{}

func (stubStreams) Open(string) func() { return func() {} }

func newTestRouter(t *testing.T) (*gin.Engine, *repository.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.New("test")
	store := repository.New()
	feed := activity.NewFeed()
	orch := service.NewOrchestrator(stubCaller{}, stubStreams{}, store, feed, events.NewInMemoryBus(log), log, "manager-1", 0)
	roster := []transport.AgentInfo{{ID: "manager-1", Name: "Lead Qualification Manager", Purpose: "Orchestrates the full qualification pipeline"}}
	h := New(orch, store, feed, roster, validator.New())

	engine := gin.New()
	h.RegisterRoutes(engine.Group("/api/v1"))
	return engine, store
}

func doRequest(engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestSubmitRejectsMalformedBody(t *testing.T) {
	engine, store := newTestRouter(t)

	w := doRequest(engine, http.MethodPost, "/api/v1/leads", `{"name":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if store.Len() != 0 {
		t.Fatalf("malformed body must not create a lead")
	}
}

func TestSubmitRejectsMissingEmail(t *testing.T) {
	engine, store := newTestRouter(t)

	w := doRequest(engine, http.MethodPost, "/api/v1/leads", `{"name":"Ann"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if store.Len() != 0 {
		t.Fatalf("missing email must not create a lead")
	}
}

func TestSubmitAcceptsFreeFormEmail(t *testing.T) {
	// Email legitimacy is the validation agent's verdict, not a transport
	// concern; any non-empty string enters the pipeline.
	engine, store := newTestRouter(t)

	w := doRequest(engine, http.MethodPost, "/api/v1/leads", `{"name":"Ann","email":"ann at work"}`)
	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202: %s", w.Code, w.Body.String())
	}
	var resp transport.LeadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != domain.StatusProcessing || resp.Data.LeadEmail != "ann at work" {
		t.Fatalf("lead = %+v, want PROCESSING with the email passed through", resp)
	}
	if store.Len() != 1 {
		t.Fatalf("store len = %d, want 1", store.Len())
	}
}

func TestSubmitAcceptsLead(t *testing.T) {
	engine, store := newTestRouter(t)

	w := doRequest(engine, http.MethodPost, "/api/v1/leads", `{"name":"Ann","email":"ann@co.com","company":"Co"}`)
	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202: %s", w.Code, w.Body.String())
	}

	var resp transport.LeadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID == "" || resp.Status != domain.StatusProcessing {
		t.Fatalf("fresh lead = %+v, want PROCESSING with id", resp)
	}
	if store.Len() != 1 {
		t.Fatalf("store len = %d, want 1", store.Len())
	}
}

func TestListReturnsMostRecentFirst(t *testing.T) {
	engine, store := newTestRouter(t)
	store.Prepend(domain.ProcessedLead{ID: "a", Status: domain.StatusQualified, CreatedAt: time.Now()})
	store.Prepend(domain.ProcessedLead{ID: "b", Status: domain.StatusProcessing, CreatedAt: time.Now()})

	w := doRequest(engine, http.MethodGet, "/api/v1/leads", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp []transport.LeadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 2 || resp[0].ID != "b" || resp[1].ID != "a" {
		t.Fatalf("list order = %+v, want b then a", resp)
	}
}

func TestToggleExpand(t *testing.T) {
	engine, store := newTestRouter(t)
	store.Prepend(domain.ProcessedLead{ID: "a", Status: domain.StatusQualified})

	w := doRequest(engine, http.MethodPost, "/api/v1/leads/a/expand", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp transport.LeadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Expanded {
		t.Fatalf("expanded = false, want true after toggle")
	}

	w = doRequest(engine, http.MethodPost, "/api/v1/leads/missing/expand", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 for unknown lead", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	engine, store := newTestRouter(t)
	store.Prepend(domain.ProcessedLead{ID: "a", Status: domain.StatusQualified})
	store.Prepend(domain.ProcessedLead{ID: "b", Status: domain.StatusDisqualified})

	w := doRequest(engine, http.MethodGet, "/api/v1/metrics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var m service.Metrics
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if m.ProcessedCount != 2 || m.QualifiedRate != 50 {
		t.Fatalf("metrics = %+v, want processed 2 rate 50", m)
	}
}

func TestDemoEndpoint(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := doRequest(engine, http.MethodGet, "/api/v1/demo", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		Leads    []transport.LeadResponse         `json:"leads"`
		Activity []transport.ActivityEventResponse `json:"activity"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Leads) != 3 || len(resp.Activity) != 13 {
		t.Fatalf("demo dataset = %d leads %d events, want 3/13", len(resp.Leads), len(resp.Activity))
	}
	if resp.Leads[0].Data.LeadName != "David Park" {
		t.Fatalf("first demo lead = %q, want David Park", resp.Leads[0].Data.LeadName)
	}
}

func TestAgentsEndpoint(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := doRequest(engine, http.MethodGet, "/api/v1/agents", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var roster []transport.AgentInfo
	if err := json.Unmarshal(w.Body.Bytes(), &roster); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(roster) != 1 || roster[0].Name != "Lead Qualification Manager" {
		t.Fatalf("roster = %+v", roster)
	}
}
