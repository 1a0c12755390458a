package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"leadqual_backend/internal/activity"
	"leadqual_backend/internal/events"
	"leadqual_backend/internal/leads/agent"
	"leadqual_backend/internal/leads/domain"
	"leadqual_backend/internal/leads/repository"
	"leadqual_backend/platform/apperr"
	"leadqual_backend/platform/logger"
)

type fakeCaller struct {
	mu       sync.Mutex
	resp     *agent.Response
	err      error
	messages []string
	sessions []string
}

func (f *fakeCaller) Call(_ context.Context, message, _, sessionID string) (*agent.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, message)
	f.sessions = append(f.sessions, sessionID)
	return f.resp, f.err
}

type fakeStreams struct {
	mu     sync.Mutex
	opened []string
	closed int
}

func (f *fakeStreams) Open(sessionID string) func() {
	f.mu.Lock()
	f.opened = append(f.opened, sessionID)
	f.mu.Unlock()
	return func() {
		f.mu.Lock()
		f.closed++
		f.mu.Unlock()
	}
}

func (f *fakeStreams) counts() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.opened), f.closed
}

type fixture struct {
	orch    *Orchestrator
	store   *repository.Store
	feed    *activity.Feed
	caller  *fakeCaller
	streams *fakeStreams
}

func newFixture(t *testing.T, caller *fakeCaller) *fixture {
	t.Helper()
	log := logger.New("test")
	store := repository.New()
	feed := activity.NewFeed()
	streams := &fakeStreams{}
	orch := NewOrchestrator(caller, streams, store, feed, events.NewInMemoryBus(log), log, "manager-1", 0)
	return &fixture{orch: orch, store: store, feed: feed, caller: caller, streams: streams}
}

func successResponse(t *testing.T, result string) *agent.Response {
	t.Helper()
	return &agent.Response{
		Success:  true,
		Response: &agent.ResponseBody{Result: json.RawMessage(result)},
	}
}

func waitForTerminal(t *testing.T, store *repository.Store, id string) domain.ProcessedLead {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		lead, ok := store.Get(id)
		if ok && lead.Status.IsTerminal() {
			return lead
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("lead %s never reached a terminal status", id)
	return domain.ProcessedLead{}
}

func eventKinds(feed *activity.Feed) []activity.Kind {
	snap := feed.Snapshot()
	kinds := make([]activity.Kind, len(snap))
	for i, e := range snap {
		kinds[i] = e.Kind
	}
	return kinds
}

func TestSubmitRejectsMissingFields(t *testing.T) {
	fx := newFixture(t, &fakeCaller{})

	_, err := fx.orch.Submit(context.Background(), agent.Submission{Name: "Ann", Email: "   "})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	if fx.store.Len() != 0 {
		t.Fatalf("rejected submission must not create a lead")
	}
	if fx.feed.Len() != 0 {
		t.Fatalf("rejected submission must not touch the feed")
	}
	if opened, _ := fx.streams.counts(); opened != 0 {
		t.Fatalf("rejected submission must not open a stream")
	}
}

func TestSubmitDefaultsUnrecognizedStatusToQualified(t *testing.T) {
	caller := &fakeCaller{}
	fx := newFixture(t, caller)
	caller.resp = successResponse(t, `{
		"lead_name": "Ann",
		"lead_email": "ann@co.com",
		"final_status": "SOMETHING_ELSE",
		"interest_qualification": {"qualification_score": 88, "intent_level": "HOT"}
	}`)

	lead, err := fx.orch.Submit(context.Background(), agent.Submission{Name: "Ann", Email: "ann@co.com", Company: "Co"})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if lead.Status != domain.StatusProcessing {
		t.Fatalf("fresh lead status = %s, want PROCESSING", lead.Status)
	}

	done := waitForTerminal(t, fx.store, lead.ID)
	if done.Status != domain.StatusQualified {
		t.Fatalf("status = %s, want QUALIFIED (default-favorable classification)", done.Status)
	}

	want := []activity.Kind{
		activity.KindReceive,
		activity.KindEmail,
		activity.KindEmail,
		activity.KindEnrich,
		activity.KindQualify,
		activity.KindRoute,
	}
	got := eventKinds(fx.feed)
	if len(got) != len(want) {
		t.Fatalf("event kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d kind = %s, want %s", i, got[i], want[i])
		}
	}

	if opened, closed := fx.streams.counts(); opened != 1 || closed != 1 {
		t.Fatalf("stream opened %d closed %d, want 1/1", opened, closed)
	}
}

func TestSubmitDisqualifiedScenario(t *testing.T) {
	caller := &fakeCaller{}
	fx := newFixture(t, caller)
	caller.resp = successResponse(t, `{
		"lead_name": "Ann",
		"lead_email": "ann@co.com",
		"final_status": "DISQUALIFIED",
		"interest_qualification": {"qualification_score": 20, "intent_level": "COLD"}
	}`)

	lead, err := fx.orch.Submit(context.Background(), agent.Submission{Name: "Ann", Email: "ann@co.com"})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	done := waitForTerminal(t, fx.store, lead.ID)
	if done.Status != domain.StatusDisqualified {
		t.Fatalf("status = %s, want DISQUALIFIED", done.Status)
	}

	kinds := eventKinds(fx.feed)
	last := kinds[len(kinds)-1]
	if last != activity.KindError {
		t.Fatalf("final event kind = %s, want error (not route)", last)
	}
	for _, k := range kinds {
		if k == activity.KindRoute {
			t.Fatalf("disqualified lead must not emit a route event")
		}
	}

	m := ComputeMetrics(fx.store.Snapshot())
	if m.QualifiedCount != 0 || m.QualifiedRate != 0 {
		t.Fatalf("disqualified lead must not affect the qualified numerator: %+v", m)
	}
}

func TestSubmitServiceFailure(t *testing.T) {
	caller := &fakeCaller{}
	fx := newFixture(t, caller)
	caller.resp = &agent.Response{Success: false, Error: "service exploded"}

	// An earlier lead that must stay untouched.
	prior, err := fx.orch.Submit(context.Background(), agent.Submission{Name: "Bob", Email: "bob@co.com"})
	if err != nil {
		t.Fatalf("prior submit failed: %v", err)
	}
	waitForTerminal(t, fx.store, prior.ID)
	priorBefore, _ := fx.store.Get(prior.ID)
	errorsBefore := countKind(fx.feed, activity.KindError)

	lead, err := fx.orch.Submit(context.Background(), agent.Submission{Name: "Ann", Email: "ann@co.com"})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	done := waitForTerminal(t, fx.store, lead.ID)
	if done.Status != domain.StatusError {
		t.Fatalf("status = %s, want ERROR", done.Status)
	}
	if done.Data.LeadName != "Ann" || done.Data.LeadEmail != "ann@co.com" {
		t.Fatalf("failed lead must keep placeholder data, got %+v", done.Data)
	}

	if got := countKind(fx.feed, activity.KindError) - errorsBefore; got != 1 {
		t.Fatalf("failed submission appended %d error events, want exactly 1", got)
	}

	priorAfter, _ := fx.store.Get(prior.ID)
	if priorAfter.Status != priorBefore.Status {
		t.Fatalf("failure must not touch other leads: %s -> %s", priorBefore.Status, priorAfter.Status)
	}

	if opened, closed := fx.streams.counts(); opened != closed {
		t.Fatalf("stream must close on the failure path too: opened %d closed %d", opened, closed)
	}
}

func TestSubmitNormalizationFailure(t *testing.T) {
	caller := &fakeCaller{}
	fx := newFixture(t, caller)
	caller.resp = &agent.Response{Success: true} // success but nothing usable

	lead, err := fx.orch.Submit(context.Background(), agent.Submission{Name: "Ann", Email: "ann@co.com"})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	done := waitForTerminal(t, fx.store, lead.ID)
	if done.Status != domain.StatusError {
		t.Fatalf("status = %s, want ERROR on null normalization", done.Status)
	}
}

func TestSubmitSendsFixedShapePrompt(t *testing.T) {
	caller := &fakeCaller{}
	fx := newFixture(t, caller)
	caller.resp = successResponse(t, `{"lead_name":"Ann","lead_email":"ann@co.com"}`)

	lead, err := fx.orch.Submit(context.Background(), agent.Submission{Name: "Ann", Email: "ann@co.com"})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	waitForTerminal(t, fx.store, lead.ID)

	caller.mu.Lock()
	defer caller.mu.Unlock()
	if len(caller.messages) != 1 {
		t.Fatalf("expected exactly one outbound request, got %d", len(caller.messages))
	}
	want := "New lead from Intercom webhook: Name: Ann, Email: ann@co.com, Company: Not provided, Role: Not provided, Conversation: 'No transcript provided'"
	if caller.messages[0] != want {
		t.Fatalf("message = %q\nwant %q", caller.messages[0], want)
	}
	if len(caller.sessions) != 1 || caller.sessions[0] == "" {
		t.Fatalf("outbound call must carry the correlation token")
	}
}

func countKind(feed *activity.Feed, kind activity.Kind) int {
	n := 0
	for _, e := range feed.Snapshot() {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
