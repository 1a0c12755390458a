// Package service runs the lead qualification pipeline: the per-lead
// processing state machine from submission to terminal status.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"leadqual_backend/internal/activity"
	"leadqual_backend/internal/events"
	"leadqual_backend/internal/leads/agent"
	"leadqual_backend/internal/leads/domain"
	"leadqual_backend/internal/leads/repository"
	"leadqual_backend/platform/apperr"
	"leadqual_backend/platform/logger"
)

// StreamOpener opens the live event channel for one submission and returns
// the close function for it. Implementations must swallow channel failures.
type StreamOpener interface {
	Open(sessionID string) func()
}

// Orchestrator owns the per-lead state machine. It is the only writer of the
// lead collection: each submission issues exactly one outbound qualification
// request, and the normalized result is reconciled back into lead and
// activity state. Submissions run independently; concurrent completions only
// ever touch their own lead by identity.
type Orchestrator struct {
	caller   agent.Caller
	streams  StreamOpener
	store    *repository.Store
	feed     *activity.Feed
	eventBus events.Bus
	log      *logger.Logger

	managerAgentID string
	streamWarmup   time.Duration
}

// NewOrchestrator wires the pipeline dependencies.
func NewOrchestrator(caller agent.Caller, streams StreamOpener, store *repository.Store, feed *activity.Feed, eventBus events.Bus, log *logger.Logger, managerAgentID string, streamWarmup time.Duration) *Orchestrator {
	return &Orchestrator{
		caller:         caller,
		streams:        streams,
		store:          store,
		feed:           feed,
		eventBus:       eventBus,
		log:            log,
		managerAgentID: managerAgentID,
		streamWarmup:   streamWarmup,
	}
}

// Submit validates the input, creates the lead in PROCESSING state, and
// launches the pipeline for it. Validation failures reject the submission
// before any state change. The returned lead is the PROCESSING placeholder;
// completion is observed through the store, the feed, and domain events.
func (o *Orchestrator) Submit(ctx context.Context, sub agent.Submission) (domain.ProcessedLead, error) {
	name := strings.TrimSpace(sub.Name)
	email := strings.TrimSpace(sub.Email)
	if name == "" || email == "" {
		return domain.ProcessedLead{}, apperr.Validation("lead name and email are required").WithOp("leads.submit")
	}

	lead := domain.ProcessedLead{
		ID: uuid.New().String(),
		Data: domain.LeadRecord{
			LeadName:  name,
			LeadEmail: email,
			LeadRole:  strings.TrimSpace(sub.Role),
		},
		Status:    domain.StatusProcessing,
		CreatedAt: time.Now(),
	}
	o.store.Prepend(lead)
	o.feed.Append(activity.KindReceive, fmt.Sprintf("New lead received: %s (%s)", name, email))

	sessionID := agent.NewSessionID(o.managerAgentID)
	o.eventBus.Publish(ctx, events.LeadSubmitted{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		LeadName:  name,
		LeadEmail: email,
		SessionID: sessionID,
	})

	go o.process(lead.ID, sessionID, sub)

	return lead, nil
}

// process runs the pipeline for one lead. It owns the live channel for its
// correlation token: the channel is closed on every exit path, success or
// failure, so no further remote events are attributed to this submission.
func (o *Orchestrator) process(leadID, sessionID string, sub agent.Submission) {
	closeStream := o.streams.Open(sessionID)
	defer closeStream()

	// Give the socket time to connect before events start flowing.
	if o.streamWarmup > 0 {
		time.Sleep(o.streamWarmup)
	}

	email := strings.TrimSpace(sub.Email)
	o.feed.Append(activity.KindEmail, fmt.Sprintf("Validating email: %s...", email))

	message := agent.BuildTaskMessage(sub)
	resp, err := o.caller.Call(context.Background(), message, o.managerAgentID, sessionID)
	if err != nil {
		o.fail(leadID, "Processing error: "+err.Error())
		return
	}
	if !resp.Success {
		reason := resp.Error
		if reason == "" {
			reason = "Unknown error"
		}
		o.fail(leadID, "Processing failed: "+reason)
		return
	}

	rec := agent.Normalize(resp)
	if rec == nil {
		o.fail(leadID, "Processing failed: no usable result in agent response")
		return
	}

	o.reconcile(leadID, sub, resp, rec)
}

// reconcile applies a normalized record: stage events in fixed order, then
// the terminal status transition.
func (o *Orchestrator) reconcile(leadID string, sub agent.Submission, resp *agent.Response, rec *domain.LeadRecord) {
	email := strings.TrimSpace(sub.Email)

	outcome := "Check complete"
	if rec.EmailValidation != nil && rec.EmailValidation.IsValid {
		outcome = "Valid"
	}
	o.feed.Append(activity.KindEmail, fmt.Sprintf("Email validated: %s - %s", email, outcome))

	company := ""
	if rec.CompanyEnrichment != nil {
		company = rec.CompanyEnrichment.CompanyName
	}
	if company == "" {
		company = strings.TrimSpace(sub.Company)
	}
	if company == "" {
		company = "Unknown"
	}
	o.feed.Append(activity.KindEnrich, "Company enriched: "+company)

	status := domain.ClassifyFinalStatus(rec.FinalStatus)

	score := 0
	intent := "N/A"
	if iq := rec.InterestQualification; iq != nil {
		score = iq.QualificationScore
		if iq.IntentLevel != "" {
			intent = string(iq.IntentLevel)
		}
	}
	o.feed.Append(activity.KindQualify, fmt.Sprintf("Lead %s: Score %d/100, Intent: %s",
		strings.ToLower(string(status)), score, intent))

	if status == domain.StatusQualified {
		o.feed.Append(activity.KindRoute, "Notification sent to #sales-qualified channel")
	} else {
		reason := "Does not meet criteria"
		if iq := rec.InterestQualification; iq != nil && iq.RecommendedAction != "" {
			reason = iq.RecommendedAction
		}
		o.feed.Append(activity.KindError, "Lead disqualified: "+reason)
	}

	if err := o.store.Complete(leadID, *rec, status, extractSummary(resp)); err != nil {
		o.log.Error("orchestrator: failed to apply terminal status", "leadId", leadID, "error", err)
		return
	}

	o.eventBus.Publish(context.Background(), events.LeadCompleted{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    leadID,
		Status:    status,
	})
}

// fail moves the lead to ERROR, emitting exactly one error activity event.
// The lead's data stays the pre-submission placeholder.
func (o *Orchestrator) fail(leadID, description string) {
	o.feed.Append(activity.KindError, description)

	if err := o.store.Fail(leadID); err != nil {
		o.log.Error("orchestrator: failed to mark lead as errored", "leadId", leadID, "error", err)
	}

	o.eventBus.Publish(context.Background(), events.LeadFailed{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    leadID,
		Reason:    description,
	})
}

// extractSummary pulls the human-readable summary from the reply: a summary
// field on the result when present, otherwise the response message.
func extractSummary(resp *agent.Response) string {
	if resp.Response == nil {
		return ""
	}
	if len(resp.Response.Result) > 0 {
		var wrapper struct {
			Summary string `json:"summary"`
		}
		if err := json.Unmarshal(resp.Response.Result, &wrapper); err == nil && wrapper.Summary != "" {
			return wrapper.Summary
		}
	}
	return resp.Response.Message
}
