// Package domain holds the canonical lead model and its processing state
// machine. Everything here is storage- and transport-agnostic.
package domain

import "time"

// RiskScore categorizes email risk as reported by the validation agent.
type RiskScore string

const (
	RiskLow     RiskScore = "low"
	RiskMedium  RiskScore = "medium"
	RiskHigh    RiskScore = "high"
	RiskUnknown RiskScore = "unknown"
)

// IntentLevel categorizes buying intent as reported by the qualification agent.
type IntentLevel string

const (
	IntentHot     IntentLevel = "HOT"
	IntentWarm    IntentLevel = "WARM"
	IntentCold    IntentLevel = "COLD"
	IntentUnknown IntentLevel = "unknown"
)

// EmailValidation is the email legitimacy verdict for a lead.
type EmailValidation struct {
	IsValid         bool      `json:"isValid"`
	IsBusinessEmail bool      `json:"isBusinessEmail"`
	IsDisposable    bool      `json:"isDisposable"`
	RiskScore       RiskScore `json:"riskScore,omitempty"`
	Domain          string    `json:"domain,omitempty"`
	Reasoning       string    `json:"reasoning,omitempty"`
}

// CompanyEnrichment is the firmographic profile for a lead's company.
// Employees carries one logical value: the exact headcount when the
// enrichment agent reported one, otherwise the headcount range.
type CompanyEnrichment struct {
	CompanyName    string   `json:"companyName,omitempty"`
	Industry       string   `json:"industry,omitempty"`
	Employees      string   `json:"employees,omitempty"`
	RevenueRange   string   `json:"revenueRange,omitempty"`
	Headquarters   string   `json:"headquarters,omitempty"`
	Website        string   `json:"website,omitempty"`
	Technologies   []string `json:"technologies,omitempty"`
	FundingStage   string   `json:"fundingStage,omitempty"`
	LinkedinURL    string   `json:"linkedinUrl,omitempty"`
	FitScore       *int     `json:"fitScore,omitempty"`
	FitReasoning   string   `json:"fitReasoning,omitempty"`
	DecisionMakers []string `json:"decisionMakers,omitempty"`
}

// InterestQualification is the intent scoring verdict for a lead.
// Scores are passed through as received; range checks are a presentation
// concern, not a domain one.
type InterestQualification struct {
	QualificationScore      int                `json:"qualificationScore"`
	IntentLevel             IntentLevel        `json:"intentLevel,omitempty"`
	BuyingSignals           []string           `json:"buyingSignals,omitempty"`
	DisqualificationReasons []string           `json:"disqualificationReasons,omitempty"`
	RecommendedAction       string             `json:"recommendedAction,omitempty"`
	ScoringBreakdown        map[string]float64 `json:"scoringBreakdown,omitempty"`
	Reasoning               string             `json:"reasoning,omitempty"`
}

// LeadRecord is the canonical qualification result for one prospect.
type LeadRecord struct {
	LeadName              string                 `json:"leadName,omitempty"`
	LeadEmail             string                 `json:"leadEmail,omitempty"`
	LeadRole              string                 `json:"leadRole,omitempty"`
	FinalStatus           string                 `json:"finalStatus,omitempty"`
	EmailValidation       *EmailValidation       `json:"emailValidation,omitempty"`
	CompanyEnrichment     *CompanyEnrichment     `json:"companyEnrichment,omitempty"`
	InterestQualification *InterestQualification `json:"interestQualification,omitempty"`
}

// HasContent reports whether the record carries anything usable: an identity
// field or at least one qualification sub-object.
func (r *LeadRecord) HasContent() bool {
	if r == nil {
		return false
	}
	return r.LeadName != "" || r.LeadEmail != "" ||
		r.EmailValidation != nil || r.CompanyEnrichment != nil || r.InterestQualification != nil
}

// ProcessedLead wraps a LeadRecord with orchestration metadata.
type ProcessedLead struct {
	ID        string     `json:"id"`
	Data      LeadRecord `json:"leadData"`
	Status    Status     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	Expanded  bool       `json:"expanded"`
	Summary   string     `json:"summary,omitempty"`
}
