package agent

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"leadqual_backend/internal/leads/domain"
)

// Normalize maps a service reply onto the canonical LeadRecord. Extraction
// strategies are tried in priority order and the first that yields a usable
// record wins. Returns nil when the call did not report success or when no
// strategy produced anything usable; the caller treats nil as a processing
// failure.
func Normalize(resp *Response) *domain.LeadRecord {
	if resp == nil || !resp.Success {
		return nil
	}

	for _, strategy := range strategies {
		if rec := strategy(resp); rec.HasContent() {
			return rec
		}
	}
	return nil
}

// strategy is one extraction attempt over the raw reply. Strategies never
// panic on malformed input; they return nil and the chain falls through.
type strategy func(*Response) *domain.LeadRecord

var strategies = []strategy{
	extractResultData,
	extractResultDirect,
	extractRawResponse,
	extractResultPartial,
}

// extractResultData handles replies nesting the record under result.data.
func extractResultData(resp *Response) *domain.LeadRecord {
	raw := resultPayload(resp)
	if raw == nil {
		return nil
	}
	var wrapper struct {
		Data *wireRecord `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil || wrapper.Data == nil {
		return nil
	}
	if wrapper.Data.LeadName == "" && wrapper.Data.LeadEmail == "" {
		return nil
	}
	return wrapper.Data.resolve()
}

// extractResultDirect handles replies exposing identity fields on result itself.
func extractResultDirect(resp *Response) *domain.LeadRecord {
	raw := resultPayload(resp)
	if raw == nil {
		return nil
	}
	var rec wireRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil
	}
	if rec.LeadName == "" && rec.LeadEmail == "" {
		return nil
	}
	return rec.resolve()
}

// extractRawResponse handles textual payloads, possibly inside fenced code
// blocks. Malformed JSON is a failed strategy, never an error.
func extractRawResponse(resp *Response) *domain.LeadRecord {
	if resp.RawResponse == "" {
		return nil
	}
	cleaned := stripFences(resp.RawResponse)
	if cleaned == "" {
		return nil
	}

	var wrapper struct {
		Data *wireRecord `json:"data"`
	}
	if err := json.Unmarshal([]byte(cleaned), &wrapper); err == nil && wrapper.Data != nil {
		return wrapper.Data.resolve()
	}

	var rec wireRecord
	if err := json.Unmarshal([]byte(cleaned), &rec); err != nil {
		return nil
	}
	return rec.resolve()
}

// extractResultPartial accepts a result that lacks identity fields but
// carries at least one qualification sub-object.
func extractResultPartial(resp *Response) *domain.LeadRecord {
	raw := resultPayload(resp)
	if raw == nil {
		return nil
	}
	var rec wireRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil
	}
	if rec.EmailValidation == nil && rec.CompanyEnrichment == nil && rec.InterestQualification == nil {
		return nil
	}
	return rec.resolve()
}

func resultPayload(resp *Response) json.RawMessage {
	if resp.Response == nil || len(resp.Response.Result) == 0 {
		return nil
	}
	return resp.Response.Result
}

// stripFences removes markdown code fences (with an optional language tag)
// around a textual payload.
func stripFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimLeft(trimmed, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
		trimmed = strings.TrimSpace(trimmed)
	}
	if strings.HasSuffix(trimmed, "```") {
		trimmed = strings.TrimSuffix(trimmed, "```")
		trimmed = strings.TrimSpace(trimmed)
	}
	return trimmed
}

// FlexNumber tolerates JSON values that arrive as either number or string.
type FlexNumber float64

// UnmarshalJSON implements tolerant decoding for FlexNumber.
func (f *FlexNumber) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = FlexNumber(num)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if str == "" {
			*f = 0
			return nil
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			return err
		}
		*f = FlexNumber(parsed)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into FlexNumber", string(data))
}

// Wire shapes mirror the service's snake_case payloads, including the
// historical alias keys resolved by the table below.

type wireRecord struct {
	LeadName              string             `json:"lead_name"`
	LeadEmail             string             `json:"lead_email"`
	LeadRole              string             `json:"lead_role"`
	FinalStatus           string             `json:"final_status"`
	EmailValidation       *wireEmail         `json:"email_validation"`
	CompanyEnrichment     *wireCompany       `json:"company_enrichment"`
	InterestQualification *wireQualification `json:"interest_qualification"`
}

type wireEmail struct {
	IsValid         bool   `json:"is_valid"`
	IsBusinessEmail bool   `json:"is_business_email"`
	IsDisposable    bool   `json:"is_disposable"`
	RiskScore       string `json:"risk_score"`
	Domain          string `json:"domain"`
	Reasoning       string `json:"validation_reasoning"`
}

type wireCompany struct {
	CompanyName string `json:"company_name"`
	Industry    string `json:"industry"`

	// Alias pairs. Exact values win over ranges; the primary key wins over
	// its historical fallback.
	EmployeeCount      *FlexNumber `json:"employee_count"`
	EmployeeCountRange string      `json:"employee_count_range"`
	RevenueRange       string      `json:"revenue_range"`
	AnnualRevenueRange string      `json:"annual_revenue_range"`
	Headquarters       string      `json:"headquarters"`
	HeadquartersLoc    string      `json:"headquarters_location"`
	Technologies       []string    `json:"technologies"`
	TechnologiesUsed   []string    `json:"technologies_used"`

	Website        string      `json:"website"`
	FundingStage   string      `json:"funding_stage"`
	LinkedinURL    string      `json:"linkedin_url"`
	FitScore       *FlexNumber `json:"fit_score"`
	FitReasoning   string      `json:"fit_reasoning"`
	DecisionMakers []string    `json:"key_decision_makers"`
}

type wireQualification struct {
	QualificationScore      *FlexNumber        `json:"qualification_score"`
	IntentLevel             string             `json:"intent_level"`
	BuyingSignals           []string           `json:"buying_signals"`
	DisqualificationReasons []string           `json:"disqualification_reasons"`
	RecommendedAction       string             `json:"recommended_action"`
	ScoringBreakdown        map[string]float64 `json:"scoring_breakdown"`
	Reasoning               string             `json:"reasoning"`
}

func (w *wireRecord) resolve() *domain.LeadRecord {
	if w == nil {
		return nil
	}
	rec := &domain.LeadRecord{
		LeadName:    w.LeadName,
		LeadEmail:   w.LeadEmail,
		LeadRole:    w.LeadRole,
		FinalStatus: w.FinalStatus,
	}
	if w.EmailValidation != nil {
		rec.EmailValidation = &domain.EmailValidation{
			IsValid:         w.EmailValidation.IsValid,
			IsBusinessEmail: w.EmailValidation.IsBusinessEmail,
			IsDisposable:    w.EmailValidation.IsDisposable,
			RiskScore:       resolveRisk(w.EmailValidation.RiskScore),
			Domain:          w.EmailValidation.Domain,
			Reasoning:       w.EmailValidation.Reasoning,
		}
	}
	if w.CompanyEnrichment != nil {
		rec.CompanyEnrichment = w.CompanyEnrichment.resolve()
	}
	if w.InterestQualification != nil {
		rec.InterestQualification = w.InterestQualification.resolve()
	}
	return rec
}

// resolve applies the field-alias table: each aliased pair collapses to one
// canonical value, exact value over range, primary key over fallback.
func (w *wireCompany) resolve() *domain.CompanyEnrichment {
	ce := &domain.CompanyEnrichment{
		CompanyName:    w.CompanyName,
		Industry:       w.Industry,
		Website:        w.Website,
		FundingStage:   w.FundingStage,
		LinkedinURL:    w.LinkedinURL,
		FitReasoning:   w.FitReasoning,
		DecisionMakers: w.DecisionMakers,
	}

	switch {
	case w.EmployeeCount != nil:
		ce.Employees = formatCount(float64(*w.EmployeeCount))
	default:
		ce.Employees = w.EmployeeCountRange
	}

	ce.RevenueRange = w.RevenueRange
	if ce.RevenueRange == "" {
		ce.RevenueRange = w.AnnualRevenueRange
	}

	ce.Headquarters = w.Headquarters
	if ce.Headquarters == "" {
		ce.Headquarters = w.HeadquartersLoc
	}

	ce.Technologies = w.Technologies
	if len(ce.Technologies) == 0 {
		ce.Technologies = w.TechnologiesUsed
	}

	if w.FitScore != nil {
		score := int(*w.FitScore)
		ce.FitScore = &score
	}

	return ce
}

func (w *wireQualification) resolve() *domain.InterestQualification {
	iq := &domain.InterestQualification{
		IntentLevel:             resolveIntent(w.IntentLevel),
		BuyingSignals:           w.BuyingSignals,
		DisqualificationReasons: w.DisqualificationReasons,
		RecommendedAction:       w.RecommendedAction,
		ScoringBreakdown:        w.ScoringBreakdown,
		Reasoning:               w.Reasoning,
	}
	if w.QualificationScore != nil {
		iq.QualificationScore = int(*w.QualificationScore)
	}
	return iq
}

func resolveRisk(raw string) domain.RiskScore {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "low":
		return domain.RiskLow
	case "medium":
		return domain.RiskMedium
	case "high":
		return domain.RiskHigh
	case "":
		return ""
	default:
		return domain.RiskUnknown
	}
}

func resolveIntent(raw string) domain.IntentLevel {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "HOT":
		return domain.IntentHot
	case "WARM":
		return domain.IntentWarm
	case "COLD":
		return domain.IntentCold
	case "":
		return ""
	default:
		return domain.IntentUnknown
	}
}

func formatCount(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
