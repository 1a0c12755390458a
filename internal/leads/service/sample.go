package service

import (
	"time"

	"leadqual_backend/internal/activity"
	"leadqual_backend/internal/leads/domain"
)

func intPtr(v int) *int { return &v }

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// SampleLeads returns the canned dashboard dataset. It is served read-only
// and never mixed into the live store.
func SampleLeads() []domain.ProcessedLead {
	return []domain.ProcessedLead{
		{
			ID: "sample-1",
			Data: domain.LeadRecord{
				LeadName:    "David Park",
				LeadEmail:   "david.park@securetech.io",
				LeadRole:    "VP of IT",
				FinalStatus: "QUALIFIED",
				EmailValidation: &domain.EmailValidation{
					IsValid:         true,
					IsBusinessEmail: true,
					RiskScore:       domain.RiskLow,
				},
				CompanyEnrichment: &domain.CompanyEnrichment{
					CompanyName:  "SecureTech Solutions",
					Industry:     "Cybersecurity / Information Technology",
					Employees:    "500",
					RevenueRange: "$10M-$50M",
					Headquarters: "San Jose, California, United States",
					Website:      "https://securetech.io",
					Technologies: []string{"AWS", "Azure", "Cisco", "Office 365", "VMware", "Palo Alto Networks"},
					FundingStage: "Private",
					LinkedinURL:  "https://www.linkedin.com/company/securetech-io",
					FitScore:     intPtr(9),
				},
				InterestQualification: &domain.InterestQualification{
					QualificationScore: 94,
					IntentLevel:        domain.IntentHot,
					BuyingSignals: []string{
						"Budget approved",
						"Decision this quarter (imminent)",
						"Clear enterprise security needs (SSO, compliance)",
						"Scaling remote access",
						"Decision maker outreach",
					},
					RecommendedAction: "Assign to an experienced Enterprise AE. Respond ASAP to schedule a demo/discovery call.",
				},
			},
			Status:    domain.StatusQualified,
			CreatedAt: mustTime("2026-02-10T09:15:00Z"),
			Summary:   "Lead fully processed through all sub-agents. David Park at SecureTech Solutions is a QUALIFIED HOT lead with a score of 94/100.",
		},
		{
			ID: "sample-2",
			Data: domain.LeadRecord{
				LeadName:    "Sarah Jones",
				LeadEmail:   "sarah.jones@cloudflare.com",
				LeadRole:    "Director of Engineering",
				FinalStatus: "QUALIFIED",
				EmailValidation: &domain.EmailValidation{
					IsValid:         true,
					IsBusinessEmail: true,
					RiskScore:       domain.RiskLow,
				},
				CompanyEnrichment: &domain.CompanyEnrichment{
					CompanyName:  "Cloudflare, Inc.",
					Industry:     "Internet Infrastructure & Cybersecurity",
					Employees:    "2500",
					RevenueRange: "$900M-$1.1B",
					Headquarters: "San Francisco, California, USA",
					Website:      "https://www.cloudflare.com",
					Technologies: []string{"Kubernetes", "Docker", "AWS", "Python", "Go", "Terraform", "Kafka"},
					FundingStage: "Public (NYSE: NET)",
					LinkedinURL:  "https://www.linkedin.com/company/cloudflare/",
					FitScore:     intPtr(9),
				},
				InterestQualification: &domain.InterestQualification{
					QualificationScore: 78,
					IntentLevel:        domain.IntentWarm,
					BuyingSignals: []string{
						"Large enterprise with security focus",
						"Engineering leadership evaluation",
						"Cloud-native infrastructure",
					},
					RecommendedAction: "Schedule a technical deep-dive with their engineering team.",
				},
			},
			Status:    domain.StatusQualified,
			CreatedAt: mustTime("2026-02-10T08:42:00Z"),
			Summary:   "Cloudflare lead qualified with WARM intent. Strong company fit but needs nurturing.",
		},
		{
			ID: "sample-3",
			Data: domain.LeadRecord{
				LeadName:    "John Smith",
				LeadEmail:   "john.smith@tempmail.org",
				LeadRole:    "Student",
				FinalStatus: "DISQUALIFIED",
				EmailValidation: &domain.EmailValidation{
					IsDisposable: true,
					RiskScore:    domain.RiskHigh,
				},
				CompanyEnrichment: &domain.CompanyEnrichment{
					CompanyName:  "Unknown",
					Industry:     "Unknown",
					Employees:    "0",
					RevenueRange: "N/A",
					Headquarters: "Unknown",
					FitScore:     intPtr(1),
				},
				InterestQualification: &domain.InterestQualification{
					QualificationScore: 12,
					IntentLevel:        domain.IntentCold,
					DisqualificationReasons: []string{
						"Disposable email",
						"No company association",
						"No buying authority",
					},
					RecommendedAction: "No action. Lead does not meet qualification criteria.",
				},
			},
			Status:    domain.StatusDisqualified,
			CreatedAt: mustTime("2026-02-10T07:30:00Z"),
			Summary:   "Lead disqualified. Disposable email with no company association.",
		},
	}
}

// SampleActivity returns the canned activity feed matching SampleLeads.
func SampleActivity() []activity.Event {
	mk := func(id string, kind activity.Kind, description, ts string) activity.Event {
		return activity.Event{ID: id, Kind: kind, Description: description, Timestamp: mustTime(ts)}
	}
	return []activity.Event{
		mk("sa-1", activity.KindReceive, "New lead received: David Park (securetech.io)", "2026-02-10T09:15:00Z"),
		mk("sa-2", activity.KindEmail, "Email validated: david.park@securetech.io - Valid business email", "2026-02-10T09:15:05Z"),
		mk("sa-3", activity.KindEnrich, "Company enriched: SecureTech Solutions - Cybersecurity, 500 employees", "2026-02-10T09:15:12Z"),
		mk("sa-4", activity.KindQualify, "Lead qualified: Score 94/100, Intent: HOT", "2026-02-10T09:15:18Z"),
		mk("sa-5", activity.KindRoute, "Notification sent to #sales-qualified channel", "2026-02-10T09:15:20Z"),
		mk("sa-6", activity.KindReceive, "New lead received: Sarah Jones (cloudflare.com)", "2026-02-10T08:42:00Z"),
		mk("sa-7", activity.KindEmail, "Email validated: sarah.jones@cloudflare.com - Valid business email", "2026-02-10T08:42:04Z"),
		mk("sa-8", activity.KindEnrich, "Company enriched: Cloudflare, Inc. - Internet Infrastructure, 2500 employees", "2026-02-10T08:42:10Z"),
		mk("sa-9", activity.KindQualify, "Lead qualified: Score 78/100, Intent: WARM", "2026-02-10T08:42:16Z"),
		mk("sa-10", activity.KindRoute, "Notification sent to #sales-qualified channel", "2026-02-10T08:42:18Z"),
		mk("sa-11", activity.KindReceive, "New lead received: John Smith (tempmail.org)", "2026-02-10T07:30:00Z"),
		mk("sa-12", activity.KindEmail, "Email validation failed: john.smith@tempmail.org - Disposable email", "2026-02-10T07:30:04Z"),
		mk("sa-13", activity.KindError, "Lead disqualified: No company association, disposable email", "2026-02-10T07:30:08Z"),
	}
}
