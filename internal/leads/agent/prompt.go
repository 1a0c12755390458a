package agent

import (
	"fmt"
	"strings"
)

const (
	placeholderNotProvided  = "Not provided"
	placeholderNoTranscript = "No transcript provided"
)

// Submission is the caller-supplied input for one lead.
type Submission struct {
	Name       string
	Email      string
	Company    string
	Role       string
	Transcript string
}

// BuildTaskMessage composes the natural-language task description sent to the
// manager agent. Absent optional fields are rendered as explicit placeholders
// so the downstream service always receives a fixed-shape prompt.
func BuildTaskMessage(sub Submission) string {
	company := strings.TrimSpace(sub.Company)
	if company == "" {
		company = placeholderNotProvided
	}
	role := strings.TrimSpace(sub.Role)
	if role == "" {
		role = placeholderNotProvided
	}
	transcript := strings.TrimSpace(sub.Transcript)
	if transcript == "" {
		transcript = placeholderNoTranscript
	}

	return fmt.Sprintf(
		"New lead from Intercom webhook: Name: %s, Email: %s, Company: %s, Role: %s, Conversation: '%s'",
		strings.TrimSpace(sub.Name), strings.TrimSpace(sub.Email), company, role, transcript,
	)
}
