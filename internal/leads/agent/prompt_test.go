package agent

import (
	"strings"
	"testing"
)

func TestBuildTaskMessageWithAllFields(t *testing.T) {
	msg := BuildTaskMessage(Submission{
		Name:       "Mike Chen",
		Email:      "mike.chen@techvault.io",
		Company:    "TechVault Inc",
		Role:       "CTO",
		Transcript: "Looking to secure our remote workforce.",
	})

	want := "New lead from Intercom webhook: Name: Mike Chen, Email: mike.chen@techvault.io, Company: TechVault Inc, Role: CTO, Conversation: 'Looking to secure our remote workforce.'"
	if msg != want {
		t.Fatalf("message = %q\nwant %q", msg, want)
	}
}

func TestBuildTaskMessagePlaceholders(t *testing.T) {
	msg := BuildTaskMessage(Submission{Name: "Ann", Email: "ann@co.com"})

	if !strings.Contains(msg, "Company: Not provided") {
		t.Fatalf("missing company placeholder: %q", msg)
	}
	if !strings.Contains(msg, "Role: Not provided") {
		t.Fatalf("missing role placeholder: %q", msg)
	}
	if !strings.Contains(msg, "Conversation: 'No transcript provided'") {
		t.Fatalf("missing transcript placeholder: %q", msg)
	}
}

func TestNewSessionIDFormat(t *testing.T) {
	id := NewSessionID("agent-123")

	parts := strings.Split(id, "_")
	if len(parts) != 4 {
		t.Fatalf("session id %q should have 4 underscore-separated parts", id)
	}
	if parts[0] != "session" || parts[1] != "agent-123" {
		t.Fatalf("session id %q has wrong prefix", id)
	}
	if len(parts[3]) != 6 {
		t.Fatalf("random suffix %q should be 6 characters", parts[3])
	}
	if NewSessionID("agent-123") == id {
		t.Fatalf("consecutive session ids must differ")
	}
}
