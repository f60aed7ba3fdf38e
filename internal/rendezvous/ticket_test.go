package rendezvous

import (
	"testing"
	"time"
)

func TestIssueAndValidateTicketRoundTrip(t *testing.T) {
	ticket, err := IssueTicket(12345, "shared-secret", time.Minute)
	if err != nil {
		t.Fatalf("IssueTicket: %v", err)
	}
	pid, err := ValidateTicket(ticket, "shared-secret")
	if err != nil {
		t.Fatalf("ValidateTicket: %v", err)
	}
	if pid != 12345 {
		t.Fatalf("pid = %d, want 12345", pid)
	}
}

func TestValidateTicketRejectsWrongSecret(t *testing.T) {
	ticket, err := IssueTicket(1, "correct-secret", time.Minute)
	if err != nil {
		t.Fatalf("IssueTicket: %v", err)
	}
	if _, err := ValidateTicket(ticket, "wrong-secret"); err == nil {
		t.Fatalf("expected ValidateTicket to reject a ticket signed with a different secret")
	}
}

func TestValidateTicketRejectsExpiredTicket(t *testing.T) {
	ticket, err := IssueTicket(1, "secret", -time.Minute)
	if err != nil {
		t.Fatalf("IssueTicket: %v", err)
	}
	if _, err := ValidateTicket(ticket, "secret"); err == nil {
		t.Fatalf("expected ValidateTicket to reject an expired ticket")
	}
}
