package domain

import "testing"

func TestCanTransitionDeal(t *testing.T) {
	tests := []struct {
		from     string
		to       string
		wantFail bool
	}{
		{DealStatusProposal, DealStatusNegotiation, false},
		{DealStatusNegotiation, DealStatusProposal, false},
		{DealStatusProposal, DealStatusClosedWon, false},
		{DealStatusProposal, DealStatusClosedLost, false},
		{DealStatusNegotiation, DealStatusClosedWon, false},
		{DealStatusClosedWon, DealStatusProposal, true},
		{DealStatusClosedWon, DealStatusClosedLost, true},
		{DealStatusClosedLost, DealStatusNegotiation, true},
		{DealStatusProposal, "qualified", true},
		{DealStatusProposal, "", true},
	}

	for _, tc := range tests {
		reason := CanTransitionDeal(tc.from, tc.to)
		if tc.wantFail && reason == "" {
			t.Errorf("CanTransitionDeal(%q, %q) should have returned a reason", tc.from, tc.to)
		}
		if !tc.wantFail && reason != "" {
			t.Errorf("CanTransitionDeal(%q, %q) unexpected rejection: %s", tc.from, tc.to, reason)
		}
	}
}

func TestIsTerminalDealStatus(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{DealStatusClosedWon, true},
		{DealStatusClosedLost, true},
		{DealStatusProposal, false},
		{DealStatusNegotiation, false},
		{"", false},
	}

	for _, tc := range tests {
		if got := IsTerminalDealStatus(tc.status); got != tc.want {
			t.Errorf("IsTerminalDealStatus(%q) = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestKnownStatuses(t *testing.T) {
	for _, status := range LeadStatuses() {
		if !IsKnownLeadStatus(status) {
			t.Errorf("lead status %q should be known", status)
		}
	}
	for _, status := range DealStages() {
		if !IsKnownDealStatus(status) {
			t.Errorf("deal status %q should be known", status)
		}
	}
	if IsKnownLeadStatus("closed-won") {
		t.Error("closed-won is a deal status, not a lead status")
	}
	if IsKnownDealStatus("contacted") {
		t.Error("contacted is a lead status, not a deal status")
	}
}
