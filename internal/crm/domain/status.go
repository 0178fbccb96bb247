// Package domain provides core business rules for the CRM bounded context.
package domain

const (
	LeadStatusNew         = "new"
	LeadStatusContacted   = "contacted"
	LeadStatusQualified   = "qualified"
	LeadStatusProposal    = "proposal"
	LeadStatusNegotiation = "negotiation"
)

const (
	DealStatusProposal    = "proposal"
	DealStatusNegotiation = "negotiation"
	DealStatusClosedWon   = "closed-won"
	DealStatusClosedLost  = "closed-lost"
)

var knownLeadStatuses = map[string]struct{}{
	LeadStatusNew:         {},
	LeadStatusContacted:   {},
	LeadStatusQualified:   {},
	LeadStatusProposal:    {},
	LeadStatusNegotiation: {},
}

var knownDealStatuses = map[string]struct{}{
	DealStatusProposal:    {},
	DealStatusNegotiation: {},
	DealStatusClosedWon:   {},
	DealStatusClosedLost:  {},
}

// terminalDealStatuses are deal statuses with no outgoing transitions.
// A closed deal cannot be re-opened.
var terminalDealStatuses = map[string]bool{
	DealStatusClosedWon:  true,
	DealStatusClosedLost: true,
}

func IsKnownLeadStatus(status string) bool {
	_, ok := knownLeadStatuses[status]
	return ok
}

func IsKnownDealStatus(status string) bool {
	_, ok := knownDealStatuses[status]
	return ok
}

// IsTerminalDealStatus returns true if the status alone is terminal.
func IsTerminalDealStatus(status string) bool {
	return terminalDealStatuses[status]
}

// DealStages returns the pipeline buckets in kanban display order.
func DealStages() []string {
	return []string{
		DealStatusProposal,
		DealStatusNegotiation,
		DealStatusClosedWon,
		DealStatusClosedLost,
	}
}

// LeadStatuses returns the lead funnel statuses in progression order.
func LeadStatuses() []string {
	return []string{
		LeadStatusNew,
		LeadStatusContacted,
		LeadStatusQualified,
		LeadStatusProposal,
		LeadStatusNegotiation,
	}
}

// CanTransitionDeal checks whether a deal may move from one status to
// another. Returns a non-empty reason string when the transition is
// rejected. The sales process does not enforce strict stage ordering, so
// any non-terminal deal may move to any known status, including directly
// to a terminal one.
func CanTransitionDeal(from, to string) string {
	if !IsKnownDealStatus(to) {
		return "unknown deal status: " + to
	}
	if IsTerminalDealStatus(from) {
		return "deal is " + from + " and cannot be re-opened"
	}
	return ""
}
