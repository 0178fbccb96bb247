package domain

import "time"

// Deal is an active or resolved sales opportunity. Status closed-won or
// closed-lost is terminal.
type Deal struct {
	ID                string
	Title             string
	Company           string
	Contact           string
	Amount            float64
	Status            string
	Probability       int
	ExpectedCloseDate time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsOpen reports whether the deal is still in play.
func (d Deal) IsOpen() bool {
	return !IsTerminalDealStatus(d.Status)
}

// WeightedAmount is the amount scaled by win probability. Only meaningful
// for open deals; closed deals are no longer probabilistic.
func (d Deal) WeightedAmount() float64 {
	return d.Amount * float64(d.Probability) / 100
}
