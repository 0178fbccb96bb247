// Package metrics computes derived aggregates over lead and deal
// snapshots. Every function is pure: identical inputs always produce
// identical outputs, and none of them can fail.
package metrics

import (
	"sales_crm_backend/internal/crm/domain"
	"sales_crm_backend/platform/format"
)

// TotalPipelineValue is the sum of amount over all deals.
func TotalPipelineValue(deals []domain.Deal) float64 {
	var sum float64
	for _, d := range deals {
		sum += d.Amount
	}
	return sum
}

// WeightedPipelineValue is the probability-weighted sum over open deals.
// Closed deals are excluded: only open deals are probabilistic.
func WeightedPipelineValue(deals []domain.Deal) float64 {
	var sum float64
	for _, d := range deals {
		if d.IsOpen() {
			sum += d.WeightedAmount()
		}
	}
	return sum
}

// WonValue is the sum of amount over closed-won deals.
func WonValue(deals []domain.Deal) float64 {
	var sum float64
	for _, d := range deals {
		if d.Status == domain.DealStatusClosedWon {
			sum += d.Amount
		}
	}
	return sum
}

func wonCount(deals []domain.Deal) int {
	n := 0
	for _, d := range deals {
		if d.Status == domain.DealStatusClosedWon {
			n++
		}
	}
	return n
}

// ConversionRate is the ratio of closed-won deals to leads, as a 0..1
// fraction. Zero when there are no leads.
func ConversionRate(leads []domain.Lead, deals []domain.Deal) float64 {
	if len(leads) == 0 {
		return 0
	}
	return float64(wonCount(deals)) / float64(len(leads))
}

// AvgWonDealSize is the mean amount of closed-won deals, zero when none
// have closed.
func AvgWonDealSize(deals []domain.Deal) float64 {
	n := wonCount(deals)
	if n == 0 {
		return 0
	}
	return WonValue(deals) / float64(n)
}

// GroupByStage partitions deals into the four status buckets, preserving
// insertion order within each bucket.
func GroupByStage(deals []domain.Deal) map[string][]domain.Deal {
	buckets := make(map[string][]domain.Deal, len(domain.DealStages()))
	for _, stage := range domain.DealStages() {
		buckets[stage] = []domain.Deal{}
	}
	for _, d := range deals {
		buckets[d.Status] = append(buckets[d.Status], d)
	}
	return buckets
}

// StageSummary is one kanban column's header figures.
type StageSummary struct {
	Stage         string
	Count         int
	TotalValue    float64
	WeightedValue float64
}

// StageSummaries returns per-stage figures in kanban display order. The
// weighted value is zero for terminal stages, which the board does not
// show a weighted figure for.
func StageSummaries(deals []domain.Deal) []StageSummary {
	buckets := GroupByStage(deals)
	summaries := make([]StageSummary, 0, len(domain.DealStages()))
	for _, stage := range domain.DealStages() {
		s := StageSummary{Stage: stage, Count: len(buckets[stage])}
		for _, d := range buckets[stage] {
			s.TotalValue += d.Amount
			if !domain.IsTerminalDealStatus(stage) {
				s.WeightedValue += d.WeightedAmount()
			}
		}
		summaries = append(summaries, s)
	}
	return summaries
}

// FunnelStep is one lead-status count in the analytics funnel.
type FunnelStep struct {
	Status string
	Count  int
}

// LeadFunnel counts leads per status in funnel progression order.
func LeadFunnel(leads []domain.Lead) []FunnelStep {
	counts := make(map[string]int)
	for _, l := range leads {
		counts[l.Status]++
	}
	steps := make([]FunnelStep, 0, len(domain.LeadStatuses()))
	for _, status := range domain.LeadStatuses() {
		steps = append(steps, FunnelStep{Status: status, Count: counts[status]})
	}
	return steps
}

// MetricCard is one of the dashboard's headline figures, pre-rendered for
// display.
type MetricCard struct {
	Title string
	Value string
}

// MetricCards returns the four dashboard headline figures: total revenue,
// active leads, deals closed, and conversion rate.
func MetricCards(leads []domain.Lead, deals []domain.Deal, currencyCode string) []MetricCard {
	return []MetricCard{
		{Title: "Total Revenue", Value: format.Currency(WonValue(deals), currencyCode)},
		{Title: "Active Leads", Value: format.Number(float64(len(leads)))},
		{Title: "Deals Closed", Value: format.Number(float64(wonCount(deals)))},
		{Title: "Conversion Rate", Value: format.Percent(ConversionRate(leads, deals))},
	}
}
