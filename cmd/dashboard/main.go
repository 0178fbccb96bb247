package main

import (
	"context"
	"fmt"
	"os"

	"sales_crm_backend/internal/crm"
	"sales_crm_backend/internal/crm/domain"
	"sales_crm_backend/internal/crm/metrics"
	"sales_crm_backend/internal/crm/transport"
	"sales_crm_backend/internal/events"
	"sales_crm_backend/platform/apperr"
	"sales_crm_backend/platform/config"
	"sales_crm_backend/platform/format"
	"sales_crm_backend/platform/logger"
	"sales_crm_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting dashboard demo", "env", cfg.Env, "currency", cfg.Currency)

	ctx := context.Background()

	bus := events.NewInMemoryBus(log)
	val := validator.New()

	module, err := crm.NewModule(bus, val, cfg, log)
	if err != nil {
		log.Error("failed to initialize crm module", "error", err)
		os.Exit(1)
	}

	// Stand-in for the presentation layer: every stage change triggers a
	// recompute of the derived views, the way the UI re-renders.
	bus.Subscribe(events.DealStageChanged{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
		e, ok := event.(events.DealStageChanged)
		if !ok {
			return nil
		}
		_, deals := module.Store.Snapshot()
		log.Info("pipeline recomputed",
			"dealId", e.DealID,
			"from", e.OldStage,
			"to", e.NewStage,
			"weightedValue", metrics.WeightedPipelineValue(deals),
		)
		return nil
	}))

	engine := module.Engine

	// A scripted session exercising each lifecycle operation.
	leads := module.Store.Leads()
	first := leads[0]

	qualified := domain.LeadStatusQualified
	if _, err := engine.UpdateLead(ctx, first.ID, transport.UpdateLeadRequest{Status: &qualified}); err != nil {
		log.Error("update lead failed", "error", err)
	}

	deal, err := engine.ConvertLeadToDeal(ctx, first.ID)
	if err != nil {
		log.Error("convert failed", "error", err)
		os.Exit(1)
	}

	added, err := engine.AddDeal(ctx, transport.CreateDealRequest{
		Title:       "Support Contract Renewal",
		Company:     "Global Tech",
		Contact:     "Carol Davis",
		Amount:      12000,
		Probability: 40,
	})
	if err != nil {
		log.Error("add deal failed", "error", err)
		os.Exit(1)
	}

	if _, err := engine.TransitionDealStatus(ctx, deal.ID, domain.DealStatusNegotiation); err != nil {
		log.Error("transition failed", "error", err)
	}
	if _, err := engine.TransitionDealStatus(ctx, added.ID, domain.DealStatusClosedWon); err != nil {
		log.Error("transition failed", "error", err)
	}

	// Closed deals stay closed; show the rejection path.
	if _, err := engine.TransitionDealStatus(ctx, added.ID, domain.DealStatusProposal); err != nil {
		log.Warn("re-open rejected as expected", "kind", apperr.GetKind(err), "error", err)
	}

	if err := engine.ReorderWithinStage(ctx, deal.ID, 0); err != nil {
		log.Error("reorder failed", "error", err)
	}

	printReport(module, cfg.GetCurrency())
}

func printReport(module *crm.Module, currencyCode string) {
	leadsSnap, dealsSnap := module.Store.Snapshot()

	fmt.Println()
	fmt.Println("=== Sales Dashboard ===")
	for _, card := range metrics.MetricCards(leadsSnap, dealsSnap, currencyCode) {
		fmt.Printf("%-16s %s\n", card.Title, card.Value)
	}

	fmt.Println()
	fmt.Println("=== Pipeline ===")
	buckets := metrics.GroupByStage(dealsSnap)
	for _, summary := range metrics.StageSummaries(dealsSnap) {
		fmt.Printf("%s (%d) %s", format.CapitalizeFirst(summary.Stage), summary.Count, format.Currency(summary.TotalValue, currencyCode))
		if !domain.IsTerminalDealStatus(summary.Stage) {
			fmt.Printf(" weighted %s", format.Currency(summary.WeightedValue, currencyCode))
		}
		fmt.Println()
		for _, d := range buckets[summary.Stage] {
			fmt.Printf("  - %s · %s · %s · close %s\n", d.Title, d.Company, format.Currency(d.Amount, currencyCode), format.Date(d.ExpectedCloseDate))
		}
	}

	fmt.Println()
	fmt.Println("=== Lead Funnel ===")
	for _, step := range metrics.LeadFunnel(leadsSnap) {
		fmt.Printf("%-12s %d\n", format.CapitalizeFirst(step.Status), step.Count)
	}
}
