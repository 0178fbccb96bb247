// Package crm provides the sales CRM bounded context module.
// This file defines the module that encapsulates store and engine setup.
package crm

import (
	"sales_crm_backend/internal/crm/service"
	"sales_crm_backend/internal/crm/store"
	"sales_crm_backend/internal/events"
	"sales_crm_backend/platform/config"
	"sales_crm_backend/platform/logger"
	"sales_crm_backend/platform/validator"
)

// Module is the CRM bounded context.
type Module struct {
	Store  *store.Store
	Engine *service.Engine
}

// NewModule creates and initializes the CRM module with all its
// dependencies. The store is seeded from the configured fixture file when
// one is set, otherwise from the built-in demo dataset.
func NewModule(bus events.Bus, val *validator.Validator, cfg *config.Config, log *logger.Logger) (*Module, error) {
	if err := service.RegisterValidations(val); err != nil {
		return nil, err
	}

	st := store.New()
	if cfg.GetSeedFile() != "" {
		if err := st.LoadSeedFile(cfg.GetSeedFile()); err != nil {
			return nil, err
		}
		log.SeedLoaded(cfg.GetSeedFile(), len(st.Leads()), len(st.Deals()))
	} else {
		leads, deals := store.DefaultSeed()
		st.Seed(leads, deals)
		log.SeedLoaded("builtin", len(leads), len(deals))
	}

	engine := service.New(st, bus, val, cfg, log)

	return &Module{Store: st, Engine: engine}, nil
}
