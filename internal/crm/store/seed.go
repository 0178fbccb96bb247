package store

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"sales_crm_backend/internal/crm/domain"
)

type seedLead struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Email       string    `yaml:"email"`
	Company     string    `yaml:"company"`
	Phone       string    `yaml:"phone"`
	Status      string    `yaml:"status"`
	Source      string    `yaml:"source"`
	Value       float64   `yaml:"value"`
	LastContact time.Time `yaml:"lastContact"`
	CreatedAt   time.Time `yaml:"createdAt"`
	UpdatedAt   time.Time `yaml:"updatedAt"`
}

type seedDeal struct {
	ID                string    `yaml:"id"`
	Title             string    `yaml:"title"`
	Company           string    `yaml:"company"`
	Contact           string    `yaml:"contact"`
	Amount            float64   `yaml:"amount"`
	Status            string    `yaml:"status"`
	Probability       int       `yaml:"probability"`
	ExpectedCloseDate time.Time `yaml:"expectedCloseDate"`
	CreatedAt         time.Time `yaml:"createdAt"`
	UpdatedAt         time.Time `yaml:"updatedAt"`
}

type seedFile struct {
	Leads []seedLead `yaml:"leads"`
	Deals []seedDeal `yaml:"deals"`
}

// LoadSeedFile replaces the collections with the contents of a YAML
// fixture. Statuses are checked against the known sets; missing timestamps
// default to the current time.
func (s *Store) LoadSeedFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}

	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	now := time.Now()
	leads := make([]domain.Lead, 0, len(f.Leads))
	for _, l := range f.Leads {
		if !domain.IsKnownLeadStatus(l.Status) {
			return fmt.Errorf("seed lead %q: unknown status %q", l.ID, l.Status)
		}
		created := l.CreatedAt
		if created.IsZero() {
			created = now
		}
		updated := l.UpdatedAt
		if updated.Before(created) {
			updated = created
		}
		leads = append(leads, domain.Lead{
			ID:          l.ID,
			Name:        l.Name,
			Email:       l.Email,
			Company:     l.Company,
			Phone:       l.Phone,
			Status:      l.Status,
			Source:      l.Source,
			Value:       l.Value,
			LastContact: l.LastContact,
			CreatedAt:   created,
			UpdatedAt:   updated,
		})
	}

	deals := make([]domain.Deal, 0, len(f.Deals))
	for _, d := range f.Deals {
		if !domain.IsKnownDealStatus(d.Status) {
			return fmt.Errorf("seed deal %q: unknown status %q", d.ID, d.Status)
		}
		if d.Probability < 0 || d.Probability > 100 {
			return fmt.Errorf("seed deal %q: probability %d out of range", d.ID, d.Probability)
		}
		created := d.CreatedAt
		if created.IsZero() {
			created = now
		}
		updated := d.UpdatedAt
		if updated.Before(created) {
			updated = created
		}
		deals = append(deals, domain.Deal{
			ID:                d.ID,
			Title:             d.Title,
			Company:           d.Company,
			Contact:           d.Contact,
			Amount:            d.Amount,
			Status:            d.Status,
			Probability:       d.Probability,
			ExpectedCloseDate: d.ExpectedCloseDate,
			CreatedAt:         created,
			UpdatedAt:         updated,
		})
	}

	s.Seed(leads, deals)
	return nil
}

func date(value string) time.Time {
	t, _ := time.Parse("2006-01-02", value)
	return t
}

// DefaultSeed returns the built-in demo dataset used when no seed file is
// configured.
func DefaultSeed() ([]domain.Lead, []domain.Deal) {
	leads := []domain.Lead{
		{
			ID: "1", Name: "Alice Johnson", Email: "alice@techcorp.com",
			Company: "TechCorp", Phone: "+15551234567",
			Status: domain.LeadStatusQualified, Source: "Website", Value: 25000,
			LastContact: date("2024-01-15"), CreatedAt: date("2024-01-10"), UpdatedAt: date("2024-01-15"),
		},
		{
			ID: "2", Name: "Bob Smith", Email: "bob@innovate.io",
			Company: "Innovate Solutions", Phone: "+15559876543",
			Status: domain.LeadStatusNew, Source: "LinkedIn", Value: 15000,
			LastContact: date("2024-01-14"), CreatedAt: date("2024-01-14"), UpdatedAt: date("2024-01-14"),
		},
		{
			ID: "3", Name: "Carol Davis", Email: "carol@globaltech.com",
			Company: "Global Tech", Phone: "+15554567890",
			Status: domain.LeadStatusContacted, Source: "Referral", Value: 45000,
			LastContact: date("2024-01-13"), CreatedAt: date("2024-01-08"), UpdatedAt: date("2024-01-13"),
		},
		{
			ID: "4", Name: "David Wilson", Email: "david@startup.co",
			Company: "Startup Co", Phone: "+15553210987",
			Status: domain.LeadStatusProposal, Source: "Cold Email", Value: 32000,
			LastContact: date("2024-01-12"), CreatedAt: date("2024-01-05"), UpdatedAt: date("2024-01-12"),
		},
		{
			ID: "5", Name: "Eva Martinez", Email: "eva@enterprise.com",
			Company: "Enterprise Inc", Phone: "+15556543210",
			Status: domain.LeadStatusNegotiation, Source: "Trade Show", Value: 75000,
			LastContact: date("2024-01-11"), CreatedAt: date("2024-01-01"), UpdatedAt: date("2024-01-11"),
		},
	}

	deals := []domain.Deal{
		{
			ID: "1", Title: "Enterprise Software License", Company: "Acme Corp",
			Contact: "John Smith", Amount: 25000,
			Status: domain.DealStatusNegotiation, Probability: 75,
			ExpectedCloseDate: date("2024-02-15"), CreatedAt: date("2024-01-01"), UpdatedAt: date("2024-01-15"),
		},
		{
			ID: "2", Title: "Cloud Migration Project", Company: "TechStart Inc",
			Contact: "Sarah Johnson", Amount: 15000,
			Status: domain.DealStatusProposal, Probability: 60,
			ExpectedCloseDate: date("2024-02-28"), CreatedAt: date("2024-01-05"), UpdatedAt: date("2024-01-14"),
		},
	}

	return leads, deals
}
