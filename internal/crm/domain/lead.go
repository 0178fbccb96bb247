package domain

import "time"

// Lead is an unconverted sales prospect. A lead leaves the system either
// through an explicit delete or by conversion into a Deal.
type Lead struct {
	ID          string
	Name        string
	Email       string
	Company     string
	Phone       string
	Status      string
	Source      string
	Value       float64
	LastContact time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
