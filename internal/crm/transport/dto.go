// Package transport defines the request and response contracts of the CRM
// core's in-process API. The presentation layer only ever sees these types.
package transport

import "time"

// Request DTOs

type CreateLeadRequest struct {
	Name        string    `json:"name" validate:"required,min=1,max=200"`
	Email       string    `json:"email,omitempty" validate:"omitempty,email"`
	Company     string    `json:"company" validate:"required,min=1,max=200"`
	Phone       string    `json:"phone,omitempty" validate:"omitempty,min=5,max=20"`
	Status      string    `json:"status,omitempty" validate:"omitempty,leadstatus"`
	Source      string    `json:"source,omitempty" validate:"omitempty,max=100"`
	Value       float64   `json:"value" validate:"gte=0"`
	LastContact time.Time `json:"lastContact,omitempty"`
}

// UpdateLeadRequest is a partial patch. Nil fields are left untouched.
// There are deliberately no id or createdAt fields: those are immutable.
type UpdateLeadRequest struct {
	Name        *string      `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Email       *string      `json:"email,omitempty" validate:"omitempty,email"`
	Company     *string      `json:"company,omitempty" validate:"omitempty,min=1,max=200"`
	Phone       *string      `json:"phone,omitempty" validate:"omitempty,min=5,max=20"`
	Status      *string      `json:"status,omitempty" validate:"omitempty,leadstatus"`
	Source      *string      `json:"source,omitempty" validate:"omitempty,max=100"`
	Value       *float64     `json:"value,omitempty" validate:"omitempty,gte=0"`
	LastContact OptionalTime `json:"lastContact,omitempty" validate:"-"`
}

type CreateDealRequest struct {
	Title             string    `json:"title" validate:"required,min=1,max=200"`
	Company           string    `json:"company" validate:"required,min=1,max=200"`
	Contact           string    `json:"contact,omitempty" validate:"omitempty,max=200"`
	Amount            float64   `json:"amount" validate:"gte=0"`
	Status            string    `json:"status,omitempty" validate:"omitempty,dealstatus"`
	Probability       int       `json:"probability" validate:"gte=0,lte=100"`
	ExpectedCloseDate time.Time `json:"expectedCloseDate,omitempty"`
}

// Response DTOs

type LeadResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Company     string    `json:"company"`
	Phone       string    `json:"phone"`
	Status      string    `json:"status"`
	Source      string    `json:"source"`
	Value       float64   `json:"value"`
	LastContact time.Time `json:"lastContact"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type DealResponse struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Company           string    `json:"company"`
	Contact           string    `json:"contact"`
	Amount            float64   `json:"amount"`
	Status            string    `json:"status"`
	Probability       int       `json:"probability"`
	ExpectedCloseDate time.Time `json:"expectedCloseDate"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
