package service

import (
	"sales_crm_backend/internal/crm/domain"
	"sales_crm_backend/internal/crm/transport"
)

func toLeadResponse(l domain.Lead) transport.LeadResponse {
	return transport.LeadResponse{
		ID:          l.ID,
		Name:        l.Name,
		Email:       l.Email,
		Company:     l.Company,
		Phone:       l.Phone,
		Status:      l.Status,
		Source:      l.Source,
		Value:       l.Value,
		LastContact: l.LastContact,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func toDealResponse(d domain.Deal) transport.DealResponse {
	return transport.DealResponse{
		ID:                d.ID,
		Title:             d.Title,
		Company:           d.Company,
		Contact:           d.Contact,
		Amount:            d.Amount,
		Status:            d.Status,
		Probability:       d.Probability,
		ExpectedCloseDate: d.ExpectedCloseDate,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}
