package dto

import (
	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
	"github.com/jhoicas/Cobranza-api/internal/domain/followup"
)

// ToFollowupResponse proyecta un seguimiento con su estado efectivo.
func ToFollowupResponse(f *entity.Followup) FollowupResponse {
	return FollowupResponse{
		ID:                  f.ID,
		ClientID:            f.ClientID,
		ServiceMonth:        f.ServiceMonth,
		Status:              f.Status,
		State:               followup.Resolve(f.Status, f.PaymentDate),
		Closed:              f.IsClosed(),
		BillingDate:         f.BillingDate,
		InvoiceFolio:        f.InvoiceFolio,
		PaymentDate:         f.PaymentDate,
		RegisteredInProgram: f.RegisteredInProgram,
		Observations:        f.Observations,
		LastOpenStatus:      f.LastOpenStatus,
		CreatedAt:           f.CreatedAt,
		UpdatedAt:           f.UpdatedAt,
	}
}

// ToFollowupViewResponse igual que ToFollowupResponse, con los datos del cliente.
func ToFollowupViewResponse(v *entity.FollowupView) FollowupResponse {
	out := ToFollowupResponse(&v.Followup)
	out.Client = &ClientSummaryResponse{
		Name:           v.Client.Name,
		CustomerNumber: v.Client.CustomerNumber,
		Zone:           v.Client.Zone,
	}
	return out
}

// ToFollowupViewResponses proyecta un listado; nunca devuelve nil.
func ToFollowupViewResponses(list []*entity.FollowupView) []FollowupResponse {
	out := make([]FollowupResponse, 0, len(list))
	for _, v := range list {
		out = append(out, ToFollowupViewResponse(v))
	}
	return out
}

// ToClientResponse proyecta un cliente.
func ToClientResponse(c *entity.Client) ClientResponse {
	return ClientResponse{
		ID:             c.ID,
		CustomerNumber: c.CustomerNumber,
		Zone:           c.Zone,
		Name:           c.Name,
		RentalKey:      c.RentalKey,
		ServiceType:    c.ServiceType,
		CutoffDay:      c.CutoffDay,
		CoffeeType:     c.CoffeeType,
		Kilos:          c.Kilos,
		ServiceValue:   c.ServiceValue,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
