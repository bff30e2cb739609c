package dto

import (
	"time"

	"github.com/jhoicas/Cobranza-api/internal/domain/followup"
)

// FollowupRequest entrada de alta o edición de un seguimiento.
// Las fechas llegan como YYYY-MM-DD o RFC3339; vacías se guardan como null.
type FollowupRequest struct {
	ClientID            string `json:"client_id" validate:"required,uuid"`
	ServiceMonth        string `json:"service_month" validate:"required"`
	Status              string `json:"status" validate:"omitempty,oneof=contactado pedido en_espera facturado pagado"`
	BillingDate         string `json:"billing_date"`
	InvoiceFolio        string `json:"invoice_folio" validate:"max=60"`
	PaymentDate         string `json:"payment_date"`
	RegisteredInProgram bool   `json:"registered_in_program"`
	Observations        string `json:"observations" validate:"max=2000"`
}

// ClientSummaryResponse datos del cliente adjuntos a un seguimiento.
type ClientSummaryResponse struct {
	Name           string `json:"name"`
	CustomerNumber string `json:"customer_number"`
	Zone           string `json:"zone"`
}

// FollowupResponse salida de un seguimiento con su estado efectivo.
type FollowupResponse struct {
	ID                  string                 `json:"id"`
	ClientID            string                 `json:"client_id"`
	ServiceMonth        string                 `json:"service_month"`
	Status              string                 `json:"status"`
	State               followup.Resolution    `json:"state"`
	Closed              bool                   `json:"closed"`
	BillingDate         *time.Time             `json:"billing_date"`
	InvoiceFolio        string                 `json:"invoice_folio"`
	PaymentDate         *time.Time             `json:"payment_date"`
	RegisteredInProgram bool                   `json:"registered_in_program"`
	Observations        string                 `json:"observations"`
	LastOpenStatus      string                 `json:"last_open_status,omitempty"`
	Client              *ClientSummaryResponse `json:"client,omitempty"`
	CreatedAt           time.Time              `json:"created_at"`
	UpdatedAt           time.Time              `json:"updated_at"`
}

// SaveFollowupResponse resultado del upsert: Created indica si se insertó un registro nuevo.
type SaveFollowupResponse struct {
	Followup FollowupResponse `json:"followup"`
	Created  bool             `json:"created"`
}
