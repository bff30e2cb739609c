package entity

import "time"

// Estados de un seguimiento de cobranza.
const (
	StatusContactado = "contactado"
	StatusPedido     = "pedido"
	StatusEnEspera   = "en_espera"
	StatusFacturado  = "facturado"
	StatusPagado     = "pagado"
)

// ValidStatuses lista los estados aceptados en el orden del flujo de cobranza.
var ValidStatuses = []string{StatusContactado, StatusPedido, StatusEnEspera, StatusFacturado, StatusPagado}

// IsValidStatus informa si s es uno de los cinco estados conocidos.
func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Followup es el registro mensual de cobranza de un cliente.
// La llave natural es (ClientID, ServiceMonth).
type Followup struct {
	ID                  string
	ClientID            string
	ServiceMonth        string // YYYY-MM
	Status              string
	BillingDate         *time.Time
	InvoiceFolio        string
	PaymentDate         *time.Time
	RegisteredInProgram bool
	Observations        string
	// LastOpenStatus es el último estado no pagado conocido; se usa al reabrir.
	LastOpenStatus string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsClosed indica si el seguimiento ya tiene fecha de pago (cerrado e inmutable).
func (f *Followup) IsClosed() bool {
	return f != nil && f.PaymentDate != nil
}

// ClientSummary datos del cliente adjuntos a cada seguimiento en los listados.
type ClientSummary struct {
	Name           string
	CustomerNumber string
	Zone           string
}

// FollowupView seguimiento unido con los datos de su cliente (lecturas y reportes).
type FollowupView struct {
	Followup
	Client ClientSummary
}
