package dto

// DashboardDTO conteos del tablero. Cada contador cuenta clientes distintos, no seguimientos.
type DashboardDTO struct {
	Debtors   int `json:"debtors"`   // facturado sin pago
	Waiting   int `json:"waiting"`   // en_espera
	Contacted int `json:"contacted"` // contactado
	Paid      int `json:"paid"`      // con fecha de pago
}

// CohortDTO un reporte (pendientes, deudores, pagados, historial) ya filtrado.
type CohortDTO struct {
	Kind  string             `json:"kind"`
	Query string             `json:"query,omitempty"`
	Items []FollowupResponse `json:"items"`
	Total int                `json:"total"`
}
