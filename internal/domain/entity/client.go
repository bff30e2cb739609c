package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de servicio de un cliente.
const (
	ServiceTypeRenta    = "renta"
	ServiceTypeComodato = "comodato"
)

// Client representa un cliente con máquina de café en renta o comodato.
// CoffeeType es obligatorio solo para comodato.
type Client struct {
	ID             string
	CustomerNumber string
	Zone           string
	Name           string
	RentalKey      string
	ServiceType    string // renta | comodato
	CutoffDay      int    // 1-31
	CoffeeType     string
	Kilos          decimal.Decimal
	ServiceValue   decimal.Decimal // valor del servicio con café
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RequiresCoffeeType indica si el tipo de servicio exige tipo de café.
func (c *Client) RequiresCoffeeType() bool {
	return c.ServiceType == ServiceTypeComodato
}
