package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientRequest entrada para crear o editar un cliente.
// Zone acepta una de las zonas del catálogo o texto libre (opción "Otro").
type ClientRequest struct {
	CustomerNumber string          `json:"customer_number" validate:"required,max=40"`
	Zone           string          `json:"zone" validate:"required,max=100"`
	Name           string          `json:"name" validate:"required,max=200"`
	RentalKey      string          `json:"rental_key" validate:"max=60"`
	ServiceType    string          `json:"service_type" validate:"required,oneof=renta comodato"`
	CutoffDay      int             `json:"cutoff_day" validate:"omitempty,min=1,max=31"`
	CoffeeType     string          `json:"coffee_type" validate:"required_if=ServiceType comodato,max=100"`
	Kilos          decimal.Decimal `json:"kilos"`
	ServiceValue   decimal.Decimal `json:"service_value"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID             string          `json:"id"`
	CustomerNumber string          `json:"customer_number"`
	Zone           string          `json:"zone"`
	Name           string          `json:"name"`
	RentalKey      string          `json:"rental_key"`
	ServiceType    string          `json:"service_type"`
	CutoffDay      int             `json:"cutoff_day"`
	CoffeeType     string          `json:"coffee_type,omitempty"`
	Kilos          decimal.Decimal `json:"kilos"`
	ServiceValue   decimal.Decimal `json:"service_value"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CatalogResponse opciones de formulario para zonas y tipos de café.
type CatalogResponse struct {
	Zones       []string `json:"zones"`
	CoffeeTypes []string `json:"coffee_types"`
}
