package clients

import (
	"strings"

	"github.com/jhoicas/Cobranza-api/pkg/textnorm"
)

// DefaultCutoffDay día de corte cuando no se captura.
const DefaultCutoffDay = 15

// Zones zonas de servicio del catálogo. Se acepta además texto libre (opción "Otro").
var Zones = []string{"Cancún", "Tulum", "Playa del Carmen", "Cozumel", "Mérida"}

// CoffeeTypes tipos de café que se entregan en comodato.
var CoffeeTypes = []string{
	"Gusto Clásico", "Intenso", "Kaawa Oro", "Chiapas", "Veracruz", "Daramy",
	"Nayarit", "Dolce Aroma", "Pluma", "Descafeinado", "Mezcla",
}

// NormalizeZone devuelve la zona del catálogo equivalente o el texto libre recortado.
func NormalizeZone(s string) string {
	if z, ok := textnorm.Match(s, Zones); ok {
		return z
	}
	return strings.TrimSpace(s)
}

// NormalizeCoffeeType devuelve el nombre de catálogo y si el valor pertenece a él.
func NormalizeCoffeeType(s string) (string, bool) {
	return textnorm.Match(s, CoffeeTypes)
}
