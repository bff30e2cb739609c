// Package followup contiene las reglas puras del ciclo de vida de un seguimiento
// de cobranza: estado efectivo, etiquetas, meses de servicio y fechas.
//
// El estado se modela como una variante: o el seguimiento está abierto con uno
// de los estados del flujo, o está pagado en una fecha. La fecha de pago manda
// sobre el campo status almacenado.
package followup

import (
	"time"

	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
)

// Etiquetas visibles por estado.
const (
	LabelPaidClosed = "Pagado (Cerrado)"
	LabelContactado = "Contactado"
	LabelPedido     = "Pedido"
	LabelEnEspera   = "En Espera"
	LabelFacturado  = "Facturado"
	LabelPagado     = "Pagado"
)

// Grupos de color. Facturado, pagado y cerrado comparten ColorSettled.
const (
	ColorSettled   = "green"
	ColorContacted = "yellow"
	ColorOrdered   = "blue"
	ColorWaiting   = "orange"
	ColorNeutral   = "gray"
)

// DefaultReopenStatus es el estado al que vuelve un seguimiento reabierto sin historial.
const DefaultReopenStatus = entity.StatusFacturado

// State es el estado efectivo de un seguimiento: Open(status) o Paid(fecha).
type State struct {
	status string
	paidAt time.Time
	paid   bool
}

// Open construye el estado de un seguimiento sin pago.
func Open(status string) State {
	return State{status: status}
}

// Paid construye el estado cerrado con su fecha de pago.
func Paid(at time.Time) State {
	return State{status: entity.StatusPagado, paidAt: at, paid: true}
}

// StateOf proyecta los dos campos almacenados (status, payment_date) a la variante.
func StateOf(status string, paymentDate *time.Time) State {
	if paymentDate != nil {
		return Paid(*paymentDate)
	}
	return Open(status)
}

// IsPaid indica si la variante es Paid.
func (s State) IsPaid() bool { return s.paid }

// PaidAt devuelve la fecha de pago y si existe.
func (s State) PaidAt() (time.Time, bool) { return s.paidAt, s.paid }

// Status devuelve el estado efectivo ("pagado" para la variante Paid).
func (s State) Status() string { return s.status }

// Resolution es la proyección visible de un estado.
type Resolution struct {
	Status string `json:"status"`
	Label  string `json:"label"`
	Color  string `json:"color"`
}

// Resolve proyecta la variante a estado efectivo, etiqueta y grupo de color.
func (s State) Resolve() Resolution {
	if s.paid {
		return Resolution{Status: entity.StatusPagado, Label: LabelPaidClosed, Color: ColorSettled}
	}
	return Resolution{Status: s.status, Label: labelFor(s.status), Color: colorFor(s.status)}
}

// Resolve es el atajo sobre los campos almacenados de un seguimiento.
func Resolve(status string, paymentDate *time.Time) Resolution {
	return StateOf(status, paymentDate).Resolve()
}

// Settled indica si el estado cae en el grupo visual "saldado" (facturado, pagado o cerrado).
func Settled(status string, paymentDate *time.Time) bool {
	return Resolve(status, paymentDate).Color == ColorSettled
}

func labelFor(status string) string {
	switch status {
	case entity.StatusContactado:
		return LabelContactado
	case entity.StatusPedido:
		return LabelPedido
	case entity.StatusEnEspera:
		return LabelEnEspera
	case entity.StatusFacturado:
		return LabelFacturado
	case entity.StatusPagado:
		return LabelPagado
	default:
		return status
	}
}

func colorFor(status string) string {
	switch status {
	case entity.StatusContactado:
		return ColorContacted
	case entity.StatusPedido:
		return ColorOrdered
	case entity.StatusEnEspera:
		return ColorWaiting
	case entity.StatusFacturado, entity.StatusPagado:
		return ColorSettled
	default:
		return ColorNeutral
	}
}
