package followup

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Cobranza-api/internal/domain"
	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
)

const (
	monthLayout = "2006-01"
	dateLayout  = "2006-01-02"
)

// DefaultStatus estado inicial de un seguimiento nuevo sin estado explícito.
const DefaultStatus = entity.StatusContactado

// ParseMonth valida un mes de servicio YYYY-MM y lo devuelve normalizado.
func ParseMonth(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: service_month es requerido", domain.ErrInvalidInput)
	}
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: service_month debe tener formato YYYY-MM", domain.ErrInvalidInput)
	}
	return t.Format(monthLayout), nil
}

// ParseDate normaliza una fecha de formulario: vacía → nil, YYYY-MM-DD → medianoche UTC,
// RFC3339 → instante en UTC.
func ParseDate(field, s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s debe ser YYYY-MM-DD o RFC3339", domain.ErrInvalidInput, field)
	}
	t = t.UTC()
	return &t, nil
}

// Transition es el resultado de aplicar la regla automática de estado.
type Transition struct {
	Status         string
	LastOpenStatus string
	Reopened       bool
}

// NextStatus aplica la regla automática de estado sobre un envío.
//
//   - Con fecha de pago, el estado es siempre "pagado".
//   - Si se borra la fecha de pago de un seguimiento cerrado y no se pidió otro estado
//     abierto, vuelve al último estado no pagado conocido o a "facturado".
//
// previous es el registro actual (nil si es nuevo).
func NextStatus(requested string, paymentDate *time.Time, previous *entity.Followup) Transition {
	lastOpen := ""
	if previous != nil {
		lastOpen = lastOpenOf(previous)
	}
	if isOpenStatus(requested) {
		lastOpen = requested
	}

	if paymentDate != nil {
		return Transition{Status: entity.StatusPagado, LastOpenStatus: lastOpen}
	}

	if previous.IsClosed() && !isOpenStatus(requested) {
		status := lastOpen
		if status == "" {
			status = DefaultReopenStatus
		}
		return Transition{Status: status, LastOpenStatus: status, Reopened: true}
	}

	status := requested
	if status == "" {
		status = DefaultStatus
	}
	return Transition{Status: status, LastOpenStatus: lastOpen, Reopened: previous.IsClosed()}
}

func lastOpenOf(f *entity.Followup) string {
	if isOpenStatus(f.Status) {
		return f.Status
	}
	return f.LastOpenStatus
}

func isOpenStatus(s string) bool {
	return s != "" && s != entity.StatusPagado && entity.IsValidStatus(s)
}
