// Package reports clasifica seguimientos en cohortes (pendientes, deudores, pagados,
// historial), calcula los conteos del tablero y exporta cohortes.
//
// Las funciones de cohorte son puras: reciben el conjunto ya leído del store y
// devuelven un slice nuevo sin modificar la entrada.
package reports

import (
	"sort"

	"github.com/jhoicas/Cobranza-api/internal/application/dto"
	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
	"github.com/jhoicas/Cobranza-api/internal/domain/followup"
)

// StatusAll en el filtro de pendientes equivale a no filtrar.
const StatusAll = "todos"

// Nombres de cohorte.
const (
	KindPending   = "pending"
	KindDebtors   = "debtors"
	KindPaid      = "paid"
	KindHistory   = "history"
	KindMovements = "movements"
)

// IsDebtor facturado y sin fecha de pago.
func IsDebtor(f *entity.Followup) bool {
	return f.Status == entity.StatusFacturado && !isPaid(f)
}

func isPaid(f *entity.Followup) bool {
	return followup.StateOf(f.Status, f.PaymentDate).IsPaid()
}

// Dashboard cuenta clientes distintos por grupo.
func Dashboard(rows []*entity.FollowupView) dto.DashboardDTO {
	debtors := map[string]struct{}{}
	waiting := map[string]struct{}{}
	contacted := map[string]struct{}{}
	paid := map[string]struct{}{}
	for _, r := range rows {
		f := &r.Followup
		if IsDebtor(f) {
			debtors[f.ClientID] = struct{}{}
		}
		switch f.Status {
		case entity.StatusEnEspera:
			waiting[f.ClientID] = struct{}{}
		case entity.StatusContactado:
			contacted[f.ClientID] = struct{}{}
		}
		if isPaid(f) {
			paid[f.ClientID] = struct{}{}
		}
	}
	return dto.DashboardDTO{
		Debtors:   len(debtors),
		Waiting:   len(waiting),
		Contacted: len(contacted),
		Paid:      len(paid),
	}
}

// Pending seguimientos sin pago, opcionalmente con un estado exacto, del mes más reciente al más antiguo.
func Pending(rows []*entity.FollowupView, status string) []*entity.FollowupView {
	if status == StatusAll {
		status = ""
	}
	out := filter(rows, func(f *entity.Followup) bool {
		return !isPaid(f) && (status == "" || f.Status == status)
	})
	sortByMonth(out, false)
	return out
}

// Debtors seguimientos facturados sin pago, del mes más reciente al más antiguo.
func Debtors(rows []*entity.FollowupView) []*entity.FollowupView {
	out := filter(rows, IsDebtor)
	sortByMonth(out, false)
	return out
}

// Paid seguimientos con fecha de pago, del pago más reciente al más antiguo.
// strict exige además status == "pagado".
func Paid(rows []*entity.FollowupView, strict bool) []*entity.FollowupView {
	out := filter(rows, func(f *entity.Followup) bool {
		return isPaid(f) && (!strict || f.Status == entity.StatusPagado)
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PaymentDate.After(*out[j].PaymentDate)
	})
	return out
}

// History seguimientos de un cliente en orden cronológico.
func History(rows []*entity.FollowupView, clientID string) []*entity.FollowupView {
	out := filter(rows, func(f *entity.Followup) bool { return f.ClientID == clientID })
	sortByMonth(out, true)
	return out
}

// Movements listado general por fecha de registro descendente, con filtro de estado opcional.
func Movements(rows []*entity.FollowupView, status string) []*entity.FollowupView {
	if status == StatusAll {
		status = ""
	}
	out := filter(rows, func(f *entity.Followup) bool { return status == "" || f.Status == status })
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func filter(rows []*entity.FollowupView, keep func(*entity.Followup) bool) []*entity.FollowupView {
	out := make([]*entity.FollowupView, 0, len(rows))
	for _, r := range rows {
		if keep(&r.Followup) {
			out = append(out, r)
		}
	}
	return out
}

func sortByMonth(rows []*entity.FollowupView, asc bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		if asc {
			return rows[i].ServiceMonth < rows[j].ServiceMonth
		}
		return rows[i].ServiceMonth > rows[j].ServiceMonth
	})
}
