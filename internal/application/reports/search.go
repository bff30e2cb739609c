package reports

import (
	"strings"

	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
	"github.com/jhoicas/Cobranza-api/internal/domain/followup"
	"github.com/jhoicas/Cobranza-api/pkg/textnorm"
)

// Search filtra por subcadena sin distinguir mayúsculas ni acentos sobre nombre del
// cliente, folio, mes, estado (valor y etiqueta) y fecha de pago. q vacío no filtra.
func Search(rows []*entity.FollowupView, q string) []*entity.FollowupView {
	q = textnorm.Fold(strings.TrimSpace(q))
	if q == "" {
		return rows
	}
	out := make([]*entity.FollowupView, 0, len(rows))
	for _, r := range rows {
		if matches(r, q) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r *entity.FollowupView, q string) bool {
	res := followup.Resolve(r.Status, r.PaymentDate)
	fields := []string{r.Client.Name, r.InvoiceFolio, r.ServiceMonth, r.Status, res.Label}
	if r.PaymentDate != nil {
		fields = append(fields, r.PaymentDate.Format("2006-01-02"))
	}
	for _, f := range fields {
		if f != "" && strings.Contains(textnorm.Fold(f), q) {
			return true
		}
	}
	return false
}
