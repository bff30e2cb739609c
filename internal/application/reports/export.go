package reports

import (
	"encoding/csv"
	"strings"
	"unicode"

	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
	"github.com/jhoicas/Cobranza-api/internal/domain/followup"
	"github.com/jhoicas/Cobranza-api/pkg/textnorm"
)

// DefaultPlaceholder valor de un campo ausente en la exportación.
const DefaultPlaceholder = "N/A"

// Column una columna exportable: encabezado y extractor. Un valor vacío se reemplaza por el placeholder.
type Column struct {
	Header string
	Value  func(*entity.FollowupView) string
}

var (
	colClient   = Column{"Cliente", func(v *entity.FollowupView) string { return v.Client.Name }}
	colNumber   = Column{"Número", func(v *entity.FollowupView) string { return v.Client.CustomerNumber }}
	colZone     = Column{"Zona", func(v *entity.FollowupView) string { return v.Client.Zone }}
	colMonth    = Column{"Mes", func(v *entity.FollowupView) string { return v.ServiceMonth }}
	colFolio    = Column{"Folio", func(v *entity.FollowupView) string { return v.InvoiceFolio }}
	colObs      = Column{"Observaciones", func(v *entity.FollowupView) string { return v.Observations }}
	colPaidAt   = Column{"Fecha Pago", func(v *entity.FollowupView) string { return formatDate(v.PaymentDate) }}
	colBilledAt = Column{"Fecha Factura", func(v *entity.FollowupView) string { return formatDate(v.BillingDate) }}
	colStatus   = Column{"Estado", func(v *entity.FollowupView) string {
		return followup.Resolve(v.Status, v.PaymentDate).Label
	}}
)

// Columnas por cohorte.
var (
	DebtorColumns   = []Column{colClient, colMonth, colFolio, colObs}
	PaidColumns     = []Column{colClient, colMonth, colFolio, colPaidAt}
	PendingColumns  = []Column{colClient, colNumber, colZone, colMonth, colStatus, colFolio, colObs}
	HistoryColumns  = []Column{colMonth, colStatus, colBilledAt, colFolio, colPaidAt, colObs}
	MovementColumns = []Column{colClient, colZone, colMonth, colStatus, colFolio, colPaidAt}
)

// ExportOptions formato del texto delimitado.
// Legacy une los campos sin comillas: un valor que contenga el delimitador corrompe la fila.
type ExportOptions struct {
	Delimiter   rune
	Placeholder string
	Legacy      bool
}

// Exporter serializa cohortes a texto delimitado.
type Exporter struct {
	opts ExportOptions
}

// NewExporter aplica "," y "N/A" cuando no se configuran.
func NewExporter(opts ExportOptions) *Exporter {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	if opts.Placeholder == "" {
		opts.Placeholder = DefaultPlaceholder
	}
	return &Exporter{opts: opts}
}

// Table devuelve encabezados y filas con el placeholder ya aplicado.
func (e *Exporter) Table(rows []*entity.FollowupView, cols []Column) ([]string, [][]string) {
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Header
	}
	body := make([][]string, 0, len(rows))
	for _, r := range rows {
		line := make([]string, len(cols))
		for i, c := range cols {
			v := strings.TrimSpace(c.Value(r))
			if v == "" {
				v = e.opts.Placeholder
			}
			line[i] = v
		}
		body = append(body, line)
	}
	return headers, body
}

// ToDelimitedText línea de encabezado más una línea por fila.
func (e *Exporter) ToDelimitedText(rows []*entity.FollowupView, cols []Column) (string, error) {
	headers, body := e.Table(rows, cols)
	if e.opts.Legacy {
		return e.legacy(headers, body), nil
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Comma = e.opts.Delimiter
	if err := w.Write(headers); err != nil {
		return "", err
	}
	if err := w.WriteAll(body); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (e *Exporter) legacy(headers []string, body [][]string) string {
	sep := string(e.opts.Delimiter)
	lines := make([]string, 0, len(body)+1)
	lines = append(lines, strings.Join(headers, sep))
	for _, line := range body {
		lines = append(lines, strings.Join(line, sep))
	}
	return strings.Join(lines, "\n")
}

// FileName nombre de descarga por cohorte; para historial incluye el cliente.
func FileName(kind, clientName, ext string) string {
	switch kind {
	case KindDebtors:
		return "debtors." + ext
	case KindPaid:
		return "pagados." + ext
	case KindPending:
		return "movimientos_pendientes." + ext
	case KindHistory:
		return "historial_" + slug(clientName) + "." + ext
	default:
		return "movimientos." + ext
	}
}

// slug deja letras y dígitos sin acentos y cambia lo demás por "_".
func slug(s string) string {
	s = textnorm.Fold(strings.TrimSpace(s))
	var sb strings.Builder
	lastUnderscore := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore && sb.Len() > 0 {
			sb.WriteByte('_')
			lastUnderscore = true
		}
	}
	out := strings.TrimSuffix(sb.String(), "_")
	if out == "" {
		return "cliente"
	}
	return out
}

func columnsFor(kind string) []Column {
	switch kind {
	case KindDebtors:
		return DebtorColumns
	case KindPaid:
		return PaidColumns
	case KindPending:
		return PendingColumns
	case KindHistory:
		return HistoryColumns
	default:
		return MovementColumns
	}
}
