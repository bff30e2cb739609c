package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Cobranza-api/internal/application/dto"
	"github.com/jhoicas/Cobranza-api/internal/domain"
	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
	"github.com/jhoicas/Cobranza-api/internal/domain/repository"
	"github.com/jhoicas/Cobranza-api/pkg/logger"
	"github.com/jhoicas/Cobranza-api/pkg/metrics"
)

// Formatos de exportación.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

// PDFRenderer genera el PDF tabular de una cohorte.
type PDFRenderer interface {
	RenderTable(title string, headers []string, rows [][]string) ([]byte, error)
}

// Query parámetros de lectura de una cohorte.
type Query struct {
	Search    string     // subcadena libre (q)
	Status    string     // pendientes y movimientos; "todos" no filtra
	ClientID  string     // requerido para historial
	PaidSince *time.Time // pagados desde esta fecha
	Strict    bool       // pagados: exige status == pagado
}

// ExportFile archivo listo para descarga.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// UseCase lecturas de reportes. No guarda estado entre llamadas: cada consulta vuelve al store.
type UseCase struct {
	followups repository.FollowupRepository
	clients   repository.ClientRepository
	exporter  *Exporter
	pdf       PDFRenderer
	log       *logger.Logger
	metrics   *metrics.Metrics
}

// NewUseCase construye el caso de uso. pdf puede ser nil si no se exporta a PDF.
func NewUseCase(
	followups repository.FollowupRepository,
	clients repository.ClientRepository,
	exporter *Exporter,
	pdf PDFRenderer,
	log *logger.Logger,
	m *metrics.Metrics,
) *UseCase {
	if exporter == nil {
		exporter = NewExporter(ExportOptions{})
	}
	return &UseCase{
		followups: followups,
		clients:   clients,
		exporter:  exporter,
		pdf:       pdf,
		log:       log.Component("reports"),
		metrics:   m,
	}
}

// Dashboard conteos de clientes distintos sobre todos los seguimientos (filtrados por q).
func (uc *UseCase) Dashboard(ctx context.Context, search string) (*dto.DashboardDTO, error) {
	rows, err := uc.followups.ListAll(ctx, repository.FollowupFilter{})
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	out := Dashboard(Search(rows, search))
	return &out, nil
}

// Cohort devuelve la cohorte kind ya ordenada y filtrada por q.
func (uc *UseCase) Cohort(ctx context.Context, kind string, q Query) (*dto.CohortDTO, error) {
	rows, _, err := uc.load(ctx, kind, q)
	if err != nil {
		return nil, err
	}
	items := dto.ToFollowupViewResponses(rows)
	return &dto.CohortDTO{Kind: kind, Query: q.Search, Items: items, Total: len(items)}, nil
}

// Export serializa la cohorte a CSV o PDF.
func (uc *UseCase) Export(ctx context.Context, kind, format string, q Query) (*ExportFile, error) {
	if format == "" {
		format = FormatCSV
	}
	rows, client, err := uc.load(ctx, kind, q)
	if err != nil {
		return nil, err
	}
	clientName := ""
	if client != nil {
		clientName = client.Name
	}
	cols := columnsFor(kind)

	var file *ExportFile
	switch format {
	case FormatCSV:
		text, err := uc.exporter.ToDelimitedText(rows, cols)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", kind, err)
		}
		file = &ExportFile{
			Name:        FileName(kind, clientName, FormatCSV),
			ContentType: "text/csv; charset=utf-8",
			Data:        []byte(text),
		}
	case FormatPDF:
		if uc.pdf == nil {
			return nil, fmt.Errorf("%w: exportación PDF no disponible", domain.ErrInvalidInput)
		}
		headers, body := uc.exporter.Table(rows, cols)
		data, err := uc.pdf.RenderTable(title(kind, clientName), headers, body)
		if err != nil {
			return nil, fmt.Errorf("export %s pdf: %w", kind, err)
		}
		file = &ExportFile{
			Name:        FileName(kind, clientName, FormatPDF),
			ContentType: "application/pdf",
			Data:        data,
		}
	default:
		return nil, fmt.Errorf("%w: formato %q no soportado", domain.ErrInvalidInput, format)
	}

	uc.metrics.RecordExport(kind, format)
	uc.log.Info().Str("kind", kind).Str("format", format).Int("rows", len(rows)).Msg("reporte exportado")
	return file, nil
}

// load consulta el store con el filtro más estrecho posible y aplica la cohorte y la búsqueda.
func (uc *UseCase) load(ctx context.Context, kind string, q Query) ([]*entity.FollowupView, *entity.Client, error) {
	unpaid, paid := false, true
	var (
		filter repository.FollowupFilter
		cohort func([]*entity.FollowupView) []*entity.FollowupView
		client *entity.Client
	)
	status := q.Status
	if status == StatusAll {
		status = ""
	}

	switch kind {
	case KindPending:
		filter = repository.FollowupFilter{Paid: &unpaid, Status: status}
		cohort = func(r []*entity.FollowupView) []*entity.FollowupView { return Pending(r, status) }
	case KindDebtors:
		filter = repository.FollowupFilter{Paid: &unpaid, Status: entity.StatusFacturado}
		cohort = Debtors
	case KindPaid:
		filter = repository.FollowupFilter{Paid: &paid, PaidFrom: q.PaidSince, OrderBy: repository.OrderByPaymentDate}
		if q.Strict {
			filter.Status = entity.StatusPagado
		}
		cohort = func(r []*entity.FollowupView) []*entity.FollowupView { return Paid(r, q.Strict) }
	case KindHistory:
		if q.ClientID == "" {
			return nil, nil, fmt.Errorf("%w: client_id es requerido", domain.ErrInvalidInput)
		}
		c, err := uc.clients.GetByID(ctx, q.ClientID)
		if err != nil {
			return nil, nil, err
		}
		if c == nil {
			return nil, nil, domain.ErrNotFound
		}
		client = c
		filter = repository.FollowupFilter{ClientID: c.ID, Ascending: true}
		cohort = func(r []*entity.FollowupView) []*entity.FollowupView { return History(r, c.ID) }
	case KindMovements:
		filter = repository.FollowupFilter{Status: status, OrderBy: repository.OrderByCreatedAt}
		cohort = func(r []*entity.FollowupView) []*entity.FollowupView { return Movements(r, status) }
	default:
		return nil, nil, fmt.Errorf("%w: reporte %q desconocido", domain.ErrInvalidInput, kind)
	}

	rows, err := uc.followups.ListAll(ctx, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("reporte %s: %w", kind, err)
	}
	return Search(cohort(rows), q.Search), client, nil
}

func title(kind, clientName string) string {
	switch kind {
	case KindDebtors:
		return "Deudores"
	case KindPaid:
		return "Pagados"
	case KindPending:
		return "Movimientos pendientes"
	case KindHistory:
		return "Historial de " + clientName
	default:
		return "Movimientos"
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
