package reports_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cobranza-api/internal/application/reports"
	"github.com/jhoicas/Cobranza-api/internal/domain"
	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
	"github.com/jhoicas/Cobranza-api/internal/domain/repository"
)

// stubFollowups devuelve siempre las mismas filas y recuerda el último filtro.
type stubFollowups struct {
	rows []*entity.FollowupView
	last repository.FollowupFilter
	err  error
}

func (s *stubFollowups) FindByClientAndMonth(context.Context, string, string) (*entity.Followup, error) {
	return nil, nil
}
func (s *stubFollowups) GetByID(context.Context, string) (*entity.Followup, error) { return nil, nil }
func (s *stubFollowups) Insert(context.Context, *entity.Followup) error            { return nil }
func (s *stubFollowups) Update(context.Context, *entity.Followup) error            { return nil }
func (s *stubFollowups) Upsert(context.Context, *entity.Followup, bool) (bool, error) {
	return false, nil
}
func (s *stubFollowups) Delete(context.Context, string) error { return nil }
func (s *stubFollowups) ListByClient(context.Context, string) ([]*entity.Followup, error) {
	return nil, nil
}
func (s *stubFollowups) ListAll(_ context.Context, f repository.FollowupFilter) ([]*entity.FollowupView, error) {
	s.last = f
	return s.rows, s.err
}

type stubClients map[string]*entity.Client

func (s stubClients) Create(context.Context, *entity.Client) error { return nil }
func (s stubClients) GetByID(_ context.Context, id string) (*entity.Client, error) {
	return s[id], nil
}
func (s stubClients) GetByCustomerNumber(context.Context, string) (*entity.Client, error) {
	return nil, nil
}
func (s stubClients) List(context.Context) ([]*entity.Client, error) { return nil, nil }
func (s stubClients) Update(context.Context, *entity.Client) error   { return nil }

type stubPDF struct{ title string }

func (p *stubPDF) RenderTable(title string, _ []string, _ [][]string) ([]byte, error) {
	p.title = title
	return []byte("%PDF-1.4"), nil
}

func newReports(rows []*entity.FollowupView) (*reports.UseCase, *stubFollowups, *stubPDF) {
	repo := &stubFollowups{rows: rows}
	pdf := &stubPDF{}
	clients := stubClients{"c1": {ID: "c1", Name: "Cafetería Sol"}}
	return reports.NewUseCase(repo, clients, nil, pdf, nil, nil), repo, pdf
}

func TestUseCase_DashboardConBusqueda(t *testing.T) {
	uc, _, _ := newReports(sample())
	d, err := uc.Dashboard(context.Background(), "hotel")
	require.NoError(t, err)
	assert.Equal(t, 1, d.Waiting)
	assert.Equal(t, 1, d.Contacted)
	assert.Zero(t, d.Debtors)
}

func TestUseCase_DeudoresFiltraEnElStore(t *testing.T) {
	uc, repo, _ := newReports(sample())
	out, err := uc.Cohort(context.Background(), reports.KindDebtors, reports.Query{})
	require.NoError(t, err)

	assert.Equal(t, 2, out.Total)
	assert.Equal(t, "facturado", repo.last.Status)
	require.NotNil(t, repo.last.Paid)
	assert.False(t, *repo.last.Paid)
	assert.Equal(t, "Cafetería Sol", out.Items[0].Client.Name)
}

func TestUseCase_PagadosDesde(t *testing.T) {
	uc, repo, _ := newReports(sample())
	since := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := uc.Cohort(context.Background(), reports.KindPaid, reports.Query{PaidSince: &since})
	require.NoError(t, err)
	assert.Equal(t, &since, repo.last.PaidFrom)
	assert.Equal(t, repository.OrderByPaymentDate, repo.last.OrderBy)
}

func TestUseCase_HistorialRequiereCliente(t *testing.T) {
	uc, _, _ := newReports(sample())
	ctx := context.Background()

	_, err := uc.Cohort(ctx, reports.KindHistory, reports.Query{})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Cohort(ctx, reports.KindHistory, reports.Query{ClientID: "c9"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	out, err := uc.Cohort(ctx, reports.KindHistory, reports.Query{ClientID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, "2024-02", out.Items[0].ServiceMonth)
}

func TestUseCase_CohorteDesconocida(t *testing.T) {
	uc, _, _ := newReports(sample())
	_, err := uc.Cohort(context.Background(), "morosos", reports.Query{})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestUseCase_ErrorDelRepositorio(t *testing.T) {
	uc, repo, _ := newReports(nil)
	repo.err = domain.ErrRepository
	_, err := uc.Cohort(context.Background(), reports.KindPending, reports.Query{})
	assert.True(t, errors.Is(err, domain.ErrRepository))
}

func TestUseCase_ExportCSVYPDF(t *testing.T) {
	uc, _, pdf := newReports(sample())
	ctx := context.Background()

	file, err := uc.Export(ctx, reports.KindHistory, reports.FormatCSV, reports.Query{ClientID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, "historial_cafeteria_sol.csv", file.Name)
	assert.True(t, strings.HasPrefix(string(file.Data), "Mes,Estado,Fecha Factura,Folio,Fecha Pago,Observaciones\n"))

	file, err = uc.Export(ctx, reports.KindDebtors, reports.FormatPDF, reports.Query{})
	require.NoError(t, err)
	assert.Equal(t, "debtors.pdf", file.Name)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.Equal(t, "Deudores", pdf.title)

	_, err = uc.Export(ctx, reports.KindDebtors, "xlsx", reports.Query{})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
