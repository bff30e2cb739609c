package followups_test

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Cobranza-api/internal/application/dto"
	"github.com/jhoicas/Cobranza-api/internal/application/followups"
	"github.com/jhoicas/Cobranza-api/internal/domain"
	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
	"github.com/jhoicas/Cobranza-api/internal/domain/repository"
)

const (
	clientA    = "7a1d3c2e-0b8f-4e55-9d1c-3f0b6a2e9c01"
	clientB    = "7a1d3c2e-0b8f-4e55-9d1c-3f0b6a2e9c02"
	followupID = "3c9e1f40-5a7b-4d2e-8f10-6b2a9d4c7e01"
)

var (
	admin    = followups.Actor{UserID: "u-admin", Role: entity.RoleAdmin}
	cobrador = followups.Actor{UserID: "u-cob", Role: entity.RoleCobrador}
)

// memFollowups implementación en memoria de FollowupRepository con contador de escrituras.
type memFollowups struct {
	byID      map[string]*entity.Followup
	writes    int
	failOn    string
	afterFind func()
}

func newMemFollowups() *memFollowups {
	return &memFollowups{byID: map[string]*entity.Followup{}}
}

func (m *memFollowups) fail(op string) error {
	if m.failOn == op {
		return domain.ErrRepository
	}
	return nil
}

func (m *memFollowups) FindByClientAndMonth(_ context.Context, clientID, month string) (*entity.Followup, error) {
	if err := m.fail("find"); err != nil {
		return nil, err
	}
	if m.afterFind != nil {
		defer func() {
			hook := m.afterFind
			m.afterFind = nil
			hook()
		}()
	}
	return m.byKey(clientID, month), nil
}

func (m *memFollowups) byKey(clientID, month string) *entity.Followup {
	for _, f := range m.byID {
		if f.ClientID == clientID && f.ServiceMonth == month {
			c := *f
			return &c
		}
	}
	return nil
}

func (m *memFollowups) GetByID(_ context.Context, id string) (*entity.Followup, error) {
	f, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	c := *f
	return &c, nil
}

func (m *memFollowups) Insert(_ context.Context, f *entity.Followup) error {
	m.writes++
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	c := *f
	m.byID[f.ID] = &c
	return nil
}

func (m *memFollowups) Update(_ context.Context, f *entity.Followup) error {
	m.writes++
	if err := m.fail("update"); err != nil {
		return err
	}
	if _, ok := m.byID[f.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *f
	m.byID[f.ID] = &c
	return nil
}

// Upsert replica el guard de la sentencia SQL: un registro pagado solo se reemplaza al reabrirlo.
func (m *memFollowups) Upsert(ctx context.Context, f *entity.Followup, allowReopen bool) (bool, error) {
	if err := m.fail("upsert"); err != nil {
		return false, err
	}
	existing := m.byKey(f.ClientID, f.ServiceMonth)
	if existing != nil {
		if existing.IsClosed() && !(allowReopen && f.PaymentDate == nil) {
			return false, domain.ErrClosedFollowup
		}
		f.ID = existing.ID
		f.CreatedAt = existing.CreatedAt
		return false, m.Update(ctx, f)
	}
	return true, m.Insert(ctx, f)
}

func (m *memFollowups) Delete(_ context.Context, id string) error {
	m.writes++
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memFollowups) ListByClient(_ context.Context, clientID string) ([]*entity.Followup, error) {
	var out []*entity.Followup
	for _, f := range m.byID {
		if f.ClientID == clientID {
			c := *f
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ServiceMonth > out[j].ServiceMonth })
	return out, nil
}

func (m *memFollowups) ListAll(context.Context, repository.FollowupFilter) ([]*entity.FollowupView, error) {
	return nil, nil
}

type memClients map[string]*entity.Client

func (m memClients) Create(context.Context, *entity.Client) error { return nil }
func (m memClients) GetByID(_ context.Context, id string) (*entity.Client, error) {
	return m[id], nil
}
func (m memClients) GetByCustomerNumber(context.Context, string) (*entity.Client, error) {
	return nil, nil
}
func (m memClients) List(context.Context) ([]*entity.Client, error) { return nil, nil }
func (m memClients) Update(context.Context, *entity.Client) error   { return nil }

func newLifecycle() (*followups.Lifecycle, *memFollowups) {
	repo := newMemFollowups()
	clients := memClients{
		clientA: {ID: clientA, Name: "Cafetería Sol", Zone: "Cancún"},
		clientB: {ID: clientB, Name: "Hotel Maya", Zone: "Tulum"},
	}
	return followups.NewLifecycle(repo, clients, nil, nil), repo
}

func TestSave_MismoClienteYMesEsIdempotente(t *testing.T) {
	uc, repo := newLifecycle()
	ctx := context.Background()

	first, err := uc.Save(ctx, cobrador, dto.FollowupRequest{ClientID: clientA, ServiceMonth: "2024-05", Status: "contactado"})
	require.NoError(t, err)
	assert.True(t, first.Created)

	second, err := uc.Save(ctx, cobrador, dto.FollowupRequest{
		ClientID: clientA, ServiceMonth: "2024-05", Status: "facturado", InvoiceFolio: "F-10",
	})
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.Followup.ID, second.Followup.ID)

	require.Len(t, repo.byID, 1)
	stored := repo.byID[first.Followup.ID]
	assert.Equal(t, "facturado", stored.Status)
	assert.Equal(t, "F-10", stored.InvoiceFolio)
}

func TestSave_MesesDistintosCreanRegistrosDistintos(t *testing.T) {
	uc, repo := newLifecycle()
	ctx := context.Background()

	_, err := uc.Save(ctx, cobrador, dto.FollowupRequest{ClientID: clientA, ServiceMonth: "2024-05"})
	require.NoError(t, err)
	_, err = uc.Save(ctx, cobrador, dto.FollowupRequest{ClientID: clientA, ServiceMonth: "2024-06"})
	require.NoError(t, err)

	assert.Len(t, repo.byID, 2)
}

func TestSave_FechaDePagoFuerzaPagado(t *testing.T) {
	uc, _ := newLifecycle()

	out, err := uc.Save(context.Background(), cobrador, dto.FollowupRequest{
		ClientID: clientA, ServiceMonth: "2024-03", Status: "contactado", PaymentDate: "2024-03-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "pagado", out.Followup.Status)
	assert.Equal(t, "Pagado (Cerrado)", out.Followup.State.Label)
	assert.True(t, out.Followup.Closed)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *out.Followup.PaymentDate)
	assert.Equal(t, "contactado", out.Followup.LastOpenStatus)
}

func TestSave_EstadoVacioUsaContactado(t *testing.T) {
	uc, _ := newLifecycle()
	out, err := uc.Save(context.Background(), cobrador, dto.FollowupRequest{ClientID: clientA, ServiceMonth: "2024-07"})
	require.NoError(t, err)
	assert.Equal(t, "contactado", out.Followup.Status)
}

func TestSave_ValidacionSinEscritura(t *testing.T) {
	uc, repo := newLifecycle()
	ctx := context.Background()

	_, err := uc.Save(ctx, cobrador, dto.FollowupRequest{ServiceMonth: "2024-05"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Save(ctx, cobrador, dto.FollowupRequest{ClientID: clientA, ServiceMonth: "mayo"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Save(ctx, cobrador, dto.FollowupRequest{ClientID: clientA, ServiceMonth: "2024-05", PaymentDate: "05/03/2024"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Save(ctx, cobrador, dto.FollowupRequest{ClientID: uuid.NewString(), ServiceMonth: "2024-05"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	assert.Zero(t, repo.writes)
}

func TestSave_CerradoConPagoEsPolitica(t *testing.T) {
	uc, repo := newLifecycle()
	ctx := context.Background()
	_, err := uc.Save(ctx, cobrador, dto.FollowupRequest{ClientID: clientA, ServiceMonth: "2024-05", PaymentDate: "2024-06-02"})
	require.NoError(t, err)
	writes := repo.writes

	_, err = uc.Save(ctx, cobrador, dto.FollowupRequest{
		ClientID: clientA, ServiceMonth: "2024-05", PaymentDate: "2024-06-03", Observations: "cambio",
	})
	assert.True(t, errors.Is(err, domain.ErrClosedFollowup))
	assert.Equal(t, writes, repo.writes)
}

func TestSave_ErrorDelRepositorioAborta(t *testing.T) {
	uc, repo := newLifecycle()
	repo.failOn = "upsert"

	_, err := uc.Save(context.Background(), cobrador, dto.FollowupRequest{ClientID: clientA, ServiceMonth: "2024-05"})
	assert.True(t, errors.Is(err, domain.ErrRepository))
	assert.Empty(t, repo.byID)
}

func TestUpdate_CerradoRechazaEdicion(t *testing.T) {
	uc, repo := newLifecycle()
	ctx := context.Background()
	saved, err := uc.Save(ctx, cobrador, dto.FollowupRequest{ClientID: clientA, ServiceMonth: "2024-05", PaymentDate: "2024-06-02"})
	require.NoError(t, err)
	writes := repo.writes

	_, err = uc.Update(ctx, admin, saved.Followup.ID, dto.FollowupRequest{
		ClientID: clientA, ServiceMonth: "2024-05", PaymentDate: "2024-06-02", Observations: "otra nota",
	})
	assert.True(t, errors.Is(err, domain.ErrClosedFollowup))
	assert.Equal(t, writes, repo.writes)
}

func TestUpdate_QuitarPagoRevierteAlUltimoEstadoAbierto(t *testing.T) {
	uc, _ := newLifecycle()
	ctx := context.Background()
	saved, err := uc.Save(ctx, cobrador, dto.FollowupRequest{ClientID: clientA, ServiceMonth: "2024-05", Status: "en_espera"})
	require.NoError(t, err)
	_, err = uc.Save(ctx, cobrador, dto.FollowupRequest{ClientID: clientA, ServiceMonth: "2024-05", PaymentDate: "2024-06-02"})
	require.NoError(t, err)

	out, err := uc.Update(ctx, admin, saved.Followup.ID, dto.FollowupRequest{ClientID: clientA, ServiceMonth: "2024-05"})
	require.NoError(t, err)
	assert.Equal(t, "en_espera", out.Status)
	assert.Nil(t, out.PaymentDate)
	assert.False(t, out.Closed)
}

func TestUpdate_QuitarPagoSinHistorialVuelveAFacturado(t *testing.T) {
	uc, repo := newLifecycle()
	closedAt := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	repo.byID[followupID] = &entity.Followup{
		ID: followupID, ClientID: clientA, ServiceMonth: "2024-05", Status: "pagado", PaymentDate: &closedAt,
	}

	out, err := uc.Update(context.Background(), admin, followupID, dto.FollowupRequest{ClientID: clientA, ServiceMonth: "2024-05"})
	require.NoError(t, err)
	assert.Equal(t, "facturado", out.Status)
}

func TestUpdate_CobradorNoPuedeReabrir(t *testing.T) {
	uc, repo := newLifecycle()
	closedAt := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	repo.byID[followupID] = &entity.Followup{
		ID: followupID, ClientID: clientA, ServiceMonth: "2024-05", Status: "pagado", PaymentDate: &closedAt,
	}

	_, err := uc.Update(context.Background(), cobrador, followupID, dto.FollowupRequest{ClientID: clientA, ServiceMonth: "2024-05"})
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	assert.Zero(t, repo.writes)
}

func TestUpdate_MoverAMesOcupadoEsConflicto(t *testing.T) {
	uc, repo := newLifecycle()
	ctx := context.Background()
	may, err := uc.Save(ctx, cobrador, dto.FollowupRequest{ClientID: clientA, ServiceMonth: "2024-05"})
	require.NoError(t, err)
	_, err = uc.Save(ctx, cobrador, dto.FollowupRequest{ClientID: clientA, ServiceMonth: "2024-06"})
	require.NoError(t, err)
	writes := repo.writes

	_, err = uc.Update(ctx, cobrador, may.Followup.ID, dto.FollowupRequest{ClientID: clientA, ServiceMonth: "2024-06"})
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Equal(t, writes, repo.writes)
}

func TestUpdate_NoExiste(t *testing.T) {
	uc, _ := newLifecycle()
	_, err := uc.Update(context.Background(), cobrador, "nope", dto.FollowupRequest{ClientID: clientA, ServiceMonth: "2024-05"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDelete_CerradoEsPolitica(t *testing.T) {
	uc, repo := newLifecycle()
	ctx := context.Background()
	saved, err := uc.Save(ctx, cobrador, dto.FollowupRequest{ClientID: clientB, ServiceMonth: "2024-01", PaymentDate: "2024-02-10"})
	require.NoError(t, err)
	writes := repo.writes

	err = uc.Delete(ctx, admin, saved.Followup.ID)
	assert.True(t, errors.Is(err, domain.ErrClosedFollowup))
	assert.Equal(t, writes, repo.writes)
	assert.Len(t, repo.byID, 1)
}

func TestDelete_AbiertoYNoExistente(t *testing.T) {
	uc, repo := newLifecycle()
	ctx := context.Background()
	saved, err := uc.Save(ctx, cobrador, dto.FollowupRequest{ClientID: clientB, ServiceMonth: "2024-01"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, cobrador, saved.Followup.ID))
	assert.Empty(t, repo.byID)

	err = uc.Delete(ctx, cobrador, saved.Followup.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestReopen_SoloAdminYSoloCerrados(t *testing.T) {
	uc, _ := newLifecycle()
	ctx := context.Background()
	saved, err := uc.Save(ctx, cobrador, dto.FollowupRequest{ClientID: clientA, ServiceMonth: "2024-05", Status: "pedido"})
	require.NoError(t, err)
	id := saved.Followup.ID

	_, err = uc.Reopen(ctx, admin, id)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	_, err = uc.Save(ctx, cobrador, dto.FollowupRequest{ClientID: clientA, ServiceMonth: "2024-05", PaymentDate: "2024-06-01"})
	require.NoError(t, err)

	_, err = uc.Reopen(ctx, cobrador, id)
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	out, err := uc.Reopen(ctx, admin, id)
	require.NoError(t, err)
	assert.Equal(t, "pedido", out.Status)
	assert.Nil(t, out.PaymentDate)
}

func TestListByClient_OrdenDescendente(t *testing.T) {
	uc, _ := newLifecycle()
	ctx := context.Background()
	for _, m := range []string{"2024-02", "2024-04", "2024-03"} {
		_, err := uc.Save(ctx, cobrador, dto.FollowupRequest{ClientID: clientA, ServiceMonth: m})
		require.NoError(t, err)
	}

	list, err := uc.ListByClient(ctx, clientA)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2024-04", list[0].ServiceMonth)
	assert.Equal(t, "2024-02", list[2].ServiceMonth)
}

func TestSave_FalloAlBuscarNoEscribe(t *testing.T) {
	uc, repo := newLifecycle()
	repo.failOn = "find"

	_, err := uc.Save(context.Background(), cobrador, dto.FollowupRequest{ClientID: clientA, ServiceMonth: "2024-05"})
	assert.True(t, errors.Is(err, domain.ErrRepository))
	assert.Zero(t, repo.writes)
	assert.Empty(t, repo.byID)
}

func TestUpdate_FalloDelStoreSePropaga(t *testing.T) {
	uc, repo := newLifecycle()
	ctx := context.Background()
	saved, err := uc.Save(ctx, cobrador, dto.FollowupRequest{ClientID: clientA, ServiceMonth: "2024-05"})
	require.NoError(t, err)
	repo.failOn = "update"

	_, err = uc.Update(ctx, cobrador, saved.Followup.ID, dto.FollowupRequest{ClientID: clientA, ServiceMonth: "2024-05", Status: "pedido"})
	assert.True(t, errors.Is(err, domain.ErrRepository))
	assert.Equal(t, "contactado", repo.byID[saved.Followup.ID].Status)
}

func TestSave_PagadoDespuesDeLeerNoSeSobrescribe(t *testing.T) {
	uc, repo := newLifecycle()
	ctx := context.Background()
	saved, err := uc.Save(ctx, cobrador, dto.FollowupRequest{ClientID: clientA, ServiceMonth: "2024-05", Status: "facturado"})
	require.NoError(t, err)
	id := saved.Followup.ID

	// Otro operador registra el pago entre la lectura y la escritura.
	paidAt := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	repo.afterFind = func() {
		repo.byID[id].PaymentDate = &paidAt
		repo.byID[id].Status = "pagado"
	}

	_, err = uc.Save(ctx, cobrador, dto.FollowupRequest{ClientID: clientA, ServiceMonth: "2024-05", Status: "en_espera"})
	assert.True(t, errors.Is(err, domain.ErrClosedFollowup))
	assert.Equal(t, "pagado", repo.byID[id].Status)
	assert.Equal(t, paidAt, *repo.byID[id].PaymentDate)
}

func TestIDMalFormadoEsNoEncontrado(t *testing.T) {
	uc, repo := newLifecycle()
	ctx := context.Background()

	_, err := uc.Get(ctx, "nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.True(t, errors.Is(uc.Delete(ctx, cobrador, "nope"), domain.ErrNotFound))
	_, err = uc.Reopen(ctx, admin, "nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Zero(t, repo.writes)
}
