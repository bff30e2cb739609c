package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Cobranza-api/internal/domain"
	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
	"github.com/jhoicas/Cobranza-api/internal/domain/repository"
	"github.com/jhoicas/Cobranza-api/pkg/metrics"
)

var _ repository.FollowupRepository = (*FollowupRepo)(nil)

const followupColumns = `f.id, f.client_id, f.service_month, f.status, f.billing_date, f.invoice_folio,
		       f.payment_date, f.registered_in_program, f.observations, f.last_open_status,
		       f.created_at, f.updated_at`

// FollowupRepo implementación de FollowupRepository sobre la tabla cobranza_followups.
type FollowupRepo struct {
	q       Querier
	metrics *metrics.Metrics
}

// NewFollowupRepository construye el adaptador. Pasar pool o tx (Querier); m puede ser nil.
func NewFollowupRepository(q Querier, m *metrics.Metrics) *FollowupRepo {
	return &FollowupRepo{q: q, metrics: m}
}

// FindByClientAndMonth busca por la llave natural (client_id, service_month).
func (r *FollowupRepo) FindByClientAndMonth(ctx context.Context, clientID, month string) (*entity.Followup, error) {
	if !validID(clientID) {
		return nil, nil
	}
	defer r.metrics.TrackDBOperation("followup_find_by_key")(time.Now())
	query := `SELECT ` + followupColumns + `
		FROM cobranza_followups f WHERE f.client_id = $1 AND f.service_month = $2`
	f, err := scanFollowup(r.q.QueryRow(ctx, query, clientID, month))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, repoErr("get followup by client and month", err)
	}
	return f, nil
}

// GetByID obtiene un seguimiento por ID.
func (r *FollowupRepo) GetByID(ctx context.Context, id string) (*entity.Followup, error) {
	if !validID(id) {
		return nil, nil
	}
	query := `SELECT ` + followupColumns + ` FROM cobranza_followups f WHERE f.id = $1`
	f, err := scanFollowup(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, repoErr("get followup", err)
	}
	return f, nil
}

// Insert persiste un seguimiento nuevo.
func (r *FollowupRepo) Insert(ctx context.Context, f *entity.Followup) error {
	if f.ClientID == "" || f.ServiceMonth == "" {
		return fmt.Errorf("%w: client_id y service_month son requeridos", domain.ErrInvalidInput)
	}
	defer r.metrics.TrackDBOperation("followup_insert")(time.Now())
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	query := `
		INSERT INTO cobranza_followups (id, client_id, service_month, status, billing_date, invoice_folio,
			payment_date, registered_in_program, observations, last_open_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		f.ID, f.ClientID, f.ServiceMonth, f.Status, f.BillingDate, nullIfEmpty(f.InvoiceFolio),
		f.PaymentDate, f.RegisteredInProgram, nullIfEmpty(f.Observations), nullIfEmpty(f.LastOpenStatus),
		f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe un seguimiento para %s en %s", domain.ErrDuplicate, f.ClientID, f.ServiceMonth)
		}
		return repoErr("insert followup", err)
	}
	return nil
}

// Update reemplaza todos los campos editables del seguimiento.
func (r *FollowupRepo) Update(ctx context.Context, f *entity.Followup) error {
	if !validID(f.ID) {
		return domain.ErrNotFound
	}
	defer r.metrics.TrackDBOperation("followup_update")(time.Now())
	query := `
		UPDATE cobranza_followups
		SET client_id             = $2,
		    service_month         = $3,
		    status                = $4,
		    billing_date          = $5,
		    invoice_folio         = $6,
		    payment_date          = $7,
		    registered_in_program = $8,
		    observations          = $9,
		    last_open_status      = $10,
		    updated_at            = $11
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		f.ID, f.ClientID, f.ServiceMonth, f.Status, f.BillingDate, nullIfEmpty(f.InvoiceFolio),
		f.PaymentDate, f.RegisteredInProgram, nullIfEmpty(f.Observations), nullIfEmpty(f.LastOpenStatus),
		f.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: otro seguimiento ya usa %s en %s", domain.ErrConflict, f.ClientID, f.ServiceMonth)
		}
		return repoErr("update followup", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Upsert escribe el seguimiento por llave natural en una sola sentencia, apoyada en el
// índice único (client_id, service_month). Si ya existía, conserva su id y created_at.
// Un registro pagado en el store solo se reemplaza si allowReopen y f no trae fecha de pago;
// en otro caso no se escribe nada y devuelve ErrClosedFollowup.
func (r *FollowupRepo) Upsert(ctx context.Context, f *entity.Followup, allowReopen bool) (bool, error) {
	if f.ClientID == "" || f.ServiceMonth == "" {
		return false, fmt.Errorf("%w: client_id y service_month son requeridos", domain.ErrInvalidInput)
	}
	defer r.metrics.TrackDBOperation("followup_upsert")(time.Now())
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	query := `
		INSERT INTO cobranza_followups (id, client_id, service_month, status, billing_date, invoice_folio,
			payment_date, registered_in_program, observations, last_open_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (client_id, service_month) DO UPDATE
		SET status                = EXCLUDED.status,
		    billing_date          = EXCLUDED.billing_date,
		    invoice_folio         = EXCLUDED.invoice_folio,
		    payment_date          = EXCLUDED.payment_date,
		    registered_in_program = EXCLUDED.registered_in_program,
		    observations          = EXCLUDED.observations,
		    last_open_status      = EXCLUDED.last_open_status,
		    updated_at            = EXCLUDED.updated_at
		WHERE cobranza_followups.payment_date IS NULL
		   OR ($13::boolean AND EXCLUDED.payment_date IS NULL)
		RETURNING id, created_at, (xmax = 0) AS inserted`
	var inserted bool
	err := r.q.QueryRow(ctx, query,
		f.ID, f.ClientID, f.ServiceMonth, f.Status, f.BillingDate, nullIfEmpty(f.InvoiceFolio),
		f.PaymentDate, f.RegisteredInProgram, nullIfEmpty(f.Observations), nullIfEmpty(f.LastOpenStatus),
		f.CreatedAt, f.UpdatedAt, allowReopen,
	).Scan(&f.ID, &f.CreatedAt, &inserted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, fmt.Errorf("%w: %s en %s ya fue pagado", domain.ErrClosedFollowup, f.ClientID, f.ServiceMonth)
		}
		return false, repoErr("upsert followup", err)
	}
	return inserted, nil
}

// Delete elimina un seguimiento por ID.
func (r *FollowupRepo) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	defer r.metrics.TrackDBOperation("followup_delete")(time.Now())
	tag, err := r.q.Exec(ctx, `DELETE FROM cobranza_followups WHERE id = $1`, id)
	if err != nil {
		return repoErr("delete followup", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByClient lista los seguimientos de un cliente, del mes más reciente al más antiguo.
func (r *FollowupRepo) ListByClient(ctx context.Context, clientID string) ([]*entity.Followup, error) {
	if !validID(clientID) {
		return nil, nil
	}
	query := `SELECT ` + followupColumns + `
		FROM cobranza_followups f WHERE f.client_id = $1 ORDER BY f.service_month DESC`
	rows, err := r.q.Query(ctx, query, clientID)
	if err != nil {
		return nil, repoErr("list followups by client", err)
	}
	defer rows.Close()
	var list []*entity.Followup
	for rows.Next() {
		f, err := scanFollowup(rows)
		if err != nil {
			return nil, repoErr("scan followup", err)
		}
		list = append(list, f)
	}
	if err := rows.Err(); err != nil {
		return nil, repoErr("list followups by client", err)
	}
	return list, nil
}

// ListAll lista seguimientos unidos con su cliente aplicando el filtro.
func (r *FollowupRepo) ListAll(ctx context.Context, filter repository.FollowupFilter) ([]*entity.FollowupView, error) {
	defer r.metrics.TrackDBOperation("followup_list")(time.Now())
	query, args := buildListQuery(filter)
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, repoErr("list followups", err)
	}
	defer rows.Close()
	var list []*entity.FollowupView
	for rows.Next() {
		var v entity.FollowupView
		var folio, obs, lastOpen, customerNumber, zone *string
		if err := rows.Scan(
			&v.ID, &v.ClientID, &v.ServiceMonth, &v.Status, &v.BillingDate, &folio,
			&v.PaymentDate, &v.RegisteredInProgram, &obs, &lastOpen,
			&v.CreatedAt, &v.UpdatedAt,
			&v.Client.Name, &customerNumber, &zone,
		); err != nil {
			return nil, repoErr("scan followup view", err)
		}
		v.InvoiceFolio = derefStr(folio)
		v.Observations = derefStr(obs)
		v.LastOpenStatus = derefStr(lastOpen)
		v.Client.CustomerNumber = derefStr(customerNumber)
		v.Client.Zone = derefStr(zone)
		list = append(list, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, repoErr("list followups", err)
	}
	return list, nil
}

// buildListQuery arma el SELECT con JOIN a clients y los predicados del filtro.
func buildListQuery(filter repository.FollowupFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + followupColumns + `, c.name, c.customer_number, c.zone
		FROM cobranza_followups f
		JOIN clients c ON c.id = f.client_id
		WHERE 1 = 1`)
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		fmt.Fprintf(&sb, " AND "+cond, len(args))
	}
	if filter.ClientID != "" {
		add("f.client_id = $%d", filter.ClientID)
	}
	if filter.Status != "" {
		add("f.status = $%d", filter.Status)
	}
	if filter.Paid != nil {
		if *filter.Paid {
			sb.WriteString(" AND f.payment_date IS NOT NULL")
		} else {
			sb.WriteString(" AND f.payment_date IS NULL")
		}
	}
	if filter.PaidFrom != nil {
		add("f.payment_date >= $%d", *filter.PaidFrom)
	}
	if filter.PaidTo != nil {
		add("f.payment_date < $%d", *filter.PaidTo)
	}
	if filter.MonthFrom != "" {
		add("f.service_month >= $%d", filter.MonthFrom)
	}
	if filter.MonthTo != "" {
		add("f.service_month <= $%d", filter.MonthTo)
	}

	column := "f.service_month"
	switch filter.OrderBy {
	case repository.OrderByPaymentDate:
		column = "f.payment_date"
	case repository.OrderByCreatedAt:
		column = "f.created_at"
	}
	direction := "DESC"
	if filter.Ascending {
		direction = "ASC"
	}
	fmt.Fprintf(&sb, " ORDER BY %s %s NULLS LAST, f.id", column, direction)
	return sb.String(), args
}

func scanFollowup(row pgx.Row) (*entity.Followup, error) {
	var f entity.Followup
	var folio, obs, lastOpen *string
	err := row.Scan(
		&f.ID, &f.ClientID, &f.ServiceMonth, &f.Status, &f.BillingDate, &folio,
		&f.PaymentDate, &f.RegisteredInProgram, &obs, &lastOpen,
		&f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	f.InvoiceFolio = derefStr(folio)
	f.Observations = derefStr(obs)
	f.LastOpenStatus = derefStr(lastOpen)
	return &f, nil
}
