package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
)

// Columnas por las que se puede ordenar un listado de seguimientos.
const (
	OrderByServiceMonth = "service_month"
	OrderByPaymentDate  = "payment_date"
	OrderByCreatedAt    = "created_at"
)

// FollowupFilter predicado declarativo para ListAll.
// Los campos vacíos (o nil) no filtran.
type FollowupFilter struct {
	ClientID  string
	Status    string
	Paid      *bool      // true: payment_date NOT NULL; false: IS NULL
	PaidFrom  *time.Time // payment_date >= PaidFrom
	PaidTo    *time.Time // payment_date < PaidTo
	MonthFrom string     // service_month >= MonthFrom (YYYY-MM)
	MonthTo   string     // service_month <= MonthTo (YYYY-MM)
	OrderBy   string     // service_month | payment_date | created_at
	Ascending bool
}

// FollowupRepository define el puerto de persistencia para seguimientos de cobranza.
type FollowupRepository interface {
	// FindByClientAndMonth busca por la llave natural. Devuelve (nil, nil) si no existe.
	FindByClientAndMonth(ctx context.Context, clientID, month string) (*entity.Followup, error)
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Followup, error)
	Insert(ctx context.Context, f *entity.Followup) error
	// Update reemplaza todos los campos editables. ErrNotFound si el id no existe.
	Update(ctx context.Context, f *entity.Followup) error
	// Upsert inserta o actualiza por (client_id, service_month) en una sola escritura.
	// Devuelve true si insertó un registro nuevo. Si el registro guardado ya está pagado solo
	// se reemplaza con allowReopen y f sin fecha de pago; si no, ErrClosedFollowup sin escribir.
	Upsert(ctx context.Context, f *entity.Followup, allowReopen bool) (bool, error)
	// Delete elimina por id. ErrNotFound si el id no existe.
	Delete(ctx context.Context, id string) error
	// ListByClient ordena por service_month descendente.
	ListByClient(ctx context.Context, clientID string) ([]*entity.Followup, error)
	ListAll(ctx context.Context, filter FollowupFilter) ([]*entity.FollowupView, error)
}
