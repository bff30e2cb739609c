// Package followups orquesta el alta, edición, borrado y reapertura de seguimientos
// de cobranza aplicando la regla automática de estado y la política de cierre.
package followups

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Cobranza-api/internal/application/dto"
	"github.com/jhoicas/Cobranza-api/internal/domain"
	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
	"github.com/jhoicas/Cobranza-api/internal/domain/followup"
	"github.com/jhoicas/Cobranza-api/internal/domain/repository"
	"github.com/jhoicas/Cobranza-api/pkg/logger"
	"github.com/jhoicas/Cobranza-api/pkg/metrics"
)

// Actor operador que ejecuta el comando (sale del JWT).
type Actor struct {
	UserID string
	Role   string
}

// CanReopen solo un admin puede quitar la fecha de pago de un seguimiento cerrado.
func (a Actor) CanReopen() bool {
	return a.Role == entity.RoleAdmin
}

// Lifecycle casos de uso de escritura sobre seguimientos.
type Lifecycle struct {
	repo    repository.FollowupRepository
	clients repository.ClientRepository
	log     *logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewLifecycle construye el caso de uso. log y m pueden ser nil.
func NewLifecycle(repo repository.FollowupRepository, clients repository.ClientRepository, log *logger.Logger, m *metrics.Metrics) *Lifecycle {
	return &Lifecycle{
		repo:    repo,
		clients: clients,
		log:     log.Component("followups"),
		metrics: m,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Save registra el seguimiento del (cliente, mes): lo crea si no existe o reemplaza
// todos sus campos si ya existe. La escritura es un único upsert atómico.
func (uc *Lifecycle) Save(ctx context.Context, actor Actor, in dto.FollowupRequest) (*dto.SaveFollowupResponse, error) {
	draft, err := uc.normalize(ctx, in)
	if err != nil {
		return nil, err
	}
	prev, err := uc.repo.FindByClientAndMonth(ctx, draft.ClientID, draft.ServiceMonth)
	if err != nil {
		return nil, err
	}
	if err := uc.checkPolicy(actor, prev, draft); err != nil {
		return nil, err
	}

	// El guard del upsert repite la política por si el registro se pagó después de leerlo.
	f, tr := uc.apply(draft, prev)
	inserted, err := uc.repo.Upsert(ctx, f, tr.Reopened)
	if err != nil {
		if errors.Is(err, domain.ErrClosedFollowup) {
			uc.metrics.RecordFollowupOperation("rejected")
		}
		return nil, err
	}

	switch {
	case inserted:
		uc.record(actor, f, "created", "seguimiento creado")
	case tr.Reopened:
		uc.record(actor, f, "reopened", "seguimiento reabierto")
	default:
		uc.record(actor, f, "updated", "seguimiento actualizado")
	}
	return &dto.SaveFollowupResponse{Followup: dto.ToFollowupResponse(f), Created: inserted}, nil
}

// Update edita un seguimiento existente por id. Si el nuevo (cliente, mes) ya pertenece
// a otro seguimiento devuelve ErrConflict.
func (uc *Lifecycle) Update(ctx context.Context, actor Actor, id string, in dto.FollowupRequest) (*dto.FollowupResponse, error) {
	draft, err := uc.normalize(ctx, in)
	if err != nil {
		return nil, err
	}
	prev, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.checkPolicy(actor, prev, draft); err != nil {
		return nil, err
	}

	if draft.ClientID != prev.ClientID || draft.ServiceMonth != prev.ServiceMonth {
		other, err := uc.repo.FindByClientAndMonth(ctx, draft.ClientID, draft.ServiceMonth)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			uc.metrics.RecordFollowupOperation("rejected")
			return nil, fmt.Errorf("%w: ya existe el seguimiento %s para %s", domain.ErrConflict, other.ID, draft.ServiceMonth)
		}
	}

	f, tr := uc.apply(draft, prev)
	if err := uc.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	if tr.Reopened {
		uc.record(actor, f, "reopened", "seguimiento reabierto")
	} else {
		uc.record(actor, f, "updated", "seguimiento actualizado")
	}
	out := dto.ToFollowupResponse(f)
	return &out, nil
}

// Delete elimina un seguimiento abierto. Un seguimiento pagado no se puede borrar.
func (uc *Lifecycle) Delete(ctx context.Context, actor Actor, id string) error {
	prev, err := uc.load(ctx, id)
	if err != nil {
		return err
	}
	if prev.IsClosed() {
		uc.metrics.RecordFollowupOperation("rejected")
		return fmt.Errorf("%w: no se puede eliminar", domain.ErrClosedFollowup)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.record(actor, prev, "deleted", "seguimiento eliminado")
	return nil
}

// Reopen quita la fecha de pago de un seguimiento cerrado y restaura su último estado abierto.
func (uc *Lifecycle) Reopen(ctx context.Context, actor Actor, id string) (*dto.FollowupResponse, error) {
	if !actor.CanReopen() {
		return nil, domain.ErrForbidden
	}
	prev, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !prev.IsClosed() {
		return nil, fmt.Errorf("%w: el seguimiento no está pagado", domain.ErrConflict)
	}

	draft := *prev
	draft.Status = ""
	draft.PaymentDate = nil
	f, _ := uc.apply(&draft, prev)
	if err := uc.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	uc.record(actor, f, "reopened", "seguimiento reabierto")
	out := dto.ToFollowupResponse(f)
	return &out, nil
}

// Get devuelve un seguimiento por id.
func (uc *Lifecycle) Get(ctx context.Context, id string) (*dto.FollowupResponse, error) {
	f, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.ToFollowupResponse(f)
	return &out, nil
}

// ListByClient seguimientos de un cliente del mes más reciente al más antiguo.
func (uc *Lifecycle) ListByClient(ctx context.Context, clientID string) ([]dto.FollowupResponse, error) {
	list, err := uc.repo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FollowupResponse, 0, len(list))
	for _, f := range list {
		out = append(out, dto.ToFollowupResponse(f))
	}
	return out, nil
}

// normalize valida la entrada y la convierte en un borrador sin estado resuelto.
// No toca el store salvo para comprobar que el cliente exista.
func (uc *Lifecycle) normalize(ctx context.Context, in dto.FollowupRequest) (*entity.Followup, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	month, err := followup.ParseMonth(in.ServiceMonth)
	if err != nil {
		return nil, err
	}
	billing, err := followup.ParseDate("billing_date", in.BillingDate)
	if err != nil {
		return nil, err
	}
	payment, err := followup.ParseDate("payment_date", in.PaymentDate)
	if err != nil {
		return nil, err
	}

	client, err := uc.clients.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("%w: el cliente %s no existe", domain.ErrInvalidInput, in.ClientID)
	}

	return &entity.Followup{
		ClientID:            client.ID,
		ServiceMonth:        month,
		Status:              in.Status,
		BillingDate:         billing,
		InvoiceFolio:        strings.TrimSpace(in.InvoiceFolio),
		PaymentDate:         payment,
		RegisteredInProgram: in.RegisteredInProgram,
		Observations:        strings.TrimSpace(in.Observations),
	}, nil
}

// checkPolicy un seguimiento cerrado solo admite que se le quite la fecha de pago,
// y eso solo lo puede hacer un admin.
func (uc *Lifecycle) checkPolicy(actor Actor, prev, draft *entity.Followup) error {
	if !prev.IsClosed() {
		return nil
	}
	if draft.PaymentDate != nil {
		uc.metrics.RecordFollowupOperation("rejected")
		return fmt.Errorf("%w: pagado el %s", domain.ErrClosedFollowup, prev.PaymentDate.Format("2006-01-02"))
	}
	if !actor.CanReopen() {
		uc.metrics.RecordFollowupOperation("rejected")
		return fmt.Errorf("%w: solo un admin puede reabrir un seguimiento pagado", domain.ErrForbidden)
	}
	return nil
}

// apply resuelve el estado del borrador contra el registro previo y fija id y fechas.
func (uc *Lifecycle) apply(draft, prev *entity.Followup) (*entity.Followup, followup.Transition) {
	tr := followup.NextStatus(draft.Status, draft.PaymentDate, prev)
	f := *draft
	f.Status = tr.Status
	f.LastOpenStatus = tr.LastOpenStatus
	now := uc.now()
	f.UpdatedAt = now
	if prev != nil {
		f.ID = prev.ID
		f.CreatedAt = prev.CreatedAt
	} else {
		f.ID = ""
		f.CreatedAt = now
	}
	return &f, tr
}

func (uc *Lifecycle) load(ctx context.Context, id string) (*entity.Followup, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	f, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}
	return f, nil
}

func (uc *Lifecycle) record(actor Actor, f *entity.Followup, op, msg string) {
	uc.metrics.RecordFollowupOperation(op)
	uc.log.Info().
		Str("followup_id", f.ID).
		Str("client_id", f.ClientID).
		Str("service_month", f.ServiceMonth).
		Str("status", f.Status).
		Str("user_id", actor.UserID).
		Msg(msg)
}
