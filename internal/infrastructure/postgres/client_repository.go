package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Cobranza-api/internal/domain"
	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
	"github.com/jhoicas/Cobranza-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

const clientColumns = `id, customer_number, zone, name, rental_key, service_type, cutoff_day,
		       coffee_type, kilos, service_value, created_at, updated_at`

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *ClientRepo) Create(ctx context.Context, client *entity.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		client.ID, client.CustomerNumber, client.Zone, client.Name, client.RentalKey, client.ServiceType,
		client.CutoffDay, nullIfEmpty(client.CoffeeType), client.Kilos, client.ServiceValue,
		client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return repoErr("insert client", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	if !validID(id) {
		return nil, nil
	}
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	c, err := scanClient(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, repoErr("get client", err)
	}
	return c, nil
}

// GetByCustomerNumber obtiene un cliente por su número de cliente.
func (r *ClientRepo) GetByCustomerNumber(ctx context.Context, customerNumber string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE customer_number = $1`
	c, err := scanClient(r.q.QueryRow(ctx, query, customerNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, repoErr("get client by customer_number", err)
	}
	return c, nil
}

// List lista todos los clientes ordenados por nombre.
func (r *ClientRepo) List(ctx context.Context) ([]*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, repoErr("list clients", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, repoErr("scan client", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, repoErr("list clients", err)
	}
	return list, nil
}

// Update actualiza un cliente.
func (r *ClientRepo) Update(ctx context.Context, client *entity.Client) error {
	if !validID(client.ID) {
		return domain.ErrNotFound
	}
	query := `
		UPDATE clients
		SET customer_number = $2, zone = $3, name = $4, rental_key = $5, service_type = $6,
		    cutoff_day = $7, coffee_type = $8, kilos = $9, service_value = $10, updated_at = $11
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		client.ID, client.CustomerNumber, client.Zone, client.Name, client.RentalKey, client.ServiceType,
		client.CutoffDay, nullIfEmpty(client.CoffeeType), client.Kilos, client.ServiceValue, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return repoErr("update client", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	var coffee *string
	err := row.Scan(
		&c.ID, &c.CustomerNumber, &c.Zone, &c.Name, &c.RentalKey, &c.ServiceType, &c.CutoffDay,
		&coffee, &c.Kilos, &c.ServiceValue, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.CoffeeType = derefStr(coffee)
	return &c, nil
}
