package repository

import (
	"context"

	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client.
// No expone borrado: los clientes no se eliminan desde el núcleo.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	GetByCustomerNumber(ctx context.Context, customerNumber string) (*entity.Client, error)
	List(ctx context.Context) ([]*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
}
