// Package clients contiene los casos de uso de alta, edición y consulta de clientes.
package clients

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Cobranza-api/internal/application/dto"
	"github.com/jhoicas/Cobranza-api/internal/domain"
	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
	"github.com/jhoicas/Cobranza-api/internal/domain/repository"
	"github.com/jhoicas/Cobranza-api/pkg/logger"
	"github.com/jhoicas/Cobranza-api/pkg/textnorm"
)

// UseCase casos de uso de clientes.
type UseCase struct {
	repo repository.ClientRepository
	log  *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.ClientRepository, log *logger.Logger) *UseCase {
	return &UseCase{repo: repo, log: log.Component("clients")}
}

// Catalog opciones de zona y tipo de café para formularios.
func (uc *UseCase) Catalog() dto.CatalogResponse {
	return dto.CatalogResponse{Zones: Zones, CoffeeTypes: CoffeeTypes}
}

// Create da de alta un cliente. El número de cliente es único.
func (uc *UseCase) Create(ctx context.Context, in dto.ClientRequest) (*dto.ClientResponse, error) {
	c, err := build(in)
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByCustomerNumber(ctx, c.CustomerNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: el número de cliente %s ya existe", domain.ErrDuplicate, c.CustomerNumber)
	}

	now := time.Now().UTC()
	c.ID = uuid.New().String()
	c.CreatedAt = now
	c.UpdatedAt = now
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	uc.log.Info().Str("client_id", c.ID).Str("customer_number", c.CustomerNumber).Msg("cliente creado")
	out := dto.ToClientResponse(c)
	return &out, nil
}

// Update reemplaza los datos de un cliente existente.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.ClientRequest) (*dto.ClientResponse, error) {
	current, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	c, err := build(in)
	if err != nil {
		return nil, err
	}
	if c.CustomerNumber != current.CustomerNumber {
		other, err := uc.repo.GetByCustomerNumber(ctx, c.CustomerNumber)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, fmt.Errorf("%w: el número de cliente %s ya existe", domain.ErrDuplicate, c.CustomerNumber)
		}
	}

	c.ID = current.ID
	c.CreatedAt = current.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	uc.log.Info().Str("client_id", c.ID).Msg("cliente actualizado")
	out := dto.ToClientResponse(c)
	return &out, nil
}

// Get devuelve un cliente por id.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.ClientResponse, error) {
	c, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.ToClientResponse(c)
	return &out, nil
}

// List clientes por nombre; q filtra por nombre, número o zona.
func (uc *UseCase) List(ctx context.Context, q string) ([]dto.ClientResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	q = strings.TrimSpace(q)
	out := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		if q != "" && !textnorm.Contains(c.Name, q) && !textnorm.Contains(c.CustomerNumber, q) && !textnorm.Contains(c.Zone, q) {
			continue
		}
		out = append(out, dto.ToClientResponse(c))
	}
	return out, nil
}

// load busca el cliente; un id que no es UUID no existe.
func (uc *UseCase) load(ctx context.Context, id string) (*entity.Client, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// build valida y normaliza la entrada.
func build(in dto.ClientRequest) (*entity.Client, error) {
	in.CustomerNumber = strings.TrimSpace(in.CustomerNumber)
	in.Name = strings.TrimSpace(in.Name)
	in.Zone = NormalizeZone(in.Zone)
	in.CoffeeType = strings.TrimSpace(in.CoffeeType)
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.Kilos.IsNegative() || in.ServiceValue.IsNegative() {
		return nil, fmt.Errorf("%w: kilos y service_value no pueden ser negativos", domain.ErrInvalidInput)
	}
	if in.CoffeeType != "" {
		coffee, ok := NormalizeCoffeeType(in.CoffeeType)
		if !ok {
			return nil, fmt.Errorf("%w: tipo de café %q no está en el catálogo", domain.ErrInvalidInput, in.CoffeeType)
		}
		in.CoffeeType = coffee
	}
	cutoff := in.CutoffDay
	if cutoff == 0 {
		cutoff = DefaultCutoffDay
	}

	c := &entity.Client{
		CustomerNumber: in.CustomerNumber,
		Zone:           in.Zone,
		Name:           in.Name,
		RentalKey:      strings.TrimSpace(in.RentalKey),
		ServiceType:    in.ServiceType,
		CutoffDay:      cutoff,
		CoffeeType:     in.CoffeeType,
		Kilos:          in.Kilos.Round(2),
		ServiceValue:   in.ServiceValue.Round(2),
	}
	if c.RequiresCoffeeType() && c.CoffeeType == "" {
		return nil, fmt.Errorf("%w: coffee_type es requerido para comodato", domain.ErrInvalidInput)
	}
	return c, nil
}
