package tenant

import (
	"context"

	"github.com/jhoicas/eventos-api/internal/application/dto"
	"github.com/jhoicas/eventos-api/internal/domain"
	"github.com/jhoicas/eventos-api/internal/domain/repository"
)

// QueryUseCase lecturas del directorio de tenants para la API del operador.
type QueryUseCase struct {
	tenants repository.TenantRepository
}

// NewQueryUseCase construye el caso de uso de consulta.
func NewQueryUseCase(tenants repository.TenantRepository) *QueryUseCase {
	return &QueryUseCase{tenants: tenants}
}

// GetByID obtiene un tenant por ID.
func (uc *QueryUseCase) GetByID(ctx context.Context, id string) (*dto.TenantResponse, error) {
	t, err := uc.tenants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrTenantNotFound
	}
	return toTenantResponse(t), nil
}

// List lista tenants con paginación.
func (uc *QueryUseCase) List(ctx context.Context, limit, offset int) (*dto.TenantListResponse, error) {
	list, err := uc.tenants.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TenantResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTenantResponse(t))
	}
	return &dto.TenantListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}
