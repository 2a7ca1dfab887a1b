// Package plan contiene los casos de uso del catálogo de planes.
package plan

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/eventos-api/internal/application/dto"
	"github.com/jhoicas/eventos-api/internal/domain"
	"github.com/jhoicas/eventos-api/internal/domain/entity"
	"github.com/jhoicas/eventos-api/internal/domain/repository"
)

// UseCase administra el catálogo de planes del operador.
type UseCase struct {
	plans repository.PlanRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(plans repository.PlanRepository) *UseCase {
	return &UseCase{plans: plans}
}

// Create da de alta un plan. El valor mensual se deriva del total y la
// duración; no se acepta desde afuera.
func (uc *UseCase) Create(ctx context.Context, in dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.DurationMonths <= 0 || !in.TotalValue.IsPositive() || in.GraceDays < 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	p := &entity.Plan{
		ID:             uuid.New().String(),
		Name:           name,
		DurationMonths: in.DurationMonths,
		TotalValue:     in.TotalValue,
		MonthlyValue:   entity.DeriveMonthlyValue(in.TotalValue, in.DurationMonths),
		GraceDays:      in.GraceDays,
		AutoRenew:      in.AutoRenew,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.plans.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := toPlanResponse(p)
	return &resp, nil
}

// GetByID devuelve un plan o domain.ErrNotFound.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.PlanResponse, error) {
	p, err := uc.plans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	resp := toPlanResponse(p)
	return &resp, nil
}

// List devuelve el catálogo paginado.
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) (*dto.PlanListResponse, error) {
	page.DefaultPage()
	all, err := uc.plans.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PlanResponse, 0, len(all))
	for _, p := range all {
		items = append(items, toPlanResponse(p))
	}
	return &dto.PlanListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toPlanResponse(p *entity.Plan) dto.PlanResponse {
	return dto.PlanResponse{
		ID:             p.ID,
		Name:           p.Name,
		DurationMonths: p.DurationMonths,
		TotalValue:     p.TotalValue,
		MonthlyValue:   p.MonthlyValue,
		GraceDays:      p.GraceDays,
		AutoRenew:      p.AutoRenew,
		CreatedAt:      p.CreatedAt,
	}
}
