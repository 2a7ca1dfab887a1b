package tenant

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/eventos-api/internal/application/dto"
	"github.com/jhoicas/eventos-api/internal/domain"
	"github.com/jhoicas/eventos-api/internal/domain/billing"
	"github.com/jhoicas/eventos-api/internal/domain/entity"
	"github.com/jhoicas/eventos-api/internal/domain/repository"
	"github.com/jhoicas/eventos-api/pkg/partition"
)

// CreateTenantUseCase da de alta una empresa: fila en el directorio, ciclo
// anual de cuotas y partición aprovisionada, todo en una sola transacción.
// Si cualquier paso falla no queda ni tenant, ni cuotas, ni schema.
type CreateTenantUseCase struct {
	txRunner TxRunner
	tenants  repository.TenantRepository
	plans    repository.PlanRepository
}

// NewCreateTenantUseCase construye el caso de uso.
func NewCreateTenantUseCase(txRunner TxRunner, tenants repository.TenantRepository, plans repository.PlanRepository) *CreateTenantUseCase {
	return &CreateTenantUseCase{txRunner: txRunner, tenants: tenants, plans: plans}
}

// Create valida, deriva la partición y ejecuta el alta transaccional.
// El tenant nace en AwaitingPayment: la activación la decide la conciliación
// de su primera cuota, nunca el alta.
func (uc *CreateTenantUseCase) Create(ctx context.Context, in dto.CreateTenantRequest) (*dto.TenantResponse, error) {
	if in.Name == "" || in.NIT == "" || in.Email == "" || in.PlanID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.AdminUser.Email == "" || len(in.AdminUser.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	if !partition.IsValidDomain(in.Domain) {
		return nil, domain.ErrInvalidPartitionName
	}
	schemaName, err := partition.SchemaName(in.Domain)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPartitionName, err)
	}

	plan, err := uc.plans.GetByID(ctx, in.PlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}

	// Chequeos de unicidad amigables; la carrera residual la resuelve el
	// unique constraint (el repo la mapea al mismo error de dominio).
	if existing, err := uc.tenants.GetByNIT(ctx, in.NIT); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicateNIT
	}
	if existing, err := uc.tenants.GetByDomain(ctx, in.Domain); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicateDomain
	}

	anchor := time.Now()
	if in.AnchorDate != nil {
		anchor = *in.AnchorDate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.AdminUser.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	t := &entity.Tenant{
		ID:         uuid.New().String(),
		Name:       in.Name,
		NIT:        in.NIT,
		Domain:     in.Domain,
		SchemaName: schemaName,
		PlanID:     plan.ID,
		BillingDay: anchor,
		Status:     entity.TenantStatusAwaitingPayment,
		Email:      in.Email,
		Version:    1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = uc.txRunner.Run(ctx, func(tx TxRepos) error {
		if err := tx.Tenants.Create(ctx, t); err != nil {
			return err
		}
		cc, err := tx.CostCenters.GetOrCreateByName(ctx, entity.CostCenterPlans)
		if err != nil {
			return err
		}
		cuotas := billing.GenerateAnnualSchedule(t.ID, cc.ID, plan, anchor)
		if err := tx.Installments.CreateBatch(ctx, cuotas); err != nil {
			return err
		}
		admin := BootstrapAdmin{
			Email:        in.AdminUser.Email,
			PasswordHash: string(hash),
			Name:         in.AdminUser.Name,
		}
		if err := tx.Partitions.Provision(ctx, schemaName, admin); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrProvisioningFailed, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toTenantResponse(t), nil
}
