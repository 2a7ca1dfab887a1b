package tenant

import (
	"context"

	"github.com/jhoicas/eventos-api/internal/domain"
)

// DeleteTenantUseCase elimina una empresa. El borrado solo cascadea si
// ninguna cuota está pagada; con historia de pagos la operación se rechaza.
// Tras el commit se invalida el handle cacheado de la partición.
type DeleteTenantUseCase struct {
	txRunner TxRunner
	cache    PartitionCache
}

// NewDeleteTenantUseCase construye el caso de uso.
func NewDeleteTenantUseCase(txRunner TxRunner, cache PartitionCache) *DeleteTenantUseCase {
	return &DeleteTenantUseCase{txRunner: txRunner, cache: cache}
}

// Delete verifica el guard de cuotas pagadas y, si pasa, elimina cuotas
// abiertas, fila del directorio y schema en una transacción. La invalidación
// del caché ocurre después del commit: un rollback no debe desalojar un
// handle que sigue siendo válido.
func (uc *DeleteTenantUseCase) Delete(ctx context.Context, tenantID string) error {
	var schemaName string
	err := uc.txRunner.Run(ctx, func(tx TxRepos) error {
		t, err := tx.Tenants.GetByIDForUpdate(ctx, tenantID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrTenantNotFound
		}

		paid, err := tx.Installments.CountPaidByTenant(ctx, t.ID)
		if err != nil {
			return err
		}
		if paid > 0 {
			return domain.ErrHasPaidInstallments
		}

		if _, err := tx.Installments.DeleteOpenByTenant(ctx, t.ID); err != nil {
			return err
		}
		if err := tx.Tenants.Delete(ctx, t.ID); err != nil {
			return err
		}
		if err := tx.Partitions.Drop(ctx, t.SchemaName); err != nil {
			return err
		}
		schemaName = t.SchemaName
		return nil
	})
	if err != nil {
		return err
	}

	uc.cache.Invalidate(schemaName)
	return nil
}
