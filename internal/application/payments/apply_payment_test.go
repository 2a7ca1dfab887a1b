package payments

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/eventos-api/internal/application/dto"
	"github.com/jhoicas/eventos-api/internal/domain"
	"github.com/jhoicas/eventos-api/internal/domain/billing"
	"github.com/jhoicas/eventos-api/internal/domain/entity"
	"github.com/jhoicas/eventos-api/internal/domain/repository"
)

// --- fakes en memoria ---

type fakeTenantRepo struct {
	tenants map[string]*entity.Tenant
	updates []string // estados escritos vía UpdateStatus, en orden
}

func newFakeTenantRepo(ts ...*entity.Tenant) *fakeTenantRepo {
	m := make(map[string]*entity.Tenant)
	for _, t := range ts {
		m[t.ID] = t
	}
	return &fakeTenantRepo{tenants: m}
}

func (f *fakeTenantRepo) Create(_ context.Context, t *entity.Tenant) error {
	f.tenants[t.ID] = t
	return nil
}

func (f *fakeTenantRepo) GetByID(_ context.Context, id string) (*entity.Tenant, error) {
	return f.tenants[id], nil
}

func (f *fakeTenantRepo) GetByNIT(_ context.Context, nit string) (*entity.Tenant, error) {
	for _, t := range f.tenants {
		if t.NIT == nit {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTenantRepo) GetByDomain(_ context.Context, dom string) (*entity.Tenant, error) {
	for _, t := range f.tenants {
		if t.Domain == dom {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTenantRepo) GetByIDForUpdate(_ context.Context, id string) (*entity.Tenant, error) {
	return f.tenants[id], nil
}

func (f *fakeTenantRepo) List(_ context.Context, _, _ int) ([]*entity.Tenant, error) {
	out := make([]*entity.Tenant, 0, len(f.tenants))
	for _, t := range f.tenants {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTenantRepo) UpdateStatus(_ context.Context, id, status string, version int64) error {
	t, ok := f.tenants[id]
	if !ok {
		return domain.ErrTenantNotFound
	}
	if t.Version != version {
		return domain.ErrConflict
	}
	t.Status = status
	t.Version++
	f.updates = append(f.updates, status)
	return nil
}

func (f *fakeTenantRepo) UpdatePlan(_ context.Context, t *entity.Tenant) error {
	f.tenants[t.ID] = t
	return nil
}

func (f *fakeTenantRepo) Delete(_ context.Context, id string) error {
	delete(f.tenants, id)
	return nil
}

type fakePlanRepo struct {
	plans map[string]*entity.Plan
}

func newFakePlanRepo(ps ...*entity.Plan) *fakePlanRepo {
	m := make(map[string]*entity.Plan)
	for _, p := range ps {
		m[p.ID] = p
	}
	return &fakePlanRepo{plans: m}
}

func (f *fakePlanRepo) Create(_ context.Context, p *entity.Plan) error {
	f.plans[p.ID] = p
	return nil
}

func (f *fakePlanRepo) GetByID(_ context.Context, id string) (*entity.Plan, error) {
	return f.plans[id], nil
}

func (f *fakePlanRepo) List(_ context.Context, _, _ int) ([]*entity.Plan, error) {
	out := make([]*entity.Plan, 0, len(f.plans))
	for _, p := range f.plans {
		out = append(out, p)
	}
	return out, nil
}

type fakeInstallmentRepo struct {
	cuotas map[string]*entity.Installment
	order  []string
}

func newFakeInstallmentRepo(cs ...*entity.Installment) *fakeInstallmentRepo {
	f := &fakeInstallmentRepo{cuotas: make(map[string]*entity.Installment)}
	for _, c := range cs {
		f.cuotas[c.ID] = c
		f.order = append(f.order, c.ID)
	}
	return f
}

func (f *fakeInstallmentRepo) CreateBatch(ctx context.Context, cs []*entity.Installment) error {
	for _, c := range cs {
		if err := f.Create(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeInstallmentRepo) Create(_ context.Context, c *entity.Installment) error {
	f.cuotas[c.ID] = c
	f.order = append(f.order, c.ID)
	return nil
}

func (f *fakeInstallmentRepo) GetByID(_ context.Context, id string) (*entity.Installment, error) {
	return f.cuotas[id], nil
}

func (f *fakeInstallmentRepo) GetByIDForUpdate(_ context.Context, id string) (*entity.Installment, error) {
	return f.cuotas[id], nil
}

func (f *fakeInstallmentRepo) ListByTenant(_ context.Context, tenantID string) ([]*entity.Installment, error) {
	var out []*entity.Installment
	for _, id := range f.order {
		if c, ok := f.cuotas[id]; ok && c.TenantID == tenantID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeInstallmentRepo) Update(_ context.Context, c *entity.Installment) error {
	f.cuotas[c.ID] = c
	return nil
}

func (f *fakeInstallmentRepo) DeleteOpenByTenant(_ context.Context, tenantID string) (int64, error) {
	var n int64
	for id, c := range f.cuotas {
		if c.TenantID == tenantID && !c.IsPaid() {
			delete(f.cuotas, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeInstallmentRepo) CountPaidByTenant(_ context.Context, tenantID string) (int64, error) {
	var n int64
	for _, c := range f.cuotas {
		if c.TenantID == tenantID && c.IsPaid() {
			n++
		}
	}
	return n, nil
}

var (
	_ repository.TenantRepository      = (*fakeTenantRepo)(nil)
	_ repository.PlanRepository        = (*fakePlanRepo)(nil)
	_ repository.InstallmentRepository = (*fakeInstallmentRepo)(nil)
)

// fakeTxRunner pasa los fakes directamente: sin transacción real, cada Run
// cuenta como una.
type fakeTxRunner struct {
	tenants *fakeTenantRepo
	plans   *fakePlanRepo
	cuotas  *fakeInstallmentRepo
	runs    int
}

func (f *fakeTxRunner) RunBilling(ctx context.Context, fn func(
	tenants repository.TenantRepository,
	plans repository.PlanRepository,
	cuotas repository.InstallmentRepository,
) error) error {
	f.runs++
	return fn(f.tenants, f.plans, f.cuotas)
}

// --- fixtures ---

func fecha(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func armarEscenario(t *testing.T, status string) (*fakeTxRunner, *entity.Tenant, *entity.Installment) {
	t.Helper()
	plan := &entity.Plan{
		ID:             "plan-1",
		Name:           "Anual Pro",
		DurationMonths: 12,
		TotalValue:     decimal.RequireFromString("1200"),
		MonthlyValue:   decimal.RequireFromString("100.00"),
		GraceDays:      5,
	}
	tenant := &entity.Tenant{
		ID:         "tenant-1",
		Name:       "Fiestas Bogotá SAS",
		NIT:        "900123456-7",
		Domain:     "fiestasbogota",
		SchemaName: "empresa_fiestasbogota",
		PlanID:     plan.ID,
		BillingDay: fecha(2024, time.January, 15),
		Status:     status,
		Version:    1,
	}
	cuota := &entity.Installment{
		ID:           "cuota-1",
		TenantID:     tenant.ID,
		CostCenterID: "cc-1",
		Amount:       decimal.RequireFromString("101.92"),
		DueDate:      fecha(2024, time.January, 15),
		Status:       entity.InstallmentStatusOpen,
		PaidAmount:   decimal.Zero,
	}
	runner := &fakeTxRunner{
		tenants: newFakeTenantRepo(tenant),
		plans:   newFakePlanRepo(plan),
		cuotas:  newFakeInstallmentRepo(cuota),
	}
	return runner, tenant, cuota
}

// --- tests ---

func TestApplyPayment_PagoCompletoActivaTenant(t *testing.T) {
	runner, tenant, cuota := armarEscenario(t, entity.TenantStatusAwaitingPayment)
	uc := NewApplyPaymentUseCase(runner)

	resp, err := uc.Apply(context.Background(), cuota.ID, dto.ApplyPaymentRequest{
		PaidAt: fecha(2024, time.January, 16),
		Method: entity.PaymentMethodTransfer,
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, billing.OutcomeFullyPaid, resp.Outcome, "sin monto explícito el pago debe asumirse completo")
	assert.Nil(t, resp.Remainder, "un pago completo no abre cuota de saldo")
	assert.True(t, resp.Activated, "el primer pago dentro de gracia debe activar al tenant")
	assert.Equal(t, entity.TenantStatusActive, tenant.Status)
	assert.Equal(t, int64(2), tenant.Version, "la activación debe incrementar la versión")
	assert.Equal(t, 2, runner.runs, "conciliación y evaluación deben correr en transacciones separadas")
}

func TestApplyPayment_PagoParcialAbreCuotaDeSaldo(t *testing.T) {
	runner, tenant, cuota := armarEscenario(t, entity.TenantStatusAwaitingPayment)
	uc := NewApplyPaymentUseCase(runner)

	nuevoVencimiento := fecha(2024, time.February, 1)
	resp, err := uc.Apply(context.Background(), cuota.ID, dto.ApplyPaymentRequest{
		PaidAt:     fecha(2024, time.January, 16),
		Method:     entity.PaymentMethodCard,
		AmountPaid: decimal.RequireFromString("60.00"),
		NewDueDate: &nuevoVencimiento,
	})
	require.NoError(t, err)

	assert.Equal(t, billing.OutcomePartiallyPaid, resp.Outcome)
	require.NotNil(t, resp.Remainder)
	assert.True(t, resp.Remainder.Amount.Equal(decimal.RequireFromString("41.92")),
		"el saldo debe ser monto original menos lo pagado, se obtuvo %s", resp.Remainder.Amount)
	assert.Equal(t, nuevoVencimiento, resp.Remainder.DueDate)
	assert.Equal(t, entity.InstallmentStatusOpen, resp.Remainder.Status)

	// la porción pagada cuenta como cuota pagada para la activación
	assert.True(t, resp.Activated)
	assert.Equal(t, entity.TenantStatusActive, tenant.Status)

	persistida, err := runner.cuotas.GetByID(context.Background(), resp.Remainder.ID)
	require.NoError(t, err)
	require.NotNil(t, persistida, "la cuota de saldo debe persistirse en la misma transacción")
}

func TestApplyPayment_ParcialSinVencimientoNuevoFalla(t *testing.T) {
	runner, _, cuota := armarEscenario(t, entity.TenantStatusAwaitingPayment)
	uc := NewApplyPaymentUseCase(runner)

	_, err := uc.Apply(context.Background(), cuota.ID, dto.ApplyPaymentRequest{
		PaidAt:     fecha(2024, time.January, 16),
		Method:     entity.PaymentMethodCash,
		AmountPaid: decimal.RequireFromString("60.00"),
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, entity.InstallmentStatusOpen, cuota.Status, "la cuota no debe mutar si la conciliación falla")
}

func TestApplyPayment_CuotaYaPagada(t *testing.T) {
	runner, _, cuota := armarEscenario(t, entity.TenantStatusAwaitingPayment)
	pagadaEl := fecha(2024, time.January, 10)
	cuota.Status = entity.InstallmentStatusPaid
	cuota.PaidAt = &pagadaEl
	cuota.PaidAmount = cuota.Amount

	uc := NewApplyPaymentUseCase(runner)
	_, err := uc.Apply(context.Background(), cuota.ID, dto.ApplyPaymentRequest{
		Method: entity.PaymentMethodTransfer,
	})
	require.ErrorIs(t, err, domain.ErrAlreadyPaid)
}

func TestApplyPayment_CuotaInexistente(t *testing.T) {
	runner, _, _ := armarEscenario(t, entity.TenantStatusAwaitingPayment)
	uc := NewApplyPaymentUseCase(runner)

	_, err := uc.Apply(context.Background(), "no-existe", dto.ApplyPaymentRequest{
		Method: entity.PaymentMethodTransfer,
	})
	require.ErrorIs(t, err, domain.ErrInstallmentNotFound)
}

func TestApplyPayment_EvaluacionNoPromueveTenantBloqueado(t *testing.T) {
	runner, tenant, cuota := armarEscenario(t, entity.TenantStatusBlocked)
	uc := NewApplyPaymentUseCase(runner)

	resp, err := uc.Apply(context.Background(), cuota.ID, dto.ApplyPaymentRequest{
		PaidAt: fecha(2024, time.January, 16),
		Method: entity.PaymentMethodTransfer,
	})
	require.NoError(t, err)

	assert.False(t, resp.Activated, "la evaluación solo promueve desde awaiting_payment")
	assert.Equal(t, entity.TenantStatusBlocked, tenant.Status)
	assert.Empty(t, runner.tenants.updates)
}

func TestApplyPayment_MoraMasAllaDeGraciaNoActiva(t *testing.T) {
	runner, tenant, cuota := armarEscenario(t, entity.TenantStatusAwaitingPayment)
	// segunda cuota abierta vencida hace mucho más que la gracia
	vencida := &entity.Installment{
		ID:           "cuota-2",
		TenantID:     tenant.ID,
		CostCenterID: "cc-1",
		Amount:       decimal.RequireFromString("100.00"),
		DueDate:      fecha(2020, time.January, 15),
		Status:       entity.InstallmentStatusOpen,
		PaidAmount:   decimal.Zero,
	}
	require.NoError(t, runner.cuotas.Create(context.Background(), vencida))

	uc := NewApplyPaymentUseCase(runner)
	resp, err := uc.Apply(context.Background(), cuota.ID, dto.ApplyPaymentRequest{
		PaidAt: time.Now(),
		Method: entity.PaymentMethodTransfer,
	})
	require.NoError(t, err)

	assert.False(t, resp.Activated, "una cuota abierta en mora más allá de la gracia bloquea la activación")
	assert.Equal(t, entity.TenantStatusAwaitingPayment, tenant.Status)
}

func TestReverseInstallment_RestauraCuotaAbierta(t *testing.T) {
	runner, tenant, cuota := armarEscenario(t, entity.TenantStatusActive)
	pagadaEl := fecha(2024, time.January, 16)
	cuota.Status = entity.InstallmentStatusPaid
	cuota.PaidAt = &pagadaEl
	cuota.PaidAmount = cuota.Amount
	cuota.Method = entity.PaymentMethodTransfer

	uc := NewReverseInstallmentUseCase(runner)
	resp, err := uc.Reverse(context.Background(), cuota.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.InstallmentStatusOpen, resp.Status)
	assert.Nil(t, resp.PaidAt)
	assert.True(t, resp.PaidAmount.IsZero())
	assert.Empty(t, resp.Method)
	assert.Equal(t, entity.TenantStatusActive, tenant.Status, "reversar nunca degrada la activación")
}

func TestReverseInstallment_CuotaAbiertaFalla(t *testing.T) {
	runner, _, cuota := armarEscenario(t, entity.TenantStatusActive)
	uc := NewReverseInstallmentUseCase(runner)

	_, err := uc.Reverse(context.Background(), cuota.ID)
	require.ErrorIs(t, err, domain.ErrNotPaid)
}
