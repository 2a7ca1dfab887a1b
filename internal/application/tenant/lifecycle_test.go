package tenant

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/eventos-api/internal/application/dto"
	"github.com/jhoicas/eventos-api/internal/domain"
	"github.com/jhoicas/eventos-api/internal/domain/entity"
	"github.com/jhoicas/eventos-api/internal/domain/repository"
)

// --- fakes en memoria ---

type fakeTenantRepo struct {
	tenants map[string]*entity.Tenant
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

type fakeCostCenterRepo struct {
	centros map[string]*entity.CostCenter
}

func (f *fakeCostCenterRepo) GetOrCreateByName(_ context.Context, name string) (*entity.CostCenter, error) {
	if f.centros == nil {
		f.centros = make(map[string]*entity.CostCenter)
	}
	if cc, ok := f.centros[name]; ok {
		return cc, nil
	}
	cc := &entity.CostCenter{ID: "cc-" + name, Name: name}
	f.centros[name] = cc
	return cc, nil
}

type fakePartitionAdmin struct {
	provisioned []string
	dropped     []string
}

func (f *fakePartitionAdmin) Provision(_ context.Context, schemaName string, _ BootstrapAdmin) error {
	f.provisioned = append(f.provisioned, schemaName)
	return nil
}

func (f *fakePartitionAdmin) Drop(_ context.Context, schemaName string) error {
	f.dropped = append(f.dropped, schemaName)
	return nil
}

type fakePartitionCache struct {
	invalidated []string
}

func (f *fakePartitionCache) Invalidate(schemaName string) {
	f.invalidated = append(f.invalidated, schemaName)
}

var (
	_ repository.TenantRepository      = (*fakeTenantRepo)(nil)
	_ repository.PlanRepository        = (*fakePlanRepo)(nil)
	_ repository.InstallmentRepository = (*fakeInstallmentRepo)(nil)
	_ repository.CostCenterRepository  = (*fakeCostCenterRepo)(nil)
	_ PartitionAdmin                   = (*fakePartitionAdmin)(nil)
	_ PartitionCache                   = (*fakePartitionCache)(nil)
)

// fakeTxRunner pasa los fakes directamente: sin transacción real, cada Run
// cuenta como una.
type fakeTxRunner struct {
	repos TxRepos
	runs  int
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(tx TxRepos) error) error {
	f.runs++
	return fn(f.repos)
}

var _ TxRunner = (*fakeTxRunner)(nil)

// --- fixtures ---

func fecha(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func planDePrueba(id, name, total, monthly string) *entity.Plan {
	return &entity.Plan{
		ID:             id,
		Name:           name,
		DurationMonths: 12,
		TotalValue:     decimal.RequireFromString(total),
		MonthlyValue:   decimal.RequireFromString(monthly),
		GraceDays:      5,
	}
}

// armarEmpresa construye una empresa en el plan básico con una cuota abierta
// y, si conPago, una cuota ya conciliada.
func armarEmpresa(t *testing.T, conPago bool) (*fakeTxRunner, *entity.Tenant) {
	t.Helper()
	basico := planDePrueba("plan-basico", "Anual Básico", "1200", "100.00")
	pro := planDePrueba("plan-pro", "Anual Pro", "2400", "200.00")
	economico := planDePrueba("plan-economico", "Anual Eco", "600", "50.00")

	tenant := &entity.Tenant{
		ID:         "tenant-1",
		Name:       "Fiestas Medellín SAS",
		NIT:        "900765432-1",
		Domain:     "fiestasmedellin",
		SchemaName: "empresa_fiestasmedellin",
		PlanID:     basico.ID,
		BillingDay: fecha(2024, time.January, 15),
		Status:     entity.TenantStatusActive,
		Version:    1,
	}

	cuotas := []*entity.Installment{{
		ID:           "cuota-abierta",
		TenantID:     tenant.ID,
		CostCenterID: "cc-1",
		Amount:       decimal.RequireFromString("100.00"),
		DueDate:      fecha(2024, time.February, 15),
		Status:       entity.InstallmentStatusOpen,
		PaidAmount:   decimal.Zero,
	}}
	if conPago {
		cuotas = append(cuotas, &entity.Installment{
			ID:           "cuota-pagada",
			TenantID:     tenant.ID,
			CostCenterID: "cc-1",
			Amount:       decimal.RequireFromString("101.92"),
			DueDate:      fecha(2024, time.January, 15),
			Status:       entity.InstallmentStatusPaid,
			PaidAmount:   decimal.RequireFromString("101.92"),
		})
	}

	runner := &fakeTxRunner{repos: TxRepos{
		Tenants:      newFakeTenantRepo(tenant),
		Plans:        newFakePlanRepo(basico, pro, economico),
		Installments: newFakeInstallmentRepo(cuotas...),
		CostCenters:  &fakeCostCenterRepo{},
		Partitions:   &fakePartitionAdmin{},
	}}
	return runner, tenant
}

// --- tests UpgradePlan ---

func TestUpgradePlan_RegeneraCuotasAbiertas(t *testing.T) {
	runner, tenant := armarEmpresa(t, true)
	uc := NewUpgradePlanUseCase(runner)

	ancla := fecha(2024, time.June, 1)
	resp, err := uc.Upgrade(context.Background(), tenant.ID, dto.UpgradePlanRequest{
		PlanID:     "plan-pro",
		AnchorDate: &ancla,
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, "plan-pro", resp.PlanID)
	assert.True(t, ancla.Equal(resp.BillingDay), "el ciclo regenerado debe anclarse en la fecha pedida")

	cuotas, err := runner.repos.Installments.ListByTenant(context.Background(), tenant.ID)
	require.NoError(t, err)
	assert.Len(t, cuotas, 13, "una pagada histórica más doce del ciclo nuevo")

	var pagadas, alValorNuevo int
	for _, c := range cuotas {
		if c.IsPaid() {
			pagadas++
		}
		if c.Amount.Equal(decimal.RequireFromString("200.00")) {
			alValorNuevo++
		}
	}
	assert.Equal(t, 1, pagadas, "la cuota pagada es historia inmutable")
	assert.Equal(t, 11, alValorNuevo, "once cuotas al valor mensual del plan nuevo")
}

func TestUpgradePlan_DowngradeRechazado(t *testing.T) {
	runner, tenant := armarEmpresa(t, true)
	uc := NewUpgradePlanUseCase(runner)

	_, err := uc.Upgrade(context.Background(), tenant.ID, dto.UpgradePlanRequest{PlanID: "plan-economico"})
	require.ErrorIs(t, err, domain.ErrDowngradeNotAllowed)

	assert.Equal(t, "plan-basico", tenant.PlanID, "el plan no debe cambiar")
	cuotas, err := runner.repos.Installments.ListByTenant(context.Background(), tenant.ID)
	require.NoError(t, err)
	assert.Len(t, cuotas, 2, "el ciclo vigente debe quedar intacto")
	c, err := runner.repos.Installments.GetByID(context.Background(), "cuota-abierta")
	require.NoError(t, err)
	assert.NotNil(t, c, "la cuota abierta no debe borrarse ante un downgrade")
}

func TestUpgradePlan_PlanInexistente(t *testing.T) {
	runner, tenant := armarEmpresa(t, false)
	uc := NewUpgradePlanUseCase(runner)

	_, err := uc.Upgrade(context.Background(), tenant.ID, dto.UpgradePlanRequest{PlanID: "plan-fantasma"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "plan-basico", tenant.PlanID)
}

// --- tests DeleteTenant ---

func TestDeleteTenant_ConHistoriaDePagosRechazado(t *testing.T) {
	runner, tenant := armarEmpresa(t, true)
	cache := &fakePartitionCache{}
	uc := NewDeleteTenantUseCase(runner, cache)

	err := uc.Delete(context.Background(), tenant.ID)
	require.ErrorIs(t, err, domain.ErrHasPaidInstallments)

	existente, err := runner.repos.Tenants.GetByID(context.Background(), tenant.ID)
	require.NoError(t, err)
	assert.NotNil(t, existente, "la empresa debe seguir en el directorio")
	cuotas, err := runner.repos.Installments.ListByTenant(context.Background(), tenant.ID)
	require.NoError(t, err)
	assert.Len(t, cuotas, 2, "ninguna cuota debe borrarse")
	assert.Empty(t, runner.repos.Partitions.(*fakePartitionAdmin).dropped, "el schema no debe tocarse")
	assert.Empty(t, cache.invalidated, "el caché de particiones no debe invalidarse")
}

func TestDeleteTenant_SinPagosEliminaEInvalidaParticion(t *testing.T) {
	runner, tenant := armarEmpresa(t, false)
	cache := &fakePartitionCache{}
	uc := NewDeleteTenantUseCase(runner, cache)

	err := uc.Delete(context.Background(), tenant.ID)
	require.NoError(t, err)

	existente, err := runner.repos.Tenants.GetByID(context.Background(), tenant.ID)
	require.NoError(t, err)
	assert.Nil(t, existente, "la fila del directorio debe desaparecer")
	cuotas, err := runner.repos.Installments.ListByTenant(context.Background(), tenant.ID)
	require.NoError(t, err)
	assert.Empty(t, cuotas, "las cuotas abiertas caen con la empresa")
	assert.Equal(t, []string{"empresa_fiestasmedellin"}, runner.repos.Partitions.(*fakePartitionAdmin).dropped)
	assert.Equal(t, []string{"empresa_fiestasmedellin"}, cache.invalidated, "tras el commit debe desalojarse el handle cacheado")
}

func TestDeleteTenant_NoExiste(t *testing.T) {
	runner, _ := armarEmpresa(t, false)
	cache := &fakePartitionCache{}
	uc := NewDeleteTenantUseCase(runner, cache)

	err := uc.Delete(context.Background(), "tenant-fantasma")
	assert.ErrorIs(t, err, domain.ErrTenantNotFound)
	assert.Empty(t, cache.invalidated)
}
