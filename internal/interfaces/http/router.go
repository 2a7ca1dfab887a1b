package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/eventos-api/internal/application/auth"
	"github.com/jhoicas/eventos-api/internal/application/payments"
	"github.com/jhoicas/eventos-api/internal/application/plan"
	"github.com/jhoicas/eventos-api/internal/application/tenant"
	"github.com/jhoicas/eventos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CreateTenant *tenant.CreateTenantUseCase
	TenantQuery  *tenant.QueryUseCase
	ToggleStatus *tenant.ToggleStatusUseCase
	UpgradePlan  *tenant.UpgradePlanUseCase
	DeleteTenant *tenant.DeleteTenantUseCase

	PlanUC *plan.UseCase

	ApplyPayment *payments.ApplyPaymentUseCase
	ReversePay   *payments.ReverseInstallmentUseCase
	Installments *payments.ListInstallmentsUseCase
	Statement    *payments.StatementUseCase

	AuthUC *auth.UseCase

	Resolver   TenantResolver
	Partitions PartitionSource
	JWTSecret  string
}

// Router registra las rutas de la API. Dos planos: el del operador de la
// plataforma (tenants, planes, conciliación) y el de los usuarios de cada
// tenant (login, usuarios, estado de cuenta), que pasa por la resolución de
// tenant y particiones.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Plano del operador
	tenants := api.Group("/tenants")
	tenantHandler := NewTenantHandler(deps.CreateTenant, deps.TenantQuery, deps.ToggleStatus, deps.UpgradePlan, deps.DeleteTenant)
	tenants.Post("/", tenantHandler.Create)
	tenants.Get("/", tenantHandler.List)
	tenants.Get("/:id", tenantHandler.GetByID)
	tenants.Delete("/:id", tenantHandler.Delete)
	tenants.Post("/:id/status/toggle", tenantHandler.ToggleStatus)
	tenants.Post("/:id/plan", tenantHandler.UpgradePlan)

	plans := api.Group("/plans")
	planHandler := NewPlanHandler(deps.PlanUC)
	plans.Post("/", planHandler.Create)
	plans.Get("/", planHandler.List)
	plans.Get("/:id", planHandler.GetByID)

	billingHandler := NewBillingHandler(deps.ApplyPayment, deps.ReversePay, deps.Installments, deps.Statement)
	installments := api.Group("/installments")
	installments.Post("/:id/payments", billingHandler.ApplyPayment)
	installments.Post("/:id/reverse", billingHandler.ReversePayment)

	// Plano del tenant: login permite tenants inactivos (deben poder ver su
	// estado de cuenta); el resto exige suscripción activa.
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login",
		ResolveTenantAllowInactive(deps.Resolver, deps.Partitions, deps.JWTSecret),
		authHandler.Login)

	billing := api.Group("/billing",
		ResolveTenantAllowInactive(deps.Resolver, deps.Partitions, deps.JWTSecret),
		AuthMiddleware(deps.JWTSecret))
	billing.Get("/installments", billingHandler.ListInstallments)
	billing.Get("/statement", billingHandler.Statement)

	userHandler := NewUserHandler(deps.AuthUC)
	users := api.Group("/users",
		ResolveTenant(deps.Resolver, deps.Partitions, deps.JWTSecret),
		AuthMiddleware(deps.JWTSecret),
		RequireRole(entity.RoleAdmin))
	users.Get("/", userHandler.List)
}
