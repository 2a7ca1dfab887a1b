package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/eventos-api/internal/application/auth"
	"github.com/jhoicas/eventos-api/internal/application/payments"
	"github.com/jhoicas/eventos-api/internal/application/plan"
	"github.com/jhoicas/eventos-api/internal/application/tenant"
	infrapdf "github.com/jhoicas/eventos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/eventos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/eventos-api/internal/interfaces/http"
	"github.com/jhoicas/eventos-api/pkg/config"
	"github.com/jhoicas/eventos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Registro de particiones: un pool por schema de tenant, bajo demanda.
	partitions := postgres.NewPartitionRegistry(
		postgres.NewPartitionOpener(cfg.DB, cfg.Tenant.PartitionMaxConns), log)
	defer partitions.Close()

	tenantRepo := postgres.NewTenantRepository(pool)
	planRepo := postgres.NewPlanRepository(pool)
	installmentRepo := postgres.NewInstallmentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	resolver := tenant.NewResolver(tenantRepo, cfg.Tenant.DefaultDomain)
	createTenantUC := tenant.NewCreateTenantUseCase(txRunner, tenantRepo, planRepo)
	tenantQueryUC := tenant.NewQueryUseCase(tenantRepo)
	toggleStatusUC := tenant.NewToggleStatusUseCase(tenantRepo)
	upgradePlanUC := tenant.NewUpgradePlanUseCase(txRunner)
	deleteTenantUC := tenant.NewDeleteTenantUseCase(txRunner, partitions)

	planUC := plan.NewUseCase(planRepo)

	statementGen := infrapdf.NewMarotoStatementGenerator(cfg.App.Name)
	applyPaymentUC := payments.NewApplyPaymentUseCase(txRunner)
	reversePayUC := payments.NewReverseInstallmentUseCase(txRunner)
	installmentsUC := payments.NewListInstallmentsUseCase(tenantRepo, installmentRepo)
	statementUC := payments.NewStatementUseCase(tenantRepo, planRepo, installmentRepo, statementGen)

	authUC := auth.NewUseCase(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Eventos Pro API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		CreateTenant: createTenantUC,
		TenantQuery:  tenantQueryUC,
		ToggleStatus: toggleStatusUC,
		UpgradePlan:  upgradePlanUC,
		DeleteTenant: deleteTenantUC,
		PlanUC:       planUC,
		ApplyPayment: applyPaymentUC,
		ReversePay:   reversePayUC,
		Installments: installmentsUC,
		Statement:    statementUC,
		AuthUC:       authUC,
		Resolver:     resolver,
		Partitions:   partitions,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
