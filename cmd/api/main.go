// @title           Inventario y Ventas API
// @version         1.0
// @description     Registro de ventas con control de existencias, kardex de bodega y exportación de comprobantes.
// @BasePath        /
// @securityDefinitions.apikey Bearer
// @in              header
// @name            Authorization
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	_ "github.com/jhoicas/inventario-ventas/docs"
	"github.com/jhoicas/inventario-ventas/internal/application/analytics"
	"github.com/jhoicas/inventario-ventas/internal/application/auth"
	"github.com/jhoicas/inventario-ventas/internal/application/inventory"
	"github.com/jhoicas/inventario-ventas/internal/application/sales"
	"github.com/jhoicas/inventario-ventas/internal/application/usecase"
	"github.com/jhoicas/inventario-ventas/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/inventario-ventas/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-ventas/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-ventas/internal/infrastructure/xmlexport"
	httpRouter "github.com/jhoicas/inventario-ventas/internal/interfaces/http"
	"github.com/jhoicas/inventario-ventas/pkg/config"
	"github.com/jhoicas/inventario-ventas/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Bool("deduct_stock", cfg.Sales.DeductStock).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool, log.Component("migrate"))
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	log.Info().Int("applied", applied).Msg("migraciones al día")

	// Idempotency-Key solo si hay Redis configurado.
	var idem *cache.IdempotencyStore
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, Idempotency-Key desactivado")
		} else {
			idem = cache.NewIdempotencyStore(redisClient, cfg.Redis.IdempotencyTTL)
			defer redisClient.Close()
		}
	}

	userRepo := postgres.NewUserRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	goodsRepo := postgres.NewGoodsRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	voucherRepo := postgres.NewVoucherRepository(pool)
	ledgerRepo := postgres.NewWarehouseTransactionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	salesCfg := sales.Config{
		DeductStock:          cfg.Sales.DeductStock,
		DefaultDebitAccount:  cfg.Sales.DefaultDebitAccount,
		DefaultCreditAccount: cfg.Sales.DefaultCreditAccount,
	}
	salesLog := log.Component("sales")

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:        cfg.App.Name,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		RateMax:     cfg.RateLimit.Max,
		RateWindow:  cfg.RateLimit.Window,
		SwaggerFile: existingFile(swaggerFile),
	}, log.Component("http"))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		GoodsUC:     usecase.NewGoodsUseCase(goodsRepo),
		WarehouseUC: usecase.NewWarehouseUseCase(warehouseRepo),
		CustomerUC:  usecase.NewCustomerUseCase(customerRepo),
		UserUC:      usecase.NewUserUseCase(userRepo),

		RegisterMovement: inventory.NewRegisterMovementUseCase(txRunner, warehouseRepo, log.Component("inventory")),
		StockQuery:       inventory.NewStockQueryUseCase(ledgerRepo),
		Replenishment:    inventory.NewReplenishmentUseCase(goodsRepo, ledgerRepo, log.Component("inventory")),

		CreateSale:   sales.NewCreateSaleUseCase(txRunner, customerRepo, salesCfg, salesLog),
		VoucherQuery: sales.NewVoucherQueryUseCase(voucherRepo),
		ReturnSale:   sales.NewReturnSaleUseCase(txRunner, salesCfg, salesLog),
		Export: sales.NewExportUseCase(
			voucherRepo,
			infrapdf.NewMarotoPDFGenerator(cfg.App.Name),
			xmlexport.NewExporter(),
		),
		Dashboard: analytics.NewDashboardUseCase(postgres.NewSalesAnalyticsRepository(pool)),

		Idempotency: idem,
		JWTSecret:   cfg.JWT.Secret,
		Log:         log.Component("http"),
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
		return app.Listen(cfg.HTTP.Addr())
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("servidor HTTP finalizado")
	}
	log.Info().Msg("aplicación detenida")
}

func existingFile(path string) string {
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
