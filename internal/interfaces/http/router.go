package http

import (
	"errors"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-ventas/internal/application/analytics"
	"github.com/jhoicas/inventario-ventas/internal/application/auth"
	"github.com/jhoicas/inventario-ventas/internal/application/dto"
	"github.com/jhoicas/inventario-ventas/internal/application/inventory"
	"github.com/jhoicas/inventario-ventas/internal/application/sales"
	"github.com/jhoicas/inventario-ventas/internal/application/usecase"
	"github.com/jhoicas/inventario-ventas/internal/infrastructure/cache"
)

// AppConfig parámetros de la aplicación Fiber.
type AppConfig struct {
	Name        string
	CORSOrigins string
	// RateMax 0 desactiva el limitador.
	RateMax    int
	RateWindow time.Duration
	// SwaggerFile vacío desactiva /docs.
	SwaggerFile string
}

// NewApp crea la app Fiber con la cadena de middlewares común.
// Los errores no manejados salen como envelope EXCEPTION.
func NewApp(cfg AppConfig, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return respond(c, dto.Fail[any](codeForStatus(fe.Code), fe.Message))
			}
			return fail(c, dto.CodeException, err.Error())
		},
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(AccessLog(log))
	if cfg.CORSOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: cfg.CORSOrigins,
			AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + HeaderIdempotencyKey,
		}))
	}
	if cfg.RateMax > 0 {
		app.Use(limiter.New(limiter.Config{
			Next:       func(c *fiber.Ctx) bool { return c.Path() == "/health" },
			Max:        cfg.RateMax,
			Expiration: cfg.RateWindow,
			LimitReached: func(c *fiber.Ctx) error {
				return fail(c, dto.CodeRateLimited, "demasiadas peticiones, intente más tarde")
			},
		}))
	}
	if cfg.SwaggerFile != "" {
		// Swagger UI: http://localhost:<port>/docs
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.SwaggerFile,
			Path:     "docs",
			Title:    "Inventario y Ventas API",
		}))
	}
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.Name})
	})
	return app
}

// codeForStatus traduce el status de un *fiber.Error al código de envelope.
// Los 4xx sin código propio son INVALID_MODEL; el resto, EXCEPTION.
func codeForStatus(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return dto.CodeNotFound
	case fiber.StatusMethodNotAllowed:
		return dto.CodeMethodNotAllowed
	case fiber.StatusRequestTimeout:
		return dto.CodeRequestTimeout
	case fiber.StatusUnauthorized:
		return dto.CodeUnauthorized
	case fiber.StatusForbidden:
		return dto.CodeForbidden
	case fiber.StatusConflict:
		return dto.CodeConflict
	case fiber.StatusTooManyRequests:
		return dto.CodeRateLimited
	}
	if status >= 400 && status < 500 {
		return dto.CodeInvalidModel
	}
	return dto.CodeException
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	GoodsUC     *usecase.GoodsUseCase
	WarehouseUC *usecase.WarehouseUseCase
	CustomerUC  *usecase.CustomerUseCase
	UserUC      *usecase.UserUseCase

	RegisterMovement *inventory.RegisterMovementUseCase
	StockQuery       *inventory.StockQueryUseCase
	Replenishment    *inventory.ReplenishmentUseCase

	CreateSale   *sales.CreateSaleUseCase
	VoucherQuery *sales.VoucherQueryUseCase
	ReturnSale   *sales.ReturnSaleUseCase
	Export       *sales.ExportUseCase
	Dashboard    *analytics.DashboardUseCase

	// Idempotency nil desactiva la deduplicación por Idempotency-Key.
	Idempotency *cache.IdempotencyStore
	JWTSecret   string
	Log         zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	idem := func(c *fiber.Ctx) error { return c.Next() }
	if deps.Idempotency != nil {
		idem = Idempotency(deps.Idempotency, deps.Log)
	}

	anyRole := RequireRole(RoleAdmin, RoleVendedor, RoleBodeguero)
	sellers := RequireRole(RoleAdmin, RoleVendedor)
	warehouseStaff := RequireRole(RoleAdmin, RoleBodeguero)
	adminOnly := RequireRole(RoleAdmin)

	// Ventas
	saleHandler := NewSaleHandler(deps.CreateSale, deps.VoucherQuery, deps.ReturnSale, deps.Export)
	salesGroup := protected.Group("/sales")
	salesGroup.Post("/", sellers, idem, saleHandler.Create)
	salesGroup.Get("/", sellers, saleHandler.List)
	salesGroup.Get("/:id", sellers, saleHandler.GetByID)
	salesGroup.Get("/:id/pdf", sellers, saleHandler.PDF)
	salesGroup.Get("/:id/xml", sellers, saleHandler.XML)
	salesGroup.Post("/:id/returns", sellers, idem, saleHandler.Return)

	dashboardHandler := NewDashboardHandler(deps.Dashboard)
	protected.Get("/dashboard/summary", sellers, dashboardHandler.Summary)

	// Mercancías: lectura para todos, escritura admin
	goodsHandler := NewGoodsHandler(deps.GoodsUC)
	goods := protected.Group("/goods")
	goods.Get("/", anyRole, goodsHandler.List)
	goods.Get("/:id", anyRole, goodsHandler.GetByID)
	goods.Post("/", adminOnly, goodsHandler.Create)
	goods.Put("/:id", adminOnly, goodsHandler.Update)
	goods.Delete("/:id", adminOnly, goodsHandler.Delete)

	// Inventario
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.StockQuery, deps.Replenishment)
	inv := protected.Group("/inventory")
	inv.Post("/movements", warehouseStaff, idem, inventoryHandler.RegisterMovement)
	inv.Get("/movements", warehouseStaff, inventoryHandler.Movements)
	inv.Get("/stock", anyRole, inventoryHandler.Stock)
	inv.Get("/replenishment", warehouseStaff, inventoryHandler.Replenishment)

	// Bodegas
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses := protected.Group("/warehouses")
	warehouses.Get("/", anyRole, warehouseHandler.List)
	warehouses.Get("/:id", anyRole, warehouseHandler.GetByID)
	warehouses.Post("/", adminOnly, warehouseHandler.Create)
	warehouses.Put("/:id", adminOnly, warehouseHandler.Update)

	// Clientes
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers := protected.Group("/customers")
	customers.Get("/", sellers, customerHandler.List)
	customers.Get("/:id", sellers, customerHandler.GetByID)
	customers.Post("/", sellers, customerHandler.Create)

	// Usuarios
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users", adminOnly)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
}
