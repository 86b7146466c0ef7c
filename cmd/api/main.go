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
	goredis "github.com/redis/go-redis/v9"

	_ "github.com/jhoicas/auditpro-api/docs"
	"github.com/jhoicas/auditpro-api/internal/application/audit"
	"github.com/jhoicas/auditpro-api/internal/application/auth"
	"github.com/jhoicas/auditpro-api/internal/domain/repository"
	"github.com/jhoicas/auditpro-api/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/auditpro-api/internal/infrastructure/pdf"
	"github.com/jhoicas/auditpro-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/auditpro-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/auditpro-api/internal/interfaces/http"
	"github.com/jhoicas/auditpro-api/pkg/config"
	"github.com/jhoicas/auditpro-api/pkg/logger"
)

// @title                      AuditPro API
// @version                    1.0
// @description                Conciliación de inventario: carga del teórico, escaneo físico e informe de discrepancias.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("history_backend", cfg.History.Backend).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
	if len(applied) > 0 {
		log.Info().Strs("migrations", applied).Msg("migraciones aplicadas")
	}

	userRepo := postgres.NewUserRepository(pool)
	sessionRepo := postgres.NewAuditSessionRepository(pool)
	itemRepo := postgres.NewInventoryItemRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Historial reciente: PostgreSQL por defecto o Redis si HISTORY_BACKEND=redis.
	var historyRepo repository.HistoryRepository
	switch cfg.History.Backend {
	case config.HistoryBackendRedis:
		rdb := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		defer rdb.Close()
		historyRepo = infraredis.NewHistoryRepository(rdb, cfg.History.Key)
	default:
		historyRepo = postgres.NewHistoryRepository(pool)
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	seeded, err := authUC.EnsureDefaultAdmin(ctx, cfg.Admin.Password, cfg.Admin.Name)
	if err != nil {
		log.Fatal().Err(err).Msg("sembrar administrador (defina ADMIN_PASSWORD)")
	}
	if seeded {
		log.Warn().Msg("usuario admin creado; cambie ADMIN_PASSWORD en producción")
	}

	auditUC := audit.NewAuditUseCase(
		txRunner, sessionRepo, itemRepo, userRepo, historyRepo,
		excel.NewInventoryParser(), infrapdf.NewMarotoReportGenerator(),
		log.Component("audit"),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimitMB * 1024 * 1024,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "AuditPro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		AuditUC:   auditUC,
		JWTSecret: cfg.JWT.Secret,
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
