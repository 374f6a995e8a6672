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

	"github.com/JPostigo48/FigurAndoBackend/internal/application/auth"
	"github.com/JPostigo48/FigurAndoBackend/internal/application/collection"
	"github.com/JPostigo48/FigurAndoBackend/internal/application/usecase"
	"github.com/JPostigo48/FigurAndoBackend/internal/infrastructure/postgres"
	infraredis "github.com/JPostigo48/FigurAndoBackend/internal/infrastructure/redis"
	httpRouter "github.com/JPostigo48/FigurAndoBackend/internal/interfaces/http"
	"github.com/JPostigo48/FigurAndoBackend/pkg/config"
	"github.com/JPostigo48/FigurAndoBackend/pkg/logger"
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

	rdb, err := infraredis.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer rdb.Close()

	albumRepo := postgres.NewAlbumRepository(pool)
	figuraRepo := postgres.NewFiguraRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	catalogCache := infraredis.NewCatalogCache(rdb)

	authUC := auth.NewAuthUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	albumUC := usecase.NewAlbumUseCase(albumRepo, figuraRepo, usuarioRepo, txRunner, catalogCache, log)
	figuraUC := usecase.NewFiguraUseCase(albumRepo, figuraRepo, usuarioRepo, txRunner, catalogCache, log)
	inventoryUC := collection.NewInventoryUseCase(txRunner, albumRepo, figuraRepo, usuarioRepo)
	setsUC := collection.NewSetsUseCase(txRunner, usuarioRepo)
	ordersUC := collection.NewOrdersUseCase(txRunner, figuraRepo, usuarioRepo, log)

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
		Title:    "Figurando API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		AlbumUC:     albumUC,
		FiguraUC:    figuraUC,
		InventoryUC: inventoryUC,
		SetsUC:      setsUC,
		OrdersUC:    ordersUC,
		JWTSecret:   cfg.JWT.Secret,
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
