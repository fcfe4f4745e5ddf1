// Command devapi levanta el backend REST de desarrollo en memoria, con datos de demostración.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/bau-portal/internal/application/auth"
	"github.com/jhoicas/bau-portal/internal/application/usecase"
	"github.com/jhoicas/bau-portal/internal/infrastructure/memdb"
	httpRouter "github.com/jhoicas/bau-portal/internal/interfaces/http"
	"github.com/jhoicas/bau-portal/pkg/config"
	"github.com/jhoicas/bau-portal/pkg/logger"
)

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
		Msg("iniciando devapi")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET vacío; devapi no puede firmar tokens")
	}

	userRepo := memdb.NewUserRepository()
	betriebRepo := memdb.NewBetriebRepository()
	bedarfRepo := memdb.NewBedarfRepository()

	authUC := auth.NewAuthUseCase(userRepo, betriebRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	bedarfUC := usecase.NewBedarfUseCase(bedarfRepo, betriebRepo)
	betriebUC := usecase.NewBetriebUseCase(betriebRepo, bedarfRepo)

	seed, err := readSeed(cfg.HTTP.SeedFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.HTTP.SeedFile).Msg("datos iniciales")
	}
	nb, nu, nd, err := seeder{
		betriebe: betriebRepo,
		authUC:   authUC,
		bedarfUC: bedarfUC,
		password: cfg.HTTP.SeedPassword,
	}.apply(seed)
	if err != nil {
		log.Fatal().Err(err).Msg("cargar datos iniciales")
	}
	log.Info().
		Int("betriebe", nb).
		Int("users", nu).
		Int("bedarfe", nd).
		Msg("datos de demostración cargados")

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httpRouter.ErrorHandler,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		BedarfUC:  bedarfUC,
		BetriebUC: betriebUC,
		JWTSecret: cfg.JWT.Secret,
		Logger:    log.Component("http"),
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

	log.Info().Msg("devapi detenido")
}
