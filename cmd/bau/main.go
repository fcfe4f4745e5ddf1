// Command bau es el cliente de línea de comandos del Bau-Portal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/bau-portal/internal/interfaces/cli"
	"github.com/jhoicas/bau-portal/pkg/config"
	"github.com/jhoicas/bau-portal/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		return 1
	}
	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, closeFn, err := cli.Bootstrap(ctx, cfg, log)
	defer closeFn()
	if err != nil {
		log.Error().Err(err).Msg("inicializar cliente")
		return 1
	}
	return cli.Execute(ctx, deps)
}
