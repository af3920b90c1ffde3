// planta-stub runs a local stand-in for the production-records backend so
// the planta client can be developed and demoed offline.
//
//	PLANTA_API_URL=http://localhost:3300 planta login
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/envaplast/planta-cli/internal/config"
	"github.com/envaplast/planta-cli/internal/stub"
	"github.com/envaplast/planta-cli/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	e, err := stub.NewServer(cfg.Stub, log)
	if err != nil {
		log.Fatal().Err(err).Msg("building stub server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.Stub.Port
		log.Info().Str("addr", addr).Msg("stub backend listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("stub server failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
