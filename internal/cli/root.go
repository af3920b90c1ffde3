// Package cli implements the planta command tree: the terminal front-end
// for the plant-production records backend.
package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/envaplast/planta-cli/internal/backend"
	"github.com/envaplast/planta-cli/internal/config"
	"github.com/envaplast/planta-cli/internal/core/ports"
	"github.com/envaplast/planta-cli/internal/core/service"
	"github.com/envaplast/planta-cli/internal/store"
	"github.com/envaplast/planta-cli/pkg/logger"
)

// app bundles the wired dependencies every subcommand needs. Built once in
// the root command's PersistentPreRunE.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	store   ports.CredentialStore
	auth    ports.AuthClient
	records ports.RecordsClient
	session *service.Session
}

var current *app

var rootCmd = &cobra.Command{
	Use:   "planta",
	Short: "Cliente de terminal para el registro de producción de planta",
	Long: `planta es el cliente de terminal para el sistema de registros de
producción: inicio de sesión, consulta de perfil y permisos, y registro y
listado de lotes de envases producidos.

La sesión se guarda localmente y se reutiliza entre ejecuciones hasta cerrar
sesión con "planta logout".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp(cmd.Context())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func initApp(ctx context.Context) error {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	credStore, err := buildStore(ctx, cfg, log)
	if err != nil {
		return err
	}

	client := backend.NewClient(cfg.APIBaseURL, cfg.RequestTimeout, credStore, log)
	auth := backend.NewAuthService(client, credStore)

	current = &app{
		cfg:     cfg,
		log:     log,
		store:   credStore,
		auth:    auth,
		records: backend.NewRecordsService(client),
		session: service.NewSession(auth, credStore, log),
	}
	return nil
}

// buildStore selects the credential store: Redis when an address is
// configured (shared kiosk terminals), the per-user file otherwise.
func buildStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.CredentialStore, error) {
	if cfg.Redis.Addr != "" {
		client, err := store.Connect(ctx, store.RedisConfig{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, fmt.Errorf("connecting to credential store: %w", err)
		}
		return store.NewRedisStore(client, log), nil
	}
	return store.NewFileStore(cfg.CredentialsFile, log)
}

// Execute runs the command tree. The caller decides the exit code.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
