package commands

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/homeboard/core/internal/infrastructure/config"
	"github.com/homeboard/core/internal/infrastructure/logger"
	"github.com/homeboard/core/internal/infrastructure/server"
	"github.com/homeboard/core/internal/infrastructure/storage"
	"github.com/homeboard/core/internal/store"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HomeBoard server",
		Long:  "Start the HomeBoard server with all configured routes and middleware",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewResetCommand creates the reset command
func NewResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset the dashboard to its default state",
		Long:  "Drop the persisted dashboard snapshot so the next start reseeds the default tasks, events, family, and widget layout",
		Run: func(cmd *cobra.Command, args []string) {
			runReset()
		},
	}
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print HomeBoard version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("HomeBoard v1.0.0")
		},
	}
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	st, err := storage.New(cfg.Storage)
	if err != nil {
		appLogger.Fatal("Failed to open storage", "error", err)
	}
	defer st.Close()

	srv, err := server.New(cfg, st, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize server", "error", err)
	}

	appLogger.Info("Starting HomeBoard server",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
	)

	if err := srv.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		appLogger.Fatal("Server failed to start", "error", err)
	}
}

func runReset() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	st, err := storage.New(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer st.Close()

	adapter := store.NewAdapter(st, appLogger)
	if err := adapter.Reset(); err != nil {
		log.Fatalf("Failed to reset dashboard state: %v", err)
	}

	fmt.Println("Dashboard state reset; defaults will be seeded on next start")
}
