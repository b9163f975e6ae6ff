package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/de-tools/statement-atlas/pkg/runtime/bootstrap"
	"github.com/de-tools/statement-atlas/pkg/server"
	"github.com/de-tools/statement-atlas/pkg/services/config"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	envFile string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:          "web",
		Short:        "Start the web server for Statement Atlas",
		SilenceUsage: true,
		RunE:         runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to the configuration file")
	rootCmd.Flags().StringVar(&envFile, "env-file", ".env", "Environment file loaded before the configuration")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := bootstrap.LoadEnv(envFile); err != nil {
		return err
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := bootstrap.Logger(cfg.Log, os.Stdout)
	if err != nil {
		return err
	}
	ctx := logger.WithContext(cmd.Context())

	rt, err := bootstrap.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize runtime: %w", err)
	}
	defer rt.Close()

	logger.Info().
		Str("source", cfg.Source.Kind).
		Strs("statements", rt.Service.ListTypes()).
		Msg("configuration loaded")

	api := server.NewWebAPI(server.Config{
		Addr:            cfg.Server.Addr(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Statements: rt.Service,
			Logger:     logger,
		},
	})

	if err := api.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
