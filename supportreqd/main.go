package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/oclaw/supportreq/common"
	"github.com/oclaw/supportreq/config"
	"github.com/oclaw/supportreq/core"
	rpcserver "github.com/oclaw/supportreq/rpc/server"

	"github.com/spf13/cobra"
)

func initConfig(configPath string) (*config.SupportRequestConfig, error) {
	var err error
	if configPath == "" {
		configPath, err = config.DefaultLoc()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.ReadFrom(configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", configPath, err)
		}
		fmt.Fprintf(os.Stderr, "config does not exist, will create default one at %s\n", configPath)
		cfg = config.DefaultSupportRequestConfig()
		if err := cfg.Save(configPath); err != nil {
			return nil, fmt.Errorf("save config: %w", err)
		}
	}

	return cfg, nil
}

func run(ctx context.Context, configPath string) error {
	cfg, err := initConfig(configPath)
	if err != nil {
		return err
	}

	logger := common.NewLogger(os.Stderr, cfg.LogLevel)

	records, err := core.NewRecordService(cfg, &common.DefaultClock{}, core.UUIDRecordGen, logger)
	if err != nil {
		return err
	}

	server, err := rpcserver.NewServer(cfg, records, logger)
	if err != nil {
		return err
	}

	err = server.Serve(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Info("rpc server stopped")
		return nil
	}
	return err
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var configPath string
	root := cobra.Command{
		Use:          "supportreqd",
		Short:        "Support request record service",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), configPath)
		},
	}
	root.Flags().StringVar(&configPath, "config", "", "path to config.yaml (defaults to the user config dir)")

	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
