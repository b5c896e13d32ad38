package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/oclaw/supportreq/common"
	"github.com/oclaw/supportreq/config"
	"github.com/oclaw/supportreq/core"
	"github.com/oclaw/supportreq/rpc"
	"github.com/oclaw/supportreq/types"

	"github.com/spf13/cobra"
)

type app struct {
	config *config.SupportRequestConfig
	client *rpc.Client
	logger *slog.Logger
	cancel context.CancelFunc
}

func (a *app) close() {
	if a.cancel != nil {
		a.cancel()
	}
}

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

	cfg.InitMode = config.NotifierInitOnDemand

	return cfg, nil
}

// support for record creation
func buildCreateCommand(a *app) *cobra.Command {
	var (
		subject  string
		recordID string
	)

	createCommand := &cobra.Command{
		Use:   "create",
		Short: "create a support request and print its id",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.client.SaveRecord(cmd.Context(), &types.RecordRequest{
				RecordID: types.RecordID(recordID),
				Subject:  subject,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	createCommand.Flags().StringVar(&subject, "subject", "", "short description of the request")
	createCommand.Flags().StringVar(&recordID, "record-id", "", "externally defined record id (generated by default)")
	return createCommand
}

func buildStatusCommand(a *app) *cobra.Command {
	var recordID string

	statusCommand := &cobra.Command{
		Use:   "status",
		Short: "print the current status of a support request",
		RunE: func(cmd *cobra.Command, args []string) error {
			view := &recordView{
				lookup: a.client,
				id:     types.RecordID(recordID),
				out:    cmd.OutOrStdout(),
				logger: a.logger,
			}
			return view.Render(cmd.Context())
		},
	}
	statusCommand.Flags().StringVar(&recordID, "record-id", "", "support request id")
	return statusCommand
}

// support for the process action
func buildProcessCommand(a *app) *cobra.Command {
	var recordID string

	processCommand := &cobra.Command{
		Use:   "process",
		Short: "process a support request unless it is already closed",
		RunE: func(cmd *cobra.Command, args []string) error {
			id := types.RecordID(recordID)

			notifier, err := core.NewNotificationRouter(a.config, cmd.OutOrStdout(), a.logger)
			if err != nil {
				return err
			}

			action := core.NewProcessAction(a.config, core.ProcessActionDeps{
				Lookup:    a.client,
				Processor: a.client,
				Notifier:  notifier,
				Refresher: &recordView{
					lookup: a.client,
					id:     id,
					out:    cmd.OutOrStdout(),
					logger: a.logger,
				},
				Logger: a.logger,
			})

			if state := action.Run(cmd.Context(), id); state != types.StateDone {
				return fmt.Errorf("record %s was not processed (%s)", id, state)
			}
			return nil
		},
	}
	processCommand.Flags().StringVar(&recordID, "record-id", "", "support request id")
	return processCommand
}

func setupRootCommand(a *app) *cobra.Command {
	var configPath string

	root := cobra.Command{
		Use:           os.Args[0],
		Short:         "Support request processing utility",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := initConfig(configPath)
			if err != nil {
				return err
			}

			client, err := rpc.NewClient(cfg.RPCSocketName)
			if err != nil {
				return err
			}

			a.config = cfg
			a.client = client
			a.logger = common.NewLogger(os.Stderr, cfg.LogLevel)

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Second*time.Duration(cfg.DeadlineSec))
			a.cancel = cancel
			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml (defaults to the user config dir)")

	root.AddCommand(
		buildCreateCommand(a),
		buildStatusCommand(a),
		buildProcessCommand(a),
	)
	return &root
}

func main() {
	a := &app{}
	defer a.close()

	root := setupRootCommand(a)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "supportreq: %v\n", err)
		a.close()
		os.Exit(1)
	}
}
