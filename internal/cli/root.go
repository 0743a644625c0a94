// Package cli contains the reportctl commands.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/pkg/config"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/pkg/logger"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/repository"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/service"
	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/store"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "config.yaml"

// app is the state shared by every subcommand once the root has run.
type app struct {
	configPath string
	cfg        *config.Config
	svc        *service.ReportService
}

// NewRootCmd builds the reportctl command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "reportctl",
		Short: "Generate and manage hotel back-office reports",
		Long: `reportctl runs the report pipeline against the hotel database.

Examples:
  reportctl seed                                   # Insert demo rooms, guests and invoices
  reportctl generate --type financial --format pdf # Write a financial PDF to the current directory
  reportctl list --output yaml                     # Show report history
  reportctl delete <id>                            # Remove a report`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return repository.Close()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", defaultConfigPath, "Path to config file")

	root.AddCommand(
		newGenerateCmd(a),
		newListCmd(a),
		newDeleteCmd(a),
		newSeedCmd(a),
		newShareCmd(a),
	)
	return root
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	path := a.configPath
	if !cmd.Flags().Changed("config") {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	// Keep stdout for command output
	if cfg.Log.Output == "" || cfg.Log.Output == "stdout" {
		cfg.Log.Output = "stderr"
	}
	if err := logger.Init(cfg.Log); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := repository.InitDB(cfg.DatabaseService.Driver, cfg.DatabaseService.DatabaseURL); err != nil {
		return err
	}

	a.cfg = cfg
	a.svc = service.NewFromConfig(cfg, store.NewLocal(), nil)
	return nil
}
