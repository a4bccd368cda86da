package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/solar-scheduler/internal/config"
	"github.com/BruksfildServices01/solar-scheduler/internal/logger"
)

var Version = "dev"

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "solar-scheduler",
		Short:         "Agenda de manutenção de usinas solares",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newMigrateCmd())

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap carrega config e logger, comum a todos os comandos.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg := config.Load()
	log, err := logger.NewZapLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
