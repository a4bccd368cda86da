package cli

import (
	"github.com/spf13/cobra"

	dbpkg "github.com/BruksfildServices01/solar-scheduler/internal/db"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create tables and exclusion constraints",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			db, err := dbpkg.NewDB(cfg)
			if err != nil {
				return err
			}
			if err := dbpkg.Migrate(db, log); err != nil {
				return err
			}
			log.Info("migration finished")
			return nil
		},
	}
}
