package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd creates or updates the inventory tables.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the inventory database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd.Context(), true)
		if err != nil {
			return err
		}
		a.logger.Info("Inventory schema migrated", zap.String("database", a.cfg.Database.Name))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
