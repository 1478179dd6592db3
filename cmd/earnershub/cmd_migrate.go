package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the prediction log schema",
	Long: `Apply the embedded migrations to the prediction log database configured
under prediction_log (driver and dsn). The CSV files need no migration.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	predictions, err := openPredictionLog(cfg, logger)
	if err != nil {
		return err
	}
	defer predictions.Close()

	fmt.Fprintf(cmd.OutOrStdout(), "Prediction log schema is up to date (%s)\n", cfg.PredictionLog.Driver)
	return nil
}
