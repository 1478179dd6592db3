// Command earnershub serves the EarnersHub review platform and exposes its
// actions on the command line.
package main

import (
	"os"

	"earnershub/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "earnershub",
	Short: "EarnersHub - earning app reviews and credibility",
	Long: `EarnersHub collects reviews of online earning apps, classifies their
sentiment with a Naive Bayes model trained on the stored reviews and rates
app credibility from the sentiment distribution. It also keeps a community
directory of earning sources.

Run "earnershub serve" for the web application.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: $CONFIG_PATH or "+config.DefaultPath+")")

	sourcesCmd.AddCommand(sourcesListCmd)
	sourcesCmd.AddCommand(sourcesAddCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(reviewsCmd)
	rootCmd.AddCommand(credibilityCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(migrateCmd)
}

// setup loads the configuration and builds the logger shared by every command
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	l, err := loaded.NewLogger()
	if err != nil {
		return err
	}
	cfg, logger = loaded, l
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
