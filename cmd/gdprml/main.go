// Command gdprml runs the course workflows: recode the census extract,
// train and explain the census income model, and train and explain the SMS
// spam classifier.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/veale/gdpr-ml-course/pkg/model"
)

var (
	logger *zap.Logger

	flagConfig  string
	flagVerbose bool
)

func main() {
	root := &cobra.Command{
		Use:           "gdprml",
		Short:         "Train off-the-shelf classifiers and explain single predictions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if flagVerbose {
				logger, err = zap.NewDevelopment()
			} else {
				logger, err = zap.NewProduction()
			}
			if err != nil {
				return fmt.Errorf("building logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "YAML hyperparameter file (defaults used when empty)")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "development-style logging")

	root.AddCommand(newRecodeCmd(), newCensusCmd(), newSpamCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gdprml:", err)
		os.Exit(1)
	}
}

// loadConfig resolves the trainer configuration: the YAML file when given,
// the course defaults otherwise.
func loadConfig() (model.Config, error) {
	if flagConfig == "" {
		return model.DefaultConfig(), nil
	}
	return model.LoadConfig(flagConfig)
}
