package main

import (
	"context"
	"fmt"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/veale/gdpr-ml-course/pkg/dataprep"
	"github.com/veale/gdpr-ml-course/pkg/dataset"
)

func newRecodeCmd() *cobra.Command {
	var (
		input  string
		url    string
		output string
	)
	cmd := &cobra.Command{
		Use:   "recode",
		Short: "Clean the census extract into analysis-ready categorical features",
		RunE: func(cmd *cobra.Command, args []string) error {
			df, err := readAdult(cmd.Context(), input, url)
			if err != nil {
				return err
			}
			logger.Info("loaded census data", zap.Int("rows", df.Nrow()))

			cleaned, err := dataprep.Clean(df)
			if err != nil {
				return err
			}
			logger.Info("recoded census data",
				zap.Int("rows", cleaned.Nrow()),
				zap.Int("dropped_rows", df.Nrow()-cleaned.Nrow()),
				zap.Strings("columns", cleaned.Names()))

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			defer f.Close()
			if err := cleaned.WriteCSV(f); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			logger.Info("wrote cleaned data", zap.String("path", output))
			return nil
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "local adult.data file (fetched when empty)")
	cmd.Flags().StringVar(&url, "url", dataset.AdultURL, "census download URL")
	cmd.Flags().StringVar(&output, "output", "adult_clean.csv", "output CSV path")
	return cmd
}

func readAdult(ctx context.Context, input, url string) (df dataframe.DataFrame, err error) {
	if input != "" {
		f, err := os.Open(input)
		if err != nil {
			return df, fmt.Errorf("opening %s: %w", input, err)
		}
		defer f.Close()
		return dataset.ReadAdult(f)
	}
	return dataset.NewClient(nil, logger).FetchAdult(ctx, url)
}
