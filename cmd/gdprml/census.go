package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/veale/gdpr-ml-course/pkg/dataprep"
	"github.com/veale/gdpr-ml-course/pkg/dataset"
	"github.com/veale/gdpr-ml-course/pkg/explain"
	"github.com/veale/gdpr-ml-course/pkg/loader"
	"github.com/veale/gdpr-ml-course/pkg/model"
)

const incomeCol = "income"

func newCensusCmd() *cobra.Command {
	var (
		input    string
		url      string
		testFrac float64
		index    int
		features int
		samples  int
		chart    string
		forest   bool
	)
	cmd := &cobra.Command{
		Use:   "census",
		Short: "Train the income network and explain one test prediction",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			raw, err := readAdult(cmd.Context(), input, url)
			if err != nil {
				return err
			}
			cleaned, err := dataprep.Clean(raw)
			if err != nil {
				return err
			}
			logger.Info("cleaned census data",
				zap.Int("raw_rows", raw.Nrow()), zap.Int("rows", cleaned.Nrow()))

			train, test, err := loader.StratifiedSplit(cleaned, incomeCol, testFrac, cfg.Seed)
			if err != nil {
				return err
			}
			logger.Info("partitioned data",
				zap.Int("train", train.Nrow()), zap.Int("test", test.Nrow()),
				zap.Int64("seed", cfg.Seed))

			enc := dataprep.FitOneHot(train, incomeCol)
			trainX, trainY, err := enc.TransformFrame(train, incomeCol)
			if err != nil {
				return err
			}
			testX, testY, err := enc.TransformFrame(test, incomeCol)
			if err != nil {
				return err
			}

			m, err := model.MLPTrainer{}.Fit(trainX, trainY, cfg)
			if err != nil {
				return err
			}
			pred, err := m.Predict(testX)
			if err != nil {
				return err
			}
			prec, rec, f1 := model.PrecisionRecallF1(testY, pred)
			logger.Info("trained income network",
				zap.Float64("test_accuracy", model.Accuracy(testY, pred)),
				zap.Float64("precision", prec),
				zap.Float64("recall", rec),
				zap.Float64("f1", f1))

			if forest {
				fm, err := model.TrainRandomForest(trainX,
					train.Col(incomeCol).Records(), enc.FeatureNames,
					dataprep.PositiveLabel, cfg)
				if err != nil {
					return err
				}
				acc, summary, err := fm.Evaluate(testX, test.Col(incomeCol).Records())
				if err != nil {
					return err
				}
				logger.Info("random forest cross-check", zap.Float64("test_accuracy", acc))
				logger.Debug("confusion matrix", zap.String("summary", summary))
			}

			ecfg := explain.DefaultConfig()
			ecfg.NumFeatures = features
			ecfg.NumSamples = samples
			ecfg.Seed = cfg.Seed

			res, err := explain.Tabular(enc.Columns,
				dataprep.FeatureRecords(train, incomeCol),
				dataprep.FeatureRecords(test, incomeCol),
				index, m, explain.Encoder(enc.Transform), ecfg)
			if err != nil {
				return err
			}
			logContributions(res)

			if chart != "" {
				if err := explain.RenderBarChart(res, "Why this income prediction?", chart); err != nil {
					return err
				}
				logger.Info("wrote explanation chart", zap.String("path", chart))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "local adult.data file (fetched when empty)")
	cmd.Flags().StringVar(&url, "url", dataset.AdultURL, "census download URL")
	cmd.Flags().Float64Var(&testFrac, "test-frac", 0.3, "test partition fraction")
	cmd.Flags().IntVar(&index, "index", 0, "test instance to explain")
	cmd.Flags().IntVar(&features, "features", 5, "contributions to surface")
	cmd.Flags().IntVar(&samples, "samples", 1000, "perturbation neighbourhood size")
	cmd.Flags().StringVar(&chart, "chart", "census_explanation.png", "explanation chart path (empty to skip)")
	cmd.Flags().BoolVar(&forest, "forest", false, "also train a random forest cross-check")
	return cmd
}

func logContributions(res *explain.Result) {
	logger.Info("explained instance",
		zap.Int("index", res.Index), zap.Float64("score", res.Score))
	for _, c := range res.Contributions {
		logger.Info("contribution",
			zap.String("feature", c.Feature), zap.Float64("weight", c.Weight))
	}
}
