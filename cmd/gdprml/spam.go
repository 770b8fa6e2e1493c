package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/veale/gdpr-ml-course/pkg/dataset"
	"github.com/veale/gdpr-ml-course/pkg/explain"
	"github.com/veale/gdpr-ml-course/pkg/loader"
	"github.com/veale/gdpr-ml-course/pkg/model"
	"github.com/veale/gdpr-ml-course/pkg/textfeat"
)

func newSpamCmd() *cobra.Command {
	var (
		input    string
		url      string
		testFrac float64
		buckets  int
		index    int
		features int
		samples  int
		chart    string
	)
	cmd := &cobra.Command{
		Use:   "spam",
		Short: "Train the spam classifier and explain one test message",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			var labels, texts []string
			if input != "" {
				labels, texts, err = dataset.ReadSpamArchive(input)
			} else {
				labels, texts, err = dataset.NewClient(nil, logger).FetchSpam(cmd.Context(), url)
			}
			if err != nil {
				return err
			}
			logger.Info("loaded spam collection", zap.Int("messages", len(texts)))

			trainLabels, trainTexts, testLabels, testTexts, err :=
				loader.SplitSlices(labels, texts, testFrac, cfg.Seed)
			if err != nil {
				return err
			}

			hasher, err := textfeat.NewHasher(buckets)
			if err != nil {
				return err
			}
			m, err := model.TrainNaiveBayes(hasher.Matrix(trainTexts),
				trainLabels, hasher.FeatureNames(), dataset.LabelSpam)
			if err != nil {
				return err
			}
			acc, summary, err := m.Evaluate(hasher.Matrix(testTexts), testLabels)
			if err != nil {
				return err
			}
			logger.Info("trained spam classifier",
				zap.Int("train", len(trainTexts)), zap.Int("test", len(testTexts)),
				zap.Float64("test_accuracy", acc))
			logger.Debug("confusion matrix", zap.String("summary", summary))

			if index < 0 || index >= len(testTexts) {
				return fmt.Errorf("%w: %d of %d", explain.ErrIndexOutOfRange, index, len(testTexts))
			}
			message := testTexts[index]
			logger.Info("explaining message",
				zap.Int("index", index), zap.String("label", testLabels[index]),
				zap.String("text", message))

			ecfg := explain.DefaultConfig()
			ecfg.NumFeatures = features
			ecfg.NumSamples = samples
			ecfg.Seed = cfg.Seed

			vec := func(texts []string) ([][]float64, error) {
				return hasher.Matrix(texts), nil
			}
			res, err := explain.Text(textfeat.Tokenize(message), m, vec, ecfg)
			if err != nil {
				return err
			}
			res.Index = index
			logContributions(res)

			if chart != "" {
				if err := explain.RenderBarChart(res, "Why was this message classified?", chart); err != nil {
					return err
				}
				logger.Info("wrote explanation chart", zap.String("path", chart))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "local spam zip archive (fetched when empty)")
	cmd.Flags().StringVar(&url, "url", dataset.SpamURL, "spam archive download URL")
	cmd.Flags().Float64Var(&testFrac, "test-frac", 0.3, "test partition fraction")
	cmd.Flags().IntVar(&buckets, "buckets", 256, "hashing vectorizer bucket count")
	cmd.Flags().IntVar(&index, "index", 0, "test message to explain")
	cmd.Flags().IntVar(&features, "features", 5, "token contributions to surface")
	cmd.Flags().IntVar(&samples, "samples", 1000, "perturbation neighbourhood size")
	cmd.Flags().StringVar(&chart, "chart", "spam_explanation.png", "explanation chart path (empty to skip)")
	return cmd
}
