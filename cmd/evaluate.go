package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zpam/nbayes/pkg/document"
	"github.com/zpam/nbayes/pkg/learning"
	"github.com/zpam/nbayes/pkg/report"
)

var (
	evaluateSpamDir   string
	evaluateHamDir    string
	evaluateModelPath string
	evaluateWorkers   int
	evaluateVerbose   bool
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Measure model accuracy on labeled data",
	Long: `Classify held-out ham and spam directories with the trained model and report
accuracy, precision, recall and the confusion matrix. Spam is the positive class.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if evaluateSpamDir == "" && evaluateHamDir == "" {
			return fmt.Errorf("at least one of --spam-dir or --ham-dir must be specified")
		}

		env, err := newEnvironment(cmd)
		if err != nil {
			return err
		}
		defer env.close()
		applyModelFlag(cmd, env, evaluateModelPath)

		if cmd.Flags().Changed("workers") {
			env.cfg.Classification.Workers = evaluateWorkers
		}

		opts, err := env.documentOptions()
		if err != nil {
			return err
		}
		hams, err := listDir(evaluateHamDir, opts)
		if err != nil {
			return fmt.Errorf("failed to list ham documents: %w", err)
		}
		spams, err := listDir(evaluateSpamDir, opts)
		if err != nil {
			return fmt.Errorf("failed to list spam documents: %w", err)
		}

		model, err := env.loadModel(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("🚀 Naive Bayes Evaluation\n")
		fmt.Printf("🆔 Model ID: %s\n", model.ID())
		fmt.Printf("📧 Ham documents: %d, spam documents: %d\n", len(hams), len(spams))
		fmt.Printf("⚡ Workers: %d\n\n", env.cfg.Classification.Workers)

		classifier := learning.NewClassifier(model, env.learningOptions(env.cfg.Classification.Workers)...)

		start := time.Now()
		var eval report.Evaluation
		for _, batch := range []struct {
			label learning.Label
			docs  []document.Document
		}{
			{learning.Ham, hams},
			{learning.Spam, spams},
		} {
			results, err := classifier.Classify(cmd.Context(), batch.docs)
			if err != nil {
				return fmt.Errorf("failed to classify %s documents: %w", batch.label, err)
			}
			eval.AddResults(batch.label, results)

			if evaluateVerbose {
				for _, r := range results {
					if r.Label != batch.label {
						fmt.Printf("  ❌ %s: expected %s, got %s\n", r.Name, batch.label, r.Label)
					}
				}
			}
		}
		duration := time.Since(start)

		eval.Print(os.Stdout)
		fmt.Printf("\n⏱️  Time taken: %v\n", duration)
		if duration > 0 {
			fmt.Printf("📈 Rate: %.0f documents/second\n", float64(eval.Total())/duration.Seconds())
		}
		return nil
	},
}

func init() {
	evaluateCmd.Flags().StringVarP(&evaluateSpamDir, "spam-dir", "s", "", "Directory containing held-out spam documents")
	evaluateCmd.Flags().StringVar(&evaluateHamDir, "ham-dir", "", "Directory containing held-out ham documents")
	evaluateCmd.Flags().StringVarP(&evaluateModelPath, "model", "m", "", "Model file path (overrides store config)")
	evaluateCmd.Flags().IntVarP(&evaluateWorkers, "workers", "j", 1, "Number of documents classified concurrently")
	evaluateCmd.Flags().BoolVarP(&evaluateVerbose, "verbose", "v", false, "List misclassified documents")
}
