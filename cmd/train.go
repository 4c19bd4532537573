package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/zpam/nbayes/pkg/document"
	"github.com/zpam/nbayes/pkg/learning"
	"github.com/zpam/nbayes/pkg/profiler"
)

var (
	trainSpamDir    string
	trainHamDir     string
	trainModelPath  string
	trainWorkers    int
	trainKeepHeader bool
	trainFormat     string
	trainProfile    bool
	trainTop        int
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the Naive Bayes model",
	Long: `Train the presence-only Naive Bayes model from directories of ham and spam documents.

Each document counts once per distinct token. The trained model replaces any
model already in the configured store.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if trainSpamDir == "" && trainHamDir == "" {
			return fmt.Errorf("at least one of --spam-dir or --ham-dir must be specified")
		}

		env, err := newEnvironment(cmd)
		if err != nil {
			return err
		}
		defer env.close()
		applyModelFlag(cmd, env, trainModelPath)

		if cmd.Flags().Changed("workers") {
			env.cfg.Training.Workers = trainWorkers
		}
		if cmd.Flags().Changed("keep-header") {
			env.cfg.Tokenizer.SkipHeader = !trainKeepHeader
		}
		if cmd.Flags().Changed("format") {
			env.cfg.Training.Format = trainFormat
		}

		opts, err := env.documentOptions()
		if err != nil {
			return err
		}

		hams, err := listDir(trainHamDir, opts)
		if err != nil {
			return fmt.Errorf("failed to list ham documents: %w", err)
		}
		spams, err := listDir(trainSpamDir, opts)
		if err != nil {
			return fmt.Errorf("failed to list spam documents: %w", err)
		}

		s, err := env.openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		fmt.Printf("🧠 Naive Bayes Training\n")
		fmt.Printf("═══════════════════════════════════════\n")
		if trainHamDir != "" {
			fmt.Printf("📁 Ham directory: %s (%d documents)\n", trainHamDir, len(hams))
		}
		if trainSpamDir != "" {
			fmt.Printf("📁 Spam directory: %s (%d documents)\n", trainSpamDir, len(spams))
		}
		fmt.Printf("💾 Model store: %s\n", s.Location())
		fmt.Printf("⚙️  Workers: %d, skip header: %v, format: %s\n",
			env.cfg.Training.Workers, env.cfg.Tokenizer.SkipHeader, opts.Format)
		fmt.Printf("\n")

		var extra []learning.Recorder
		var prof *profiler.Profiler
		if trainProfile {
			prof = profiler.NewProfiler()
			extra = append(extra, prof)
		}

		start := time.Now()
		trainer := learning.NewTrainer(env.learningOptions(env.cfg.Training.Workers, extra...)...)
		model, err := trainer.Train(cmd.Context(), hams, spams)
		if err != nil {
			return fmt.Errorf("failed to train model: %w", err)
		}
		duration := time.Since(start)

		if err := s.Save(cmd.Context(), model); err != nil {
			return fmt.Errorf("failed to save model: %w", err)
		}

		total := len(hams) + len(spams)
		fmt.Printf("🎉 Training Complete!\n")
		fmt.Printf("🆔 Model ID: %s\n", model.ID())
		fmt.Printf("📊 Total documents processed: %d\n", total)
		fmt.Printf("⏱️  Time taken: %v\n", duration)
		if duration > 0 {
			fmt.Printf("📈 Rate: %.0f documents/second\n", float64(total)/duration.Seconds())
		}
		fmt.Printf("💾 Model saved to: %s\n", s.Location())

		fmt.Printf("\n")
		learning.PrintStats(os.Stdout, model, trainTop)

		if prof != nil {
			fmt.Printf("\n")
			prof.PrintReport(os.Stdout)
		}

		return nil
	},
}

// listDir lists a training directory; an empty path yields no documents
func listDir(dir string, opts document.Options) ([]document.Document, error) {
	if dir == "" {
		return nil, nil
	}
	return document.Dir(dir, opts)
}

// applyModelFlag points the file store at --model when it was given
func applyModelFlag(cmd *cobra.Command, env *environment, path string) {
	if cmd.Flags().Changed("model") {
		env.cfg.Store.Backend = "file"
		env.cfg.Store.ModelPath = path
	}
}

func init() {
	trainCmd.Flags().StringVarP(&trainSpamDir, "spam-dir", "s", "", "Directory containing spam documents")
	trainCmd.Flags().StringVar(&trainHamDir, "ham-dir", "", "Directory containing ham documents")
	trainCmd.Flags().StringVarP(&trainModelPath, "model", "m", "", "Model file path (overrides store config)")
	trainCmd.Flags().IntVarP(&trainWorkers, "workers", "j", 1, "Number of documents read concurrently")
	trainCmd.Flags().BoolVar(&trainKeepHeader, "keep-header", false, "Keep the first token of each document")
	trainCmd.Flags().StringVar(&trainFormat, "format", "raw", "Document format: raw, mail")
	trainCmd.Flags().BoolVar(&trainProfile, "profile", false, "Print a phase timing report")
	trainCmd.Flags().IntVar(&trainTop, "top", 10, "Number of top tokens to show per class")
}
