package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zpam/nbayes/pkg/document"
	"github.com/zpam/nbayes/pkg/learning"
	"github.com/zpam/nbayes/pkg/report"
)

var (
	classifyInput      string
	classifyModelPath  string
	classifyOutput     string
	classifyWorkers    int
	classifyKeepHeader bool
	classifyFormat     string
)

var classifyCmd = &cobra.Command{
	Use:   "classify [files...]",
	Short: "Classify documents as ham or spam",
	Long: `Classify documents with the trained model and print one line per document.

Documents are given as arguments or as a directory with --input. Results keep
the input order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if classifyInput == "" && len(args) == 0 {
			return fmt.Errorf("no documents given: pass files or --input")
		}

		env, err := newEnvironment(cmd)
		if err != nil {
			return err
		}
		defer env.close()
		applyModelFlag(cmd, env, classifyModelPath)

		if cmd.Flags().Changed("output") {
			env.cfg.Classification.Output = classifyOutput
		}
		if cmd.Flags().Changed("workers") {
			env.cfg.Classification.Workers = classifyWorkers
		}
		if cmd.Flags().Changed("keep-header") {
			env.cfg.Tokenizer.SkipHeader = !classifyKeepHeader
		}
		if cmd.Flags().Changed("format") {
			env.cfg.Training.Format = classifyFormat
		}

		format, err := report.ParseFormat(env.cfg.Classification.Output)
		if err != nil {
			return err
		}
		opts, err := env.documentOptions()
		if err != nil {
			return err
		}

		docs := document.Files(args, opts.Format)
		if classifyInput != "" {
			found, err := document.Dir(classifyInput, opts)
			if err != nil {
				return fmt.Errorf("failed to list documents: %w", err)
			}
			docs = append(docs, found...)
		}

		model, err := env.loadModel(cmd.Context())
		if err != nil {
			return err
		}

		classifier := learning.NewClassifier(model, env.learningOptions(env.cfg.Classification.Workers)...)
		results, err := classifier.Classify(cmd.Context(), docs)
		if err != nil {
			return fmt.Errorf("failed to classify documents: %w", err)
		}

		if err := report.Write(os.Stdout, format, results); err != nil {
			return err
		}

		summary := report.Summarize(results)
		env.logger.Info("classification finished",
			zap.String("model_id", model.ID()),
			zap.Int("documents", summary.Total),
			zap.Int("spam", summary.Spam),
			zap.Int("ham", summary.Ham))
		return nil
	},
}

func init() {
	classifyCmd.Flags().StringVarP(&classifyInput, "input", "i", "", "Directory of documents to classify")
	classifyCmd.Flags().StringVarP(&classifyModelPath, "model", "m", "", "Model file path (overrides store config)")
	classifyCmd.Flags().StringVarP(&classifyOutput, "output", "o", "text", "Output format: text, json")
	classifyCmd.Flags().IntVarP(&classifyWorkers, "workers", "j", 1, "Number of documents classified concurrently")
	classifyCmd.Flags().BoolVar(&classifyKeepHeader, "keep-header", false, "Keep the first token of each document")
	classifyCmd.Flags().StringVar(&classifyFormat, "format", "raw", "Document format: raw, mail")
}
