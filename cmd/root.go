package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zpam/nbayes/pkg/config"
	"github.com/zpam/nbayes/pkg/document"
	"github.com/zpam/nbayes/pkg/learning"
	"github.com/zpam/nbayes/pkg/logging"
	"github.com/zpam/nbayes/pkg/metrics"
	"github.com/zpam/nbayes/pkg/store"
	"github.com/zpam/nbayes/pkg/tokenizer"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "nbayes",
	Short: "nbayes - Naive Bayes ham/spam classifier",
	Long: `nbayes learns a presence-only Bernoulli Naive Bayes model from labeled
ham and spam documents and classifies new documents as ham or spam.

Documents are whitespace-tokenized; the first token ("Subject:") is dropped
unless --keep-header is given.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with a context cancelled on SIGINT/SIGTERM
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(configCmd)
}

// environment holds what every subcommand needs after flags are parsed
type environment struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *metrics.Collector
}

func newEnvironment(cmd *cobra.Command) (*environment, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = logLevel
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	env := &environment{cfg: cfg, logger: logger}
	if cfg.Metrics.Enabled {
		env.metrics = metrics.NewCollector(cfg.Metrics.Namespace, prometheus.NewRegistry(), logger)
	}
	return env, nil
}

// close flushes metrics and the logger
func (e *environment) close() {
	if err := e.metrics.WriteTextfile(e.cfg.Metrics.Textfile); err != nil {
		e.logger.Warn("failed to write metrics", zap.Error(err))
	}
	_ = e.logger.Sync()
}

func (e *environment) policy() tokenizer.Policy {
	return tokenizer.Policy{SkipHeader: e.cfg.Tokenizer.SkipHeader}
}

func (e *environment) documentOptions() (document.Options, error) {
	format, err := document.ParseFormat(e.cfg.Training.Format)
	if err != nil {
		return document.Options{}, err
	}
	return document.Options{Extensions: e.cfg.Training.Extensions, Format: format}, nil
}

func (e *environment) openStore() (store.Store, error) {
	s, err := store.New(e.cfg.Store, e.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open model store: %w", err)
	}
	return s, nil
}

func (e *environment) loadModel(ctx context.Context) (*learning.Model, error) {
	s, err := e.openStore()
	if err != nil {
		return nil, err
	}
	defer s.Close()

	model, err := s.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}
	return model, nil
}

// learningOptions builds the options shared by trainer and classifier
func (e *environment) learningOptions(workers int, extra ...learning.Recorder) []learning.Option {
	recorders := append([]learning.Recorder{e.recorder()}, extra...)
	return []learning.Option{
		learning.WithPolicy(e.policy()),
		learning.WithWorkers(workers),
		learning.WithLogger(e.logger),
		learning.WithRecorder(learning.Recorders(recorders...)),
	}
}

// recorder returns the metrics collector as a Recorder, or nil when
// metrics are disabled
func (e *environment) recorder() learning.Recorder {
	if e.metrics == nil {
		return nil
	}
	return e.metrics
}
