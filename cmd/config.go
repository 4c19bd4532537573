package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zpam/nbayes/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long:  `Generate and manage nbayes configuration files`,
}

var configGenCmd = &cobra.Command{
	Use:   "generate [config-file]",
	Short: "Generate default configuration file",
	Long:  `Generate a configuration file with every option set to its default`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := "config.yaml"
		if len(args) > 0 {
			configPath = args[0]
		}

		// Check if file already exists
		if _, err := os.Stat(configPath); err == nil {
			overwrite, _ := cmd.Flags().GetBool("force")
			if !overwrite {
				return fmt.Errorf("config file already exists: %s (use --force to overwrite)", configPath)
			}
		}

		if err := config.DefaultConfig().SaveConfig(configPath); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Printf("✅ Configuration file generated: %s\n", configPath)
		fmt.Printf("📝 Edit the file to change tokenizer, store and logging settings\n")
		fmt.Printf("🚀 Use 'nbayes train --config %s' to use the configuration\n", configPath)

		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [config-file]",
	Short: "Validate configuration file",
	Long:  `Validate a configuration file for syntax and logical errors`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := args[0]

		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("❌ Configuration validation failed: %w", err)
		}

		fmt.Printf("✅ Configuration is valid: %s\n", configPath)

		if warnings := configWarnings(cfg); len(warnings) > 0 {
			fmt.Printf("\n⚠️  Warnings:\n")
			for _, warning := range warnings {
				fmt.Printf("  - %s\n", warning)
			}
		}

		fmt.Printf("\n📊 Configuration Summary:\n")
		fmt.Printf("  Skip header: %v\n", cfg.Tokenizer.SkipHeader)
		fmt.Printf("  Training workers: %d\n", cfg.Training.Workers)
		fmt.Printf("  Store backend: %s\n", cfg.Store.Backend)
		fmt.Printf("  Log level: %s\n", cfg.Logging.Level)

		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show [config-file]",
	Short: "Show current configuration",
	Long:  `Display the effective configuration as YAML`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if len(args) > 0 {
			path = args[0]
		}

		cfg, err := config.LoadConfig(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if path == "" {
			fmt.Printf("# Default configuration\n")
		} else {
			fmt.Printf("# Configuration: %s\n", path)
		}

		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(cfg)
	},
}

// configWarnings reports settings that are valid but likely unintended
func configWarnings(cfg *config.Config) []string {
	var warnings []string

	if !cfg.Tokenizer.SkipHeader {
		warnings = append(warnings, "skip_header is off: the first token of every document is counted")
	}
	if len(cfg.Training.Extensions) == 0 {
		warnings = append(warnings, "no extension filter: every file under the training directories is read")
	}
	if cfg.Metrics.Enabled && cfg.Metrics.Textfile == "" {
		warnings = append(warnings, "metrics enabled without a textfile path: nothing will be exported")
	}
	if cfg.Store.Backend == "redis" && cfg.Store.ModelPath != "" && cfg.Store.ModelPath != config.DefaultConfig().Store.ModelPath {
		warnings = append(warnings, "model_path is ignored by the redis backend")
	}

	return warnings
}

func init() {
	configCmd.AddCommand(configGenCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configShowCmd)

	configGenCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
