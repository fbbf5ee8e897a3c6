package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/vantage/internal/common"
	"github.com/ternarybob/vantage/pkg/alphavantage"
)

var (
	// Command-line flags
	configFiles  []string // Multiple --config flags supported
	apiKeyFlag   string
	outputFlag   string
	logLevelFlag string
	saveFlag     bool

	// Global state
	config *common.Config
	logger arbor.ILogger
)

var rootCmd = &cobra.Command{
	Use:           "vantage",
	Short:         "Query the Alpha Vantage API",
	Long:          `Fetches company fundamentals, price series, news sentiment and market movers from Alpha Vantage.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringArrayVarP(&configFiles, "config", "c", nil, "Configuration file path (can be specified multiple times, later files override earlier ones)")
	flags.StringVar(&apiKeyFlag, "api-key", "", "Alpha Vantage API key (overrides config and "+alphavantage.EnvAPIKey+")")
	flags.StringVarP(&outputFlag, "output", "o", "", "Output format: text, json or yaml")
	flags.StringVar(&logLevelFlag, "log-level", "", "Log level: trace, debug, info, warn or error")
	flags.BoolVar(&saveFlag, "save", false, "Save the result to the snapshot archive")

	rootCmd.AddCommand(
		versionCmd,
		overviewCmd,
		incomeCmd,
		balanceCmd,
		cashflowCmd,
		earningsCmd,
		stockCmd,
		forexCmd,
		cryptoCmd,
		newsCmd,
		moversCmd,
		historyCmd,
		showCmd,
	)
}

// loadConfig resolves configuration: defaults -> files -> .env -> env -> flags.
func loadConfig() error {
	// Auto-discover config file if not specified
	if len(configFiles) == 0 {
		if _, err := os.Stat("vantage.toml"); err == nil {
			configFiles = append(configFiles, "vantage.toml")
		}
	}

	var err error
	config, err = common.LoadFromFiles(configFiles...)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	common.ApplyFlagOverrides(config, apiKeyFlag, logLevelFlag, outputFlag)

	if err := config.Validate(); err != nil {
		return err
	}

	logger = common.InitLogger(config)

	logger.Debug().
		Strs("config_files", configFiles).
		Str("base_url", config.AlphaVantage.BaseURL).
		Str("timeout", config.AlphaVantage.Timeout).
		Str("output", config.Output.Format).
		Bool("api_key_set", config.AlphaVantage.APIKey != "").
		Msg("Resolved configuration (sanitized)")

	return nil
}

// newClient builds the API client from the resolved configuration.
func newClient() (*alphavantage.Client, error) {
	return config.AlphaVantage.NewClient(logger)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode distinguishes usage and credential problems from API failures.
func exitCode(err error) int {
	switch alphavantage.KindOf(err) {
	case alphavantage.KindAPIKey:
		return 3
	case alphavantage.KindRateLimit:
		return 4
	case alphavantage.KindInvalidParameter:
		return 2
	}
	return 1
}
