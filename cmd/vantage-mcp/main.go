package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/vantage/internal/common"
	"github.com/ternarybob/vantage/pkg/alphavantage"
)

func main() {
	defer common.RecoverWithCrashFile()

	// Load configuration
	var configFiles []string
	if configPath := os.Getenv("VANTAGE_CONFIG"); configPath != "" {
		configFiles = append(configFiles, configPath)
	} else if _, err := os.Stat("vantage.toml"); err == nil {
		configFiles = append(configFiles, "vantage.toml")
	}

	config, err := common.LoadFromFiles(configFiles...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// stdout carries the protocol stream, so logs only go to file
	config.Logging.Output = []string{"file"}
	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}
	logger := common.InitLogger(config)

	// Crash reports sit beside the log file
	if logFile := common.GetLogFilePath(logger); logFile != "" {
		common.InstallCrashHandler(filepath.Dir(logFile))
	} else {
		common.InstallCrashHandler("")
	}

	client, err := config.AlphaVantage.NewClient(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create client: %v\n", err)
		os.Exit(1)
	}

	mcpServer := newMCPServer(client, logger)

	logger.Info().
		Str("version", common.GetFullVersion()).
		Strs("config_files", configFiles).
		Msg("MCP server starting")

	// Start server (blocks on stdio)
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal().Err(err).Msg("MCP server failed")
	}
}

// newMCPServer registers every tool. Handler panics are recovered by the
// server and reported as tool errors.
func newMCPServer(client *alphavantage.Client, logger arbor.ILogger) *server.MCPServer {
	mcpServer := server.NewMCPServer(
		"vantage",
		common.GetVersion(),
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	// Register fundamentals tools
	mcpServer.AddTool(createCompanyOverviewTool(), handleCompanyOverview(client, logger))
	mcpServer.AddTool(createIncomeStatementTool(), handleIncomeStatement(client, logger))
	mcpServer.AddTool(createBalanceSheetTool(), handleBalanceSheet(client, logger))
	mcpServer.AddTool(createCashFlowTool(), handleCashFlow(client, logger))
	mcpServer.AddTool(createEarningsTool(), handleEarnings(client, logger))

	// Register market tools
	mcpServer.AddTool(createTimeSeriesTool(), handleTimeSeries(client, logger))
	mcpServer.AddTool(createNewsSentimentTool(), handleNewsSentiment(client, logger))
	mcpServer.AddTool(createTopGainersLosersTool(), handleTopGainersLosers(client, logger))

	return mcpServer
}
