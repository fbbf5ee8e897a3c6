package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/vantage/internal/report"
	"github.com/ternarybob/vantage/pkg/alphavantage"
)

const (
	defaultStatementPeriods = 4
	defaultBars             = 20
	maxBars                 = 500
)

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

// errorResult reports a failed call as tool text so the model can react to it.
func errorResult(tool string, err error, logger arbor.ILogger) *mcp.CallToolResult {
	kind := alphavantage.KindOf(err)
	logger.Error().Err(err).Str("tool", tool).Str("kind", kind.String()).Msg("Tool call failed")

	switch kind {
	case alphavantage.KindRateLimit:
		return textResult(fmt.Sprintf("Rate limited: %v\n\nWait before retrying.", err))
	case alphavantage.KindAPIKey:
		return textResult(fmt.Sprintf("API key error: %v", err))
	case alphavantage.KindInvalidParameter:
		return textResult(fmt.Sprintf("Invalid parameter: %v", err))
	}
	return textResult(fmt.Sprintf("Error: %v", err))
}

// symbolHandler wraps a single-symbol lookup rendered as markdown.
func symbolHandler(tool string, logger arbor.ILogger, fetch func(ctx context.Context, symbol string) (string, error)) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol, err := request.RequireString("symbol")
		if err != nil || symbol == "" {
			return textResult("Error: symbol parameter is required"), nil
		}

		markdown, err := fetch(ctx, strings.ToUpper(symbol))
		if err != nil {
			return errorResult(tool, err, logger), nil
		}
		return textResult(markdown), nil
	}
}

// handleCompanyOverview implements the company_overview tool
func handleCompanyOverview(client *alphavantage.Client, logger arbor.ILogger) server.ToolHandlerFunc {
	return symbolHandler("company_overview", logger, func(ctx context.Context, symbol string) (string, error) {
		overview, err := client.GetCompanyOverview(ctx, symbol)
		if err != nil {
			return "", err
		}
		return report.Overview(overview), nil
	})
}

// handleIncomeStatement implements the income_statement tool
func handleIncomeStatement(client *alphavantage.Client, logger arbor.ILogger) server.ToolHandlerFunc {
	return symbolHandler("income_statement", logger, func(ctx context.Context, symbol string) (string, error) {
		statement, err := client.GetIncomeStatement(ctx, symbol)
		if err != nil {
			return "", err
		}
		return report.IncomeStatement(statement, defaultStatementPeriods), nil
	})
}

// handleBalanceSheet implements the balance_sheet tool
func handleBalanceSheet(client *alphavantage.Client, logger arbor.ILogger) server.ToolHandlerFunc {
	return symbolHandler("balance_sheet", logger, func(ctx context.Context, symbol string) (string, error) {
		statement, err := client.GetBalanceSheet(ctx, symbol)
		if err != nil {
			return "", err
		}
		return report.BalanceSheet(statement, defaultStatementPeriods), nil
	})
}

// handleCashFlow implements the cash_flow tool
func handleCashFlow(client *alphavantage.Client, logger arbor.ILogger) server.ToolHandlerFunc {
	return symbolHandler("cash_flow", logger, func(ctx context.Context, symbol string) (string, error) {
		statement, err := client.GetCashFlow(ctx, symbol)
		if err != nil {
			return "", err
		}
		return report.CashFlow(statement, defaultStatementPeriods), nil
	})
}

// handleEarnings implements the earnings tool
func handleEarnings(client *alphavantage.Client, logger arbor.ILogger) server.ToolHandlerFunc {
	return symbolHandler("earnings", logger, func(ctx context.Context, symbol string) (string, error) {
		earnings, err := client.GetEarnings(ctx, symbol)
		if err != nil {
			return "", err
		}
		return report.Earnings(earnings, defaultStatementPeriods*2), nil
	})
}

// handleTimeSeries implements the time_series tool
func handleTimeSeries(client *alphavantage.Client, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol, err := request.RequireString("symbol")
		if err != nil || symbol == "" {
			return textResult("Error: symbol parameter is required"), nil
		}

		asset := alphavantage.AssetClass(strings.ToLower(request.GetString("asset_class", string(alphavantage.AssetStock))))
		granularity := alphavantage.Granularity(strings.ToLower(request.GetString("granularity", string(alphavantage.Daily))))

		var opts []alphavantage.QueryOption
		if interval := request.GetString("interval", ""); interval != "" {
			opts = append(opts, alphavantage.WithInterval(interval))
		}
		if size := request.GetString("outputsize", ""); size != "" {
			opts = append(opts, alphavantage.WithOutputSize(size))
		}

		// Parse limit (default: 20, max: 500)
		limit := request.GetInt("limit", defaultBars)
		if limit <= 0 {
			limit = defaultBars
		}
		if limit > maxBars {
			limit = maxBars
		}

		series, err := client.GetTimeSeries(ctx, asset, granularity, alphavantage.TimeSeriesRequest{
			Symbol:   strings.ToUpper(symbol),
			Market:   strings.ToUpper(request.GetString("market", "")),
			ToSymbol: strings.ToUpper(request.GetString("to_symbol", "")),
			Options:  opts,
		})
		if err != nil {
			return errorResult("time_series", err, logger), nil
		}
		return textResult(report.TimeSeries(series, limit)), nil
	}
}

// handleNewsSentiment implements the news_sentiment tool
func handleNewsSentiment(client *alphavantage.Client, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		opts := []alphavantage.QueryOption{
			alphavantage.WithLimit(request.GetInt("limit", alphavantage.DefaultNewsLimit)),
		}
		if tickers := request.GetStringSlice("tickers", nil); len(tickers) > 0 {
			opts = append(opts, alphavantage.WithTickers(tickers...))
		}
		if topics := request.GetStringSlice("topics", nil); len(topics) > 0 {
			opts = append(opts, alphavantage.WithTopics(topics...))
		}
		if sort := request.GetString("sort", ""); sort != "" {
			opts = append(opts, alphavantage.WithSort(strings.ToUpper(sort)))
		}

		news, err := client.GetNewsSentiment(ctx, opts...)
		if err != nil {
			return errorResult("news_sentiment", err, logger), nil
		}
		return textResult(report.News(news)), nil
	}
}

// handleTopGainersLosers implements the top_gainers_losers tool
func handleTopGainersLosers(client *alphavantage.Client, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		movers, err := client.GetTopGainersLosers(ctx)
		if err != nil {
			return errorResult("top_gainers_losers", err, logger), nil
		}
		return textResult(report.Movers(movers)), nil
	}
}
