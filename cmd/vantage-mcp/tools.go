package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

func symbolTool(name, description string) mcp.Tool {
	return mcp.NewTool(name,
		mcp.WithDescription(description),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Equity ticker symbol, e.g. IBM"),
		),
	)
}

// createCompanyOverviewTool returns the company_overview tool definition
func createCompanyOverviewTool() mcp.Tool {
	return symbolTool("company_overview",
		"Company profile, valuation ratios and key metrics for a listed equity")
}

// createIncomeStatementTool returns the income_statement tool definition
func createIncomeStatementTool() mcp.Tool {
	return symbolTool("income_statement",
		"Annual income statements (revenue, profit, EBITDA, net income), newest first")
}

// createBalanceSheetTool returns the balance_sheet tool definition
func createBalanceSheetTool() mcp.Tool {
	return symbolTool("balance_sheet",
		"Annual balance sheets (assets, liabilities, equity, debt), newest first")
}

// createCashFlowTool returns the cash_flow tool definition
func createCashFlowTool() mcp.Tool {
	return symbolTool("cash_flow",
		"Annual cash flow statements (operating cash flow, capex, dividends), newest first")
}

// createEarningsTool returns the earnings tool definition
func createEarningsTool() mcp.Tool {
	return symbolTool("earnings",
		"Quarterly reported EPS against analyst estimates, with surprise percentage")
}

// createTimeSeriesTool returns the time_series tool definition
func createTimeSeriesTool() mcp.Tool {
	return mcp.NewTool("time_series",
		mcp.WithDescription("OHLCV price bars for a stock, currency pair or digital currency, newest first"),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Stock symbol, forex base currency or digital currency"),
		),
		mcp.WithString("asset_class",
			mcp.Description("stock, forex or crypto (default: stock)"),
		),
		mcp.WithString("granularity",
			mcp.Description("intraday, daily, weekly or monthly (default: daily)"),
		),
		mcp.WithString("market",
			mcp.Description("Quote market for crypto, e.g. USD"),
		),
		mcp.WithString("to_symbol",
			mcp.Description("Quote currency for forex, e.g. USD"),
		),
		mcp.WithString("interval",
			mcp.Description("Intraday bar width: 1min, 5min, 15min, 30min, 60min (default: 5min)"),
		),
		mcp.WithString("outputsize",
			mcp.Description("compact (latest 100 bars) or full"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Bars to show (default: 20)"),
		),
	)
}

// createNewsSentimentTool returns the news_sentiment tool definition
func createNewsSentimentTool() mcp.Tool {
	return mcp.NewTool("news_sentiment",
		mcp.WithDescription("Recent news articles with overall and per-ticker sentiment scores"),
		mcp.WithArray("tickers",
			mcp.WithStringItems(),
			mcp.Description("Filter by tickers, e.g. IBM, CRYPTO:BTC, FOREX:USD"),
		),
		mcp.WithArray("topics",
			mcp.WithStringItems(),
			mcp.Description("Filter by topics, e.g. technology, earnings"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum articles (default: 50, max: 1000)"),
		),
		mcp.WithString("sort",
			mcp.Description("LATEST, EARLIEST or RELEVANCE"),
		),
	)
}

// createTopGainersLosersTool returns the top_gainers_losers tool definition
func createTopGainersLosersTool() mcp.Tool {
	return mcp.NewTool("top_gainers_losers",
		mcp.WithDescription("Top 20 US gainers, losers and most actively traded tickers for the latest session"),
	)
}
