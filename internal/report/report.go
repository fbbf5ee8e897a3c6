// Package report renders client models as markdown for the CLI and the MCP
// server. Values the API did not report render as "n/a".
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ternarybob/vantage/internal/models"
	"github.com/ternarybob/vantage/pkg/alphavantage"
)

// NA is printed in place of absent values.
const NA = "n/a"

// siSuffixes maps SI prefixes to the suffixes used for money.
var siSuffixes = map[string]string{"": "", "k": "K", "M": "M", "G": "B", "T": "T", "P": "Q"}

// Money renders large amounts compactly ("193.00B").
func Money(f alphavantage.Float) string {
	if !f.Valid {
		return NA
	}
	v, prefix := humanize.ComputeSI(f.ValueOrZero())
	suffix, ok := siSuffixes[prefix]
	if !ok {
		return humanize.CommafWithDigits(f.ValueOrZero(), 2)
	}
	return fmt.Sprintf("%.2f%s", v, suffix)
}

// Number renders a float with thousands separators and at most four
// decimals.
func Number(f alphavantage.Float) string {
	if !f.Valid {
		return NA
	}
	return humanize.CommafWithDigits(f.ValueOrZero(), 4)
}

// Count renders an integer with thousands separators.
func Count(i alphavantage.Int) string {
	if !i.Valid {
		return NA
	}
	return humanize.Comma(i.ValueOrZero())
}

// Percent renders percentage points ("3.14%").
func Percent(p alphavantage.Percent) string {
	if !p.Valid {
		return NA
	}
	return fmt.Sprintf("%.2f%%", p.ValueOrZero())
}

// Ratio renders a fraction as a percentage ("0.1234" -> "12.34%").
func Ratio(f alphavantage.Float) string {
	if !f.Valid {
		return NA
	}
	return fmt.Sprintf("%.2f%%", f.ValueOrZero()*100)
}

// Date renders a date or "n/a".
func Date(d alphavantage.Date) string {
	if !d.Valid {
		return NA
	}
	return d.String()
}

func text(s string) string {
	if strings.TrimSpace(s) == "" {
		return NA
	}
	return s
}

func writeField(sb *strings.Builder, label, value string) {
	sb.WriteString(fmt.Sprintf("**%s:** %s\n", label, value))
}

func writeTable(sb *strings.Builder, header []string, rows [][]string) {
	sb.WriteString("| " + strings.Join(header, " | ") + " |\n")
	sb.WriteString("|" + strings.Repeat("---|", len(header)) + "\n")
	for _, row := range rows {
		sb.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
}

// Overview renders a company profile and its key metrics.
func Overview(o *alphavantage.CompanyOverview) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s (%s)\n\n", text(o.Name), o.Symbol))
	writeField(&sb, "Exchange", text(o.Exchange))
	writeField(&sb, "Sector", text(o.Sector))
	writeField(&sb, "Industry", text(o.Industry))
	writeField(&sb, "Currency", text(o.Currency))
	writeField(&sb, "Latest Quarter", Date(o.LatestQuarter))
	sb.WriteString("\n## Valuation\n\n")
	writeTable(&sb, []string{"Metric", "Value"}, [][]string{
		{"Market Cap", Money(o.MarketCapitalization)},
		{"P/E", Number(o.PERatio)},
		{"Forward P/E", Number(o.ForwardPE)},
		{"PEG", Number(o.PEGRatio)},
		{"Price/Book", Number(o.PriceToBookRatio)},
		{"EV/EBITDA", Number(o.EVToEBITDA)},
		{"Beta", Number(o.Beta)},
	})
	sb.WriteString("\n## Fundamentals\n\n")
	writeTable(&sb, []string{"Metric", "Value"}, [][]string{
		{"Revenue (TTM)", Money(o.RevenueTTM)},
		{"EBITDA", Money(o.EBITDA)},
		{"EPS", Number(o.EPS)},
		{"Profit Margin", Ratio(o.ProfitMargin)},
		{"Return on Equity (TTM)", Ratio(o.ReturnOnEquityTTM)},
		{"Dividend Yield", Ratio(o.DividendYield)},
		{"Dividend Date", Date(o.DividendDate)},
	})
	sb.WriteString("\n## Price\n\n")
	writeTable(&sb, []string{"Metric", "Value"}, [][]string{
		{"52 Week High", Number(o.FiftyTwoWeekHigh)},
		{"52 Week Low", Number(o.FiftyTwoWeekLow)},
		{"50 Day Average", Number(o.FiftyDayMovingAverage)},
		{"200 Day Average", Number(o.TwoHundredDayMovingAverage)},
		{"Analyst Target", Number(o.AnalystTargetPrice)},
	})
	return sb.String()
}

// lineItem pulls one value out of a report.
type lineItem[R alphavantage.Report] struct {
	label string
	value func(R) alphavantage.Float
}

// statement renders up to periods annual reports side by side, newest
// first, as the API orders them.
func statement[R alphavantage.Report](title string, s *alphavantage.FinancialStatement[R], periods int, fiscalDate func(R) string, items []lineItem[R]) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s: %s\n\n", title, s.Symbol))

	reports := s.AnnualReports
	if periods > 0 && len(reports) > periods {
		reports = reports[:periods]
	}
	if len(reports) == 0 {
		sb.WriteString("No annual reports.\n")
		return sb.String()
	}

	header := []string{"Line Item"}
	for _, r := range reports {
		header = append(header, fiscalDate(r))
	}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		row := []string{item.label}
		for _, r := range reports {
			row = append(row, Money(item.value(r)))
		}
		rows = append(rows, row)
	}
	writeTable(&sb, header, rows)
	sb.WriteString(fmt.Sprintf("\n%d annual and %d quarterly reports available.\n", len(s.AnnualReports), len(s.QuarterlyReports)))
	return sb.String()
}

// IncomeStatement renders the latest annual income statements.
func IncomeStatement(s *alphavantage.IncomeStatement, periods int) string {
	return statement("Income Statement", s, periods,
		func(r alphavantage.IncomeReport) string { return r.FiscalDateEnding },
		[]lineItem[alphavantage.IncomeReport]{
			{"Total Revenue", func(r alphavantage.IncomeReport) alphavantage.Float { return r.TotalRevenue }},
			{"Gross Profit", func(r alphavantage.IncomeReport) alphavantage.Float { return r.GrossProfit }},
			{"Operating Income", func(r alphavantage.IncomeReport) alphavantage.Float { return r.OperatingIncome }},
			{"EBITDA", func(r alphavantage.IncomeReport) alphavantage.Float { return r.EBITDA }},
			{"Net Income", func(r alphavantage.IncomeReport) alphavantage.Float { return r.NetIncome }},
		})
}

// BalanceSheet renders the latest annual balance sheets.
func BalanceSheet(s *alphavantage.BalanceSheet, periods int) string {
	return statement("Balance Sheet", s, periods,
		func(r alphavantage.BalanceSheetReport) string { return r.FiscalDateEnding },
		[]lineItem[alphavantage.BalanceSheetReport]{
			{"Total Assets", func(r alphavantage.BalanceSheetReport) alphavantage.Float { return r.TotalAssets }},
			{"Total Liabilities", func(r alphavantage.BalanceSheetReport) alphavantage.Float { return r.TotalLiabilities }},
			{"Shareholder Equity", func(r alphavantage.BalanceSheetReport) alphavantage.Float { return r.TotalShareholderEquity }},
			{"Cash & Equivalents", func(r alphavantage.BalanceSheetReport) alphavantage.Float { return r.CashAndCashEquivalentsAtCarryingValue }},
			{"Long Term Debt", func(r alphavantage.BalanceSheetReport) alphavantage.Float { return r.LongTermDebt }},
		})
}

// CashFlow renders the latest annual cash flow statements.
func CashFlow(s *alphavantage.CashFlow, periods int) string {
	return statement("Cash Flow", s, periods,
		func(r alphavantage.CashFlowReport) string { return r.FiscalDateEnding },
		[]lineItem[alphavantage.CashFlowReport]{
			{"Operating Cash Flow", func(r alphavantage.CashFlowReport) alphavantage.Float { return r.OperatingCashflow }},
			{"Capital Expenditures", func(r alphavantage.CashFlowReport) alphavantage.Float { return r.CapitalExpenditures }},
			{"Investing Cash Flow", func(r alphavantage.CashFlowReport) alphavantage.Float { return r.CashflowFromInvestment }},
			{"Financing Cash Flow", func(r alphavantage.CashFlowReport) alphavantage.Float { return r.CashflowFromFinancing }},
			{"Dividend Payout", func(r alphavantage.CashFlowReport) alphavantage.Float { return r.DividendPayout }},
		})
}

// Earnings renders quarterly EPS against estimates.
func Earnings(e *alphavantage.Earnings, quarters int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Earnings: %s\n\n", e.Symbol))

	rows := e.QuarterlyEarnings
	if quarters > 0 && len(rows) > quarters {
		rows = rows[:quarters]
	}
	if len(rows) == 0 {
		sb.WriteString("No quarterly earnings.\n")
		return sb.String()
	}

	table := make([][]string, 0, len(rows))
	for _, q := range rows {
		table = append(table, []string{
			q.FiscalDateEnding,
			Date(q.ReportedDate),
			Number(q.ReportedEPS),
			Number(q.EstimatedEPS),
			Number(q.SurprisePercentage),
		})
	}
	writeTable(&sb, []string{"Quarter", "Reported", "EPS", "Estimate", "Surprise %"}, table)
	return sb.String()
}

// TimeSeries renders up to limit bars, newest first.
func TimeSeries(s *alphavantage.TimeSeries, limit int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", text(s.Meta.Subject())))
	if s.Meta.Information != "" {
		writeField(&sb, "Series", s.Meta.Information)
	}
	writeField(&sb, "Last Refreshed", text(s.Meta.LastRefreshed))
	if s.Meta.Interval != "" {
		writeField(&sb, "Interval", s.Meta.Interval)
	}
	sb.WriteString("\n")

	bars := s.Bars
	if limit > 0 && len(bars) > limit {
		bars = bars[:limit]
	}
	if len(bars) == 0 {
		sb.WriteString("No bars.\n")
		return sb.String()
	}

	rows := make([][]string, 0, len(bars))
	for _, b := range bars {
		rows = append(rows, []string{b.Time, Number(b.Open), Number(b.High), Number(b.Low), Number(b.Close), Money(b.Volume)})
	}
	writeTable(&sb, []string{"Time", "Open", "High", "Low", "Close", "Volume"}, rows)
	if len(s.Bars) > len(bars) {
		sb.WriteString(fmt.Sprintf("\n%d of %d bars shown.\n", len(bars), len(s.Bars)))
	}
	return sb.String()
}

// News renders a news feed with per-ticker sentiment.
func News(n *alphavantage.NewsSentiment) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## News Sentiment (%d articles)\n\n", len(n.Feed)))

	if len(n.Feed) == 0 {
		sb.WriteString("No articles found.\n")
		return sb.String()
	}

	for i, item := range n.Feed {
		sb.WriteString(fmt.Sprintf("### %d. %s\n", i+1, text(item.Title)))
		writeField(&sb, "Source", text(item.Source))
		if item.URL != "" {
			writeField(&sb, "URL", item.URL)
		}
		if item.TimePublished.Valid {
			writeField(&sb, "Published", item.TimePublished.ValueOrZero().Format(time.RFC3339))
		}
		writeField(&sb, "Sentiment", fmt.Sprintf("%s (%s)", text(item.OverallSentimentLabel), Number(item.OverallSentimentScore)))
		if len(item.TickerSentiment) > 0 {
			tickers := make([]string, 0, len(item.TickerSentiment))
			for _, ts := range item.TickerSentiment {
				tickers = append(tickers, fmt.Sprintf("%s %s (%s)", ts.Ticker, text(ts.SentimentLabel), Number(ts.SentimentScore)))
			}
			writeField(&sb, "Tickers", strings.Join(tickers, ", "))
		}
		if item.Summary != "" {
			sb.WriteString("\n" + item.Summary + "\n")
		}
		sb.WriteString("\n---\n\n")
	}

	return sb.String()
}

// Movers renders the top gainers, top losers and most active tickers.
func Movers(m *alphavantage.MarketMovers) string {
	var sb strings.Builder
	sb.WriteString("# Market Movers\n\n")
	writeField(&sb, "Last Updated", text(m.LastUpdated))

	for _, section := range []struct {
		title   string
		entries []alphavantage.MoverEntry
	}{
		{"Top Gainers", m.TopGainers},
		{"Top Losers", m.TopLosers},
		{"Most Actively Traded", m.MostActivelyTraded},
	} {
		sb.WriteString(fmt.Sprintf("\n## %s\n\n", section.title))
		if len(section.entries) == 0 {
			sb.WriteString("None.\n")
			continue
		}
		rows := make([][]string, 0, len(section.entries))
		for _, e := range section.entries {
			rows = append(rows, []string{e.Ticker, Number(e.Price), Number(e.ChangeAmount), Percent(e.ChangePercentage), Count(e.Volume)})
		}
		writeTable(&sb, []string{"Ticker", "Price", "Change", "Change %", "Volume"}, rows)
	}
	return sb.String()
}

// Snapshots renders archive entries for a symbol.
func Snapshots(symbol string, snapshots []*models.Snapshot) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Saved snapshots for %s (%d)\n\n", symbol, len(snapshots)))
	if len(snapshots) == 0 {
		sb.WriteString("No snapshots saved.\n")
		return sb.String()
	}

	rows := make([][]string, 0, len(snapshots))
	for _, s := range snapshots {
		rows = append(rows, []string{
			s.ID,
			s.Function,
			s.FetchedAt.Format(time.RFC3339),
			humanize.Time(s.FetchedAt),
			humanize.Bytes(uint64(len(s.Payload))),
		})
	}
	writeTable(&sb, []string{"ID", "Function", "Fetched", "Age", "Size"}, rows)
	return sb.String()
}

// Snapshot renders one archive entry with its stored payload.
func Snapshot(s *models.Snapshot) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Snapshot %s\n\n", s.ID))
	writeField(&sb, "Function", s.Function)
	writeField(&sb, "Symbol", text(s.Symbol))
	writeField(&sb, "Fetched", fmt.Sprintf("%s (%s)", s.FetchedAt.Format(time.RFC3339), humanize.Time(s.FetchedAt)))
	sb.WriteString("\n```json\n")

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, s.Payload, "", "  "); err != nil {
		sb.Write(s.Payload)
	} else {
		sb.Write(pretty.Bytes())
	}
	sb.WriteString("\n```\n")
	return sb.String()
}
