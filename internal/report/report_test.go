package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ternarybob/vantage/internal/models"
	"github.com/ternarybob/vantage/pkg/alphavantage"
)

func TestValueFormatting(t *testing.T) {
	assert.Equal(t, NA, Money(alphavantage.Float{}))
	assert.Equal(t, "193.00B", Money(alphavantage.FloatOf(193e9)))
	assert.Equal(t, "-1.50M", Money(alphavantage.FloatOf(-1.5e6)))
	assert.Equal(t, "2.90T", Money(alphavantage.FloatOf(2.9e12)))
	assert.Equal(t, "1,234.5", Number(alphavantage.FloatOf(1234.5)))
	assert.Equal(t, NA, Number(alphavantage.Float{}))
	assert.Equal(t, "1,200,345", Count(alphavantage.IntOf(1200345)))
	assert.Equal(t, "98.39%", Percent(alphavantage.PercentOf(98.3871)))
	assert.Equal(t, "12.34%", Ratio(alphavantage.FloatOf(0.1234)))
	assert.Equal(t, NA, Date(alphavantage.Date{}))
	assert.Equal(t, "2024-09-30", Date(alphavantage.DateOf(time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC))))
}

func TestOverviewRendersAbsentAsNA(t *testing.T) {
	out := Overview(&alphavantage.CompanyOverview{
		Symbol:               "IBM",
		Name:                 "International Business Machines",
		MarketCapitalization: alphavantage.FloatOf(193e9),
	})

	assert.Contains(t, out, "# International Business Machines (IBM)")
	assert.Contains(t, out, "| Market Cap | 193.00B |")
	assert.Contains(t, out, "| P/E | n/a |")
	assert.Contains(t, out, "**Sector:** n/a")
}

func TestIncomeStatementColumnsFollowReportOrder(t *testing.T) {
	s := &alphavantage.IncomeStatement{
		Symbol: "IBM",
		AnnualReports: []alphavantage.IncomeReport{
			{FiscalDateEnding: "2023-12-31", TotalRevenue: alphavantage.FloatOf(61.86e9)},
			{FiscalDateEnding: "2022-12-31", TotalRevenue: alphavantage.FloatOf(60.53e9)},
			{FiscalDateEnding: "2021-12-31"},
		},
	}

	out := IncomeStatement(s, 2)

	assert.Contains(t, out, "| Line Item | 2023-12-31 | 2022-12-31 |")
	assert.NotContains(t, out, "2021-12-31 |")
	assert.Contains(t, out, "| Total Revenue | 61.86B | 60.53B |")
	assert.Contains(t, out, "| Net Income | n/a | n/a |")
	assert.Contains(t, out, "3 annual and 0 quarterly reports available.")
}

func TestEmptyStatements(t *testing.T) {
	assert.Contains(t, BalanceSheet(&alphavantage.BalanceSheet{Symbol: "IBM"}, 4), "No annual reports.")
	assert.Contains(t, CashFlow(&alphavantage.CashFlow{Symbol: "IBM"}, 4), "No annual reports.")
	assert.Contains(t, Earnings(&alphavantage.Earnings{Symbol: "IBM"}, 4), "No quarterly earnings.")
}

func TestTimeSeriesLimit(t *testing.T) {
	s := &alphavantage.TimeSeries{
		Meta: alphavantage.SeriesMeta{FromSymbol: "EUR", ToSymbol: "USD", LastRefreshed: "2024-01-05"},
		Bars: []alphavantage.Bar{
			{Time: "2024-01-05", Close: alphavantage.FloatOf(1.0941)},
			{Time: "2024-01-04", Close: alphavantage.FloatOf(1.0945)},
			{Time: "2024-01-03", Close: alphavantage.FloatOf(1.0920)},
		},
	}

	out := TimeSeries(s, 2)

	assert.Contains(t, out, "# EUR/USD")
	assert.Less(t, strings.Index(out, "2024-01-05"), strings.Index(out, "2024-01-04"))
	assert.NotContains(t, out, "2024-01-03")
	assert.Contains(t, out, "2 of 3 bars shown.")
	assert.Contains(t, out, "| 2024-01-05 | n/a | n/a | n/a | 1.0941 | n/a |")
}

func TestNewsAndMovers(t *testing.T) {
	news := &alphavantage.NewsSentiment{
		Feed: []alphavantage.NewsItem{{
			Title:                 "IBM beats estimates",
			Source:                "Example News",
			OverallSentimentLabel: "Bullish",
			OverallSentimentScore: alphavantage.FloatOf(0.41),
			TickerSentiment: []alphavantage.TickerSentiment{
				{Ticker: "IBM", SentimentLabel: "Bullish", SentimentScore: alphavantage.FloatOf(0.5)},
				{Ticker: "MSFT", SentimentLabel: "Neutral"},
			},
		}},
	}
	out := News(news)
	assert.Contains(t, out, "### 1. IBM beats estimates")
	assert.Contains(t, out, "**Tickers:** IBM Bullish (0.5), MSFT Neutral (n/a)")

	movers := &alphavantage.MarketMovers{
		LastUpdated: "2024-01-05 16:15:59 US/Eastern",
		TopGainers: []alphavantage.MoverEntry{
			{Ticker: "ABCD", Price: alphavantage.FloatOf(1.23), ChangeAmount: alphavantage.FloatOf(0.61), ChangePercentage: alphavantage.PercentOf(98.3871), Volume: alphavantage.IntOf(1200345)},
		},
	}
	out = Movers(movers)
	assert.Contains(t, out, "| ABCD | 1.23 | 0.61 | 98.39% | 1,200,345 |")
	assert.Contains(t, out, "## Top Losers\n\nNone.")
}

func TestSnapshots(t *testing.T) {
	out := Snapshots("IBM", []*models.Snapshot{{
		ID:        "snap_1",
		Function:  "OVERVIEW",
		Symbol:    "IBM",
		FetchedAt: time.Now().Add(-2 * time.Hour),
		Payload:   make([]byte, 2048),
	}})

	assert.Contains(t, out, "## Saved snapshots for IBM (1)")
	assert.Contains(t, out, "| snap_1 | OVERVIEW |")
	assert.Contains(t, out, "2 hours ago")
	assert.Contains(t, out, "2.0 kB")

	assert.Contains(t, Snapshots("MSFT", nil), "No snapshots saved.")
}

func TestSnapshotShowsPayload(t *testing.T) {
	out := Snapshot(&models.Snapshot{
		ID:        "snap_1",
		Function:  "OVERVIEW",
		Symbol:    "IBM",
		FetchedAt: time.Now(),
		Payload:   []byte(`{"Symbol":"IBM"}`),
	})

	assert.Contains(t, out, "## Snapshot snap_1")
	assert.Contains(t, out, "**Function:** OVERVIEW")
	assert.Contains(t, out, "```json\n{\n  \"Symbol\": \"IBM\"\n}\n```")
}
