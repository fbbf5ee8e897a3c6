package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ternarybob/vantage/internal/report"
	"github.com/ternarybob/vantage/pkg/alphavantage"
)

const dateFlagLayout = "2006-01-02"

var (
	newsTickers []string
	newsTopics  []string
	newsSort    string
	newsLimit   int
	newsFrom    string
	newsTo      string
)

var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "Show news articles with sentiment scores",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := newsOptions(cmd)
		if err != nil {
			return err
		}

		client, err := newClient()
		if err != nil {
			return err
		}
		result, err := client.GetNewsSentiment(cmd.Context(), opts...)
		if err != nil {
			return err
		}

		symbol := ""
		if len(newsTickers) == 1 {
			symbol = newsTickers[0]
		}
		return emit(cmd, result, snapshotRef{"NEWS_SENTIMENT", symbol}, func() string {
			return report.News(result)
		})
	},
}

var moversCmd = &cobra.Command{
	Use:   "movers",
	Short: "Show the day's top gainers, losers and most active US tickers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		result, err := client.GetTopGainersLosers(cmd.Context())
		if err != nil {
			return err
		}
		return emit(cmd, result, snapshotRef{"TOP_GAINERS_LOSERS", ""}, func() string {
			return report.Movers(result)
		})
	},
}

func newsOptions(cmd *cobra.Command) ([]alphavantage.QueryOption, error) {
	opts := []alphavantage.QueryOption{alphavantage.WithLimit(newsLimit)}
	if len(newsTickers) > 0 {
		opts = append(opts, alphavantage.WithTickers(newsTickers...))
	}
	if len(newsTopics) > 0 {
		opts = append(opts, alphavantage.WithTopics(newsTopics...))
	}
	if newsSort != "" {
		opts = append(opts, alphavantage.WithSort(newsSort))
	}

	if newsFrom != "" || newsTo != "" {
		var from, to time.Time
		var err error
		if newsFrom != "" {
			if from, err = time.Parse(dateFlagLayout, newsFrom); err != nil {
				return nil, &alphavantage.InvalidParameterError{Param: "from", Message: fmt.Sprintf("expected YYYY-MM-DD, got %q", newsFrom)}
			}
		}
		if newsTo != "" {
			if to, err = time.Parse(dateFlagLayout, newsTo); err != nil {
				return nil, &alphavantage.InvalidParameterError{Param: "to", Message: fmt.Sprintf("expected YYYY-MM-DD, got %q", newsTo)}
			}
		}
		opts = append(opts, alphavantage.WithTimeRange(from, to))
	}
	return opts, nil
}

func init() {
	newsCmd.Flags().StringSliceVar(&newsTickers, "tickers", nil, "Tickers to filter by (comma separated)")
	newsCmd.Flags().StringSliceVar(&newsTopics, "topics", nil, "Topics to filter by (comma separated)")
	newsCmd.Flags().StringVar(&newsSort, "sort", "", "LATEST, EARLIEST or RELEVANCE")
	newsCmd.Flags().IntVar(&newsLimit, "limit", alphavantage.DefaultNewsLimit, "Maximum number of articles")
	newsCmd.Flags().StringVar(&newsFrom, "from", "", "Earliest publication date (YYYY-MM-DD)")
	newsCmd.Flags().StringVar(&newsTo, "to", "", "Latest publication date (YYYY-MM-DD)")
}
