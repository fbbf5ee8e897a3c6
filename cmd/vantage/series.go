package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ternarybob/vantage/internal/report"
	"github.com/ternarybob/vantage/pkg/alphavantage"
)

// seriesFlags holds the flags shared by stock, forex and crypto.
type seriesFlags struct {
	granularity string
	interval    string
	outputSize  string
	adjusted    bool
	month       string
	bars        int
}

var (
	stockFlags  seriesFlags
	forexFlags  seriesFlags
	cryptoFlags seriesFlags
)

var stockCmd = &cobra.Command{
	Use:   "stock SYMBOL",
	Short: "Show equity price bars",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeries(cmd, alphavantage.AssetStock, &stockFlags, alphavantage.TimeSeriesRequest{
			Symbol: args[0],
		})
	},
}

var forexCmd = &cobra.Command{
	Use:   "forex FROM TO",
	Short: "Show exchange rate bars for a currency pair",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeries(cmd, alphavantage.AssetForex, &forexFlags, alphavantage.TimeSeriesRequest{
			Symbol:   args[0],
			ToSymbol: args[1],
		})
	},
}

var cryptoCmd = &cobra.Command{
	Use:   "crypto SYMBOL MARKET",
	Short: "Show digital currency bars quoted in a market currency",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeries(cmd, alphavantage.AssetCrypto, &cryptoFlags, alphavantage.TimeSeriesRequest{
			Symbol: args[0],
			Market: args[1],
		})
	},
}

func runSeries(cmd *cobra.Command, asset alphavantage.AssetClass, flags *seriesFlags, req alphavantage.TimeSeriesRequest) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	req.Options = seriesOptions(cmd, flags)
	granularity := alphavantage.Granularity(strings.ToLower(flags.granularity))

	result, err := client.GetTimeSeries(cmd.Context(), asset, granularity, req)
	if err != nil {
		return err
	}

	ref := snapshotRef{
		function: strings.ToUpper(string(asset) + "_" + string(granularity)),
		symbol:   req.Symbol,
	}
	return emit(cmd, result, ref, func() string {
		return report.TimeSeries(result, flags.bars)
	})
}

// seriesOptions turns the flags the user actually set into query options.
func seriesOptions(cmd *cobra.Command, flags *seriesFlags) []alphavantage.QueryOption {
	var opts []alphavantage.QueryOption
	if flags.interval != "" {
		opts = append(opts, alphavantage.WithInterval(flags.interval))
	}
	if flags.outputSize != "" {
		opts = append(opts, alphavantage.WithOutputSize(flags.outputSize))
	}
	if cmd.Flags().Changed("adjusted") {
		opts = append(opts, alphavantage.WithAdjusted(flags.adjusted))
	}
	if flags.month != "" {
		opts = append(opts, alphavantage.WithMonth(flags.month))
	}
	return opts
}

func registerSeriesFlags(cmd *cobra.Command, flags *seriesFlags, stock bool) {
	cmd.Flags().StringVarP(&flags.granularity, "granularity", "g", string(alphavantage.Daily), "intraday, daily, weekly or monthly")
	cmd.Flags().StringVar(&flags.interval, "interval", "", "Intraday bar width (1min, 5min, 15min, 30min, 60min)")
	cmd.Flags().StringVar(&flags.outputSize, "outputsize", "", "compact or full")
	cmd.Flags().IntVar(&flags.bars, "bars", 20, "Number of bars to show in text output")
	if stock {
		cmd.Flags().BoolVar(&flags.adjusted, "adjusted", false, "Use split and dividend adjusted prices")
		cmd.Flags().StringVar(&flags.month, "month", "", "Intraday history month (YYYY-MM)")
	}
}

func init() {
	registerSeriesFlags(stockCmd, &stockFlags, true)
	registerSeriesFlags(forexCmd, &forexFlags, false)
	registerSeriesFlags(cryptoCmd, &cryptoFlags, false)
}
