package main

import (
	"github.com/spf13/cobra"

	"github.com/ternarybob/vantage/internal/report"
)

var statementPeriods int

var overviewCmd = &cobra.Command{
	Use:   "overview SYMBOL",
	Short: "Show the company profile and key metrics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		result, err := client.GetCompanyOverview(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return emit(cmd, result, snapshotRef{"OVERVIEW", args[0]}, func() string {
			return report.Overview(result)
		})
	},
}

var incomeCmd = &cobra.Command{
	Use:   "income SYMBOL",
	Short: "Show annual income statements",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		result, err := client.GetIncomeStatement(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return emit(cmd, result, snapshotRef{"INCOME_STATEMENT", args[0]}, func() string {
			return report.IncomeStatement(result, statementPeriods)
		})
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance SYMBOL",
	Short: "Show annual balance sheets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		result, err := client.GetBalanceSheet(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return emit(cmd, result, snapshotRef{"BALANCE_SHEET", args[0]}, func() string {
			return report.BalanceSheet(result, statementPeriods)
		})
	},
}

var cashflowCmd = &cobra.Command{
	Use:   "cashflow SYMBOL",
	Short: "Show annual cash flow statements",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		result, err := client.GetCashFlow(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return emit(cmd, result, snapshotRef{"CASH_FLOW", args[0]}, func() string {
			return report.CashFlow(result, statementPeriods)
		})
	},
}

var earningsCmd = &cobra.Command{
	Use:   "earnings SYMBOL",
	Short: "Show quarterly EPS against estimates",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		result, err := client.GetEarnings(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return emit(cmd, result, snapshotRef{"EARNINGS", args[0]}, func() string {
			return report.Earnings(result, statementPeriods*2)
		})
	},
}

func init() {
	for _, cmd := range []*cobra.Command{incomeCmd, balanceCmd, cashflowCmd, earningsCmd} {
		cmd.Flags().IntVar(&statementPeriods, "periods", 4, "Number of periods to show in text output")
	}
}
