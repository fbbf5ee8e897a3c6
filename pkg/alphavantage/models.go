package alphavantage

// CompanyOverview is the OVERVIEW payload: company profile, ratios and key
// metrics.
type CompanyOverview struct {
	Symbol                     string `json:"Symbol" validate:"required"`
	AssetType                  string `json:"AssetType"`
	Name                       string `json:"Name"`
	Description                string `json:"Description"`
	CIK                        string `json:"CIK"`
	Exchange                   string `json:"Exchange"`
	Currency                   string `json:"Currency"`
	Country                    string `json:"Country"`
	Sector                     string `json:"Sector"`
	Industry                   string `json:"Industry"`
	Address                    string `json:"Address"`
	OfficialSite               string `json:"OfficialSite"`
	FiscalYearEnd              string `json:"FiscalYearEnd"`
	LatestQuarter              Date   `json:"LatestQuarter"`
	MarketCapitalization       Float  `json:"MarketCapitalization"`
	EBITDA                     Float  `json:"EBITDA"`
	PERatio                    Float  `json:"PERatio"`
	PEGRatio                   Float  `json:"PEGRatio"`
	BookValue                  Float  `json:"BookValue"`
	DividendPerShare           Float  `json:"DividendPerShare"`
	DividendYield              Float  `json:"DividendYield"`
	EPS                        Float  `json:"EPS"`
	RevenuePerShareTTM         Float  `json:"RevenuePerShareTTM"`
	ProfitMargin               Float  `json:"ProfitMargin"`
	OperatingMarginTTM         Float  `json:"OperatingMarginTTM"`
	ReturnOnAssetsTTM          Float  `json:"ReturnOnAssetsTTM"`
	ReturnOnEquityTTM          Float  `json:"ReturnOnEquityTTM"`
	RevenueTTM                 Float  `json:"RevenueTTM"`
	GrossProfitTTM             Float  `json:"GrossProfitTTM"`
	DilutedEPSTTM              Float  `json:"DilutedEPSTTM"`
	QuarterlyEarningsGrowthYOY Float  `json:"QuarterlyEarningsGrowthYOY"`
	QuarterlyRevenueGrowthYOY  Float  `json:"QuarterlyRevenueGrowthYOY"`
	AnalystTargetPrice         Float  `json:"AnalystTargetPrice"`
	AnalystRatingStrongBuy     Int    `json:"AnalystRatingStrongBuy"`
	AnalystRatingBuy           Int    `json:"AnalystRatingBuy"`
	AnalystRatingHold          Int    `json:"AnalystRatingHold"`
	AnalystRatingSell          Int    `json:"AnalystRatingSell"`
	AnalystRatingStrongSell    Int    `json:"AnalystRatingStrongSell"`
	TrailingPE                 Float  `json:"TrailingPE"`
	ForwardPE                  Float  `json:"ForwardPE"`
	PriceToSalesRatioTTM       Float  `json:"PriceToSalesRatioTTM"`
	PriceToBookRatio           Float  `json:"PriceToBookRatio"`
	EVToRevenue                Float  `json:"EVToRevenue"`
	EVToEBITDA                 Float  `json:"EVToEBITDA"`
	Beta                       Float  `json:"Beta"`
	FiftyTwoWeekHigh           Float  `json:"52WeekHigh"`
	FiftyTwoWeekLow            Float  `json:"52WeekLow"`
	FiftyDayMovingAverage      Float  `json:"50DayMovingAverage"`
	TwoHundredDayMovingAverage Float  `json:"200DayMovingAverage"`
	SharesOutstanding          Float  `json:"SharesOutstanding"`
	DividendDate               Date   `json:"DividendDate"`
	ExDividendDate             Date   `json:"ExDividendDate"`
}

// Report is implemented by the per-period records of a financial statement.
type Report interface {
	IncomeReport | BalanceSheetReport | CashFlowReport
}

// FinancialStatement holds annual and quarterly reports in API order,
// typically newest first.
type FinancialStatement[R Report] struct {
	Symbol           string `json:"symbol" validate:"required"`
	AnnualReports    []R    `json:"annualReports" validate:"dive"`
	QuarterlyReports []R    `json:"quarterlyReports" validate:"dive"`
}

// Latest returns the most recent annual report, if any.
func (s *FinancialStatement[R]) Latest() (R, bool) {
	var zero R
	if len(s.AnnualReports) == 0 {
		return zero, false
	}
	return s.AnnualReports[0], true
}

// LatestQuarter returns the most recent quarterly report, if any.
func (s *FinancialStatement[R]) LatestQuarter() (R, bool) {
	var zero R
	if len(s.QuarterlyReports) == 0 {
		return zero, false
	}
	return s.QuarterlyReports[0], true
}

type (
	IncomeStatement = FinancialStatement[IncomeReport]
	BalanceSheet    = FinancialStatement[BalanceSheetReport]
	CashFlow        = FinancialStatement[CashFlowReport]
)

// IncomeReport is one period of an INCOME_STATEMENT.
type IncomeReport struct {
	FiscalDateEnding                  string `json:"fiscalDateEnding" validate:"required"`
	ReportedCurrency                  string `json:"reportedCurrency"`
	GrossProfit                       Float  `json:"grossProfit"`
	TotalRevenue                      Float  `json:"totalRevenue"`
	CostOfRevenue                     Float  `json:"costOfRevenue"`
	CostOfGoodsAndServicesSold        Float  `json:"costofGoodsAndServicesSold"`
	OperatingIncome                   Float  `json:"operatingIncome"`
	SellingGeneralAndAdministrative   Float  `json:"sellingGeneralAndAdministrative"`
	ResearchAndDevelopment            Float  `json:"researchAndDevelopment"`
	OperatingExpenses                 Float  `json:"operatingExpenses"`
	InvestmentIncomeNet               Float  `json:"investmentIncomeNet"`
	NetInterestIncome                 Float  `json:"netInterestIncome"`
	InterestIncome                    Float  `json:"interestIncome"`
	InterestExpense                   Float  `json:"interestExpense"`
	NonInterestIncome                 Float  `json:"nonInterestIncome"`
	OtherNonOperatingIncome           Float  `json:"otherNonOperatingIncome"`
	Depreciation                      Float  `json:"depreciation"`
	DepreciationAndAmortization       Float  `json:"depreciationAndAmortization"`
	IncomeBeforeTax                   Float  `json:"incomeBeforeTax"`
	IncomeTaxExpense                  Float  `json:"incomeTaxExpense"`
	InterestAndDebtExpense            Float  `json:"interestAndDebtExpense"`
	NetIncomeFromContinuingOperations Float  `json:"netIncomeFromContinuingOperations"`
	ComprehensiveIncomeNetOfTax       Float  `json:"comprehensiveIncomeNetOfTax"`
	EBIT                              Float  `json:"ebit"`
	EBITDA                            Float  `json:"ebitda"`
	NetIncome                         Float  `json:"netIncome"`
}

// BalanceSheetReport is one period of a BALANCE_SHEET.
type BalanceSheetReport struct {
	FiscalDateEnding                       string `json:"fiscalDateEnding" validate:"required"`
	ReportedCurrency                       string `json:"reportedCurrency"`
	TotalAssets                            Float  `json:"totalAssets"`
	TotalCurrentAssets                     Float  `json:"totalCurrentAssets"`
	CashAndCashEquivalentsAtCarryingValue  Float  `json:"cashAndCashEquivalentsAtCarryingValue"`
	CashAndShortTermInvestments            Float  `json:"cashAndShortTermInvestments"`
	Inventory                              Float  `json:"inventory"`
	CurrentNetReceivables                  Float  `json:"currentNetReceivables"`
	TotalNonCurrentAssets                  Float  `json:"totalNonCurrentAssets"`
	PropertyPlantEquipment                 Float  `json:"propertyPlantEquipment"`
	AccumulatedDepreciationAmortizationPPE Float  `json:"accumulatedDepreciationAmortizationPPE"`
	IntangibleAssets                       Float  `json:"intangibleAssets"`
	IntangibleAssetsExcludingGoodwill      Float  `json:"intangibleAssetsExcludingGoodwill"`
	Goodwill                               Float  `json:"goodwill"`
	Investments                            Float  `json:"investments"`
	LongTermInvestments                    Float  `json:"longTermInvestments"`
	ShortTermInvestments                   Float  `json:"shortTermInvestments"`
	OtherCurrentAssets                     Float  `json:"otherCurrentAssets"`
	OtherNonCurrentAssets                  Float  `json:"otherNonCurrentAssets"`
	TotalLiabilities                       Float  `json:"totalLiabilities"`
	TotalCurrentLiabilities                Float  `json:"totalCurrentLiabilities"`
	CurrentAccountsPayable                 Float  `json:"currentAccountsPayable"`
	DeferredRevenue                        Float  `json:"deferredRevenue"`
	CurrentDebt                            Float  `json:"currentDebt"`
	ShortTermDebt                          Float  `json:"shortTermDebt"`
	TotalNonCurrentLiabilities             Float  `json:"totalNonCurrentLiabilities"`
	CapitalLeaseObligations                Float  `json:"capitalLeaseObligations"`
	LongTermDebt                           Float  `json:"longTermDebt"`
	CurrentLongTermDebt                    Float  `json:"currentLongTermDebt"`
	LongTermDebtNoncurrent                 Float  `json:"longTermDebtNoncurrent"`
	ShortLongTermDebtTotal                 Float  `json:"shortLongTermDebtTotal"`
	OtherCurrentLiabilities                Float  `json:"otherCurrentLiabilities"`
	OtherNonCurrentLiabilities             Float  `json:"otherNonCurrentLiabilities"`
	TotalShareholderEquity                 Float  `json:"totalShareholderEquity"`
	TreasuryStock                          Float  `json:"treasuryStock"`
	RetainedEarnings                       Float  `json:"retainedEarnings"`
	CommonStock                            Float  `json:"commonStock"`
	CommonStockSharesOutstanding           Float  `json:"commonStockSharesOutstanding"`
}

// CashFlowReport is one period of a CASH_FLOW statement.
type CashFlowReport struct {
	FiscalDateEnding                      string `json:"fiscalDateEnding" validate:"required"`
	ReportedCurrency                      string `json:"reportedCurrency"`
	OperatingCashflow                     Float  `json:"operatingCashflow"`
	PaymentsForOperatingActivities        Float  `json:"paymentsForOperatingActivities"`
	ProceedsFromOperatingActivities       Float  `json:"proceedsFromOperatingActivities"`
	ChangeInOperatingLiabilities          Float  `json:"changeInOperatingLiabilities"`
	ChangeInOperatingAssets               Float  `json:"changeInOperatingAssets"`
	DepreciationDepletionAndAmortization  Float  `json:"depreciationDepletionAndAmortization"`
	CapitalExpenditures                   Float  `json:"capitalExpenditures"`
	ChangeInReceivables                   Float  `json:"changeInReceivables"`
	ChangeInInventory                     Float  `json:"changeInInventory"`
	ProfitLoss                            Float  `json:"profitLoss"`
	CashflowFromInvestment                Float  `json:"cashflowFromInvestment"`
	CashflowFromFinancing                 Float  `json:"cashflowFromFinancing"`
	ProceedsFromRepaymentsOfShortTermDebt Float  `json:"proceedsFromRepaymentsOfShortTermDebt"`
	PaymentsForRepurchaseOfCommonStock    Float  `json:"paymentsForRepurchaseOfCommonStock"`
	PaymentsForRepurchaseOfEquity         Float  `json:"paymentsForRepurchaseOfEquity"`
	PaymentsForRepurchaseOfPreferredStock Float  `json:"paymentsForRepurchaseOfPreferredStock"`
	DividendPayout                        Float  `json:"dividendPayout"`
	DividendPayoutCommonStock             Float  `json:"dividendPayoutCommonStock"`
	DividendPayoutPreferredStock          Float  `json:"dividendPayoutPreferredStock"`
	ProceedsFromIssuanceOfCommonStock     Float  `json:"proceedsFromIssuanceOfCommonStock"`
	ProceedsFromIssuanceOfLongTermDebtNet Float  `json:"proceedsFromIssuanceOfLongTermDebtAndCapitalSecuritiesNet"`
	ProceedsFromIssuanceOfPreferredStock  Float  `json:"proceedsFromIssuanceOfPreferredStock"`
	ProceedsFromRepurchaseOfEquity        Float  `json:"proceedsFromRepurchaseOfEquity"`
	ProceedsFromSaleOfTreasuryStock       Float  `json:"proceedsFromSaleOfTreasuryStock"`
	ChangeInCashAndCashEquivalents        Float  `json:"changeInCashAndCashEquivalents"`
	ChangeInExchangeRate                  Float  `json:"changeInExchangeRate"`
	NetIncome                             Float  `json:"netIncome"`
}

// Earnings is the EARNINGS payload: reported and estimated EPS per period.
type Earnings struct {
	Symbol            string             `json:"symbol" validate:"required"`
	AnnualEarnings    []AnnualEarning    `json:"annualEarnings" validate:"dive"`
	QuarterlyEarnings []QuarterlyEarning `json:"quarterlyEarnings" validate:"dive"`
}

// AnnualEarning is one fiscal year of reported EPS.
type AnnualEarning struct {
	FiscalDateEnding string `json:"fiscalDateEnding" validate:"required"`
	ReportedEPS      Float  `json:"reportedEPS"`
}

// QuarterlyEarning is one fiscal quarter of reported versus estimated EPS.
type QuarterlyEarning struct {
	FiscalDateEnding   string `json:"fiscalDateEnding" validate:"required"`
	ReportedDate       Date   `json:"reportedDate"`
	ReportedEPS        Float  `json:"reportedEPS"`
	EstimatedEPS       Float  `json:"estimatedEPS"`
	Surprise           Float  `json:"surprise"`
	SurprisePercentage Float  `json:"surprisePercentage"`
	ReportTime         string `json:"reportTime"`
}
