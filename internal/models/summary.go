package models

import "github.com/shopspring/decimal"

// DashboardSummary holds the derived portfolio metrics for the dashboard.
// TotalNotional aggregates buy-side notional only; the name is kept for
// compatibility with existing dashboard consumers.
type DashboardSummary struct {
	TotalSymbols   int             `json:"total_symbols"`
	OpenPositions  int             `json:"open_positions"`
	TodaysBuys     int             `json:"todays_buys"`
	TodaysSells    int             `json:"todays_sells"`
	TotalNotional  decimal.Decimal `json:"total_notional"`
	RealizedProfit decimal.Decimal `json:"realized_profit"`
}
