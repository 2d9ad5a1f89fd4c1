package api

import (
	"time"

	"github.com/kdrennan/trade-ledger-service/internal/models"
)

// Monetary fields render with exactly two fraction digits, matching the
// NUMERIC(_, 2) columns behind them.

type stockResponse struct {
	ID                 int64     `json:"id"`
	Symbol             string    `json:"symbol"`
	CompanyName        string    `json:"company_name"`
	LastPrice          string    `json:"last_price"`
	DailyChangePercent string    `json:"daily_change_percent"`
	LastUpdated        time.Time `json:"last_updated"`
}

func newStockResponse(s *models.Stock) stockResponse {
	return stockResponse{
		ID:                 s.ID,
		Symbol:             s.Symbol,
		CompanyName:        s.CompanyName,
		LastPrice:          s.LastPrice.StringFixed(2),
		DailyChangePercent: s.DailyChangePercent.StringFixed(2),
		LastUpdated:        s.LastUpdated,
	}
}

func newStockListResponse(stocks []*models.Stock) []stockResponse {
	out := make([]stockResponse, 0, len(stocks))
	for _, s := range stocks {
		out = append(out, newStockResponse(s))
	}
	return out
}

type tradeResponse struct {
	ID          int64         `json:"id"`
	Stock       int64         `json:"stock"`
	StockSymbol string        `json:"stock_symbol"`
	CompanyName string        `json:"company_name"`
	Action      models.Action `json:"action"`
	Quantity    int64         `json:"quantity"`
	Notional    string        `json:"notional"`
	Status      string        `json:"status"`
	Notes       string        `json:"notes"`
	ExecutedAt  time.Time     `json:"executed_at"`
}

func newTradeResponse(t *models.Trade) tradeResponse {
	return tradeResponse{
		ID:          t.ID,
		Stock:       t.StockID,
		StockSymbol: t.StockSymbol,
		CompanyName: t.CompanyName,
		Action:      t.Action,
		Quantity:    t.Quantity,
		Notional:    t.Notional.StringFixed(2),
		Status:      t.Status,
		Notes:       t.Notes,
		ExecutedAt:  t.ExecutedAt,
	}
}

func newTradeListResponse(trades []*models.Trade) []tradeResponse {
	out := make([]tradeResponse, 0, len(trades))
	for _, t := range trades {
		out = append(out, newTradeResponse(t))
	}
	return out
}

type summaryResponse struct {
	TotalSymbols   int    `json:"total_symbols"`
	OpenPositions  int    `json:"open_positions"`
	TodaysBuys     int    `json:"todays_buys"`
	TodaysSells    int    `json:"todays_sells"`
	TotalNotional  string `json:"total_notional"`
	RealizedProfit string `json:"realized_profit"`
}

func newSummaryResponse(s *models.DashboardSummary) summaryResponse {
	return summaryResponse{
		TotalSymbols:   s.TotalSymbols,
		OpenPositions:  s.OpenPositions,
		TodaysBuys:     s.TodaysBuys,
		TodaysSells:    s.TodaysSells,
		TotalNotional:  s.TotalNotional.StringFixed(2),
		RealizedProfit: s.RealizedProfit.StringFixed(2),
	}
}
