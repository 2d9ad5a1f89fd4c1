package database

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kdrennan/trade-ledger-service/internal/models"
)

// GetDashboardSummary computes the portfolio metrics as of the given local
// date. All sums are set-based aggregates over the trades table; an empty
// ledger yields zeros, never an error.
//
// total_notional sums BUY-side notional only; dashboard consumers depend
// on that reading.
func (db *DB) GetDashboardSummary(today time.Time) (*models.DashboardSummary, error) {
	summary := &models.DashboardSummary{}
	day := today.Format("2006-01-02")

	query := `
		SELECT
			COALESCE(SUM(notional) FILTER (WHERE action = 'BUY'), 0) AS buy_notional,
			COALESCE(SUM(notional) FILTER (WHERE action = 'SELL'), 0) AS sell_notional,
			COUNT(*) FILTER (WHERE action = 'BUY' AND executed_at::date = $1::date) AS todays_buys,
			COUNT(*) FILTER (WHERE action = 'SELL' AND executed_at::date = $1::date) AS todays_sells
		FROM trades
	`
	var buyNotional, sellNotional decimal.Decimal
	err := db.conn.QueryRow(query, day).Scan(
		&buyNotional, &sellNotional, &summary.TodaysBuys, &summary.TodaysSells,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate trade totals: %w", err)
	}
	summary.TotalNotional = buyNotional
	summary.RealizedProfit = sellNotional.Sub(buyNotional)

	openQuery := `
		SELECT COUNT(*)
		FROM (
			SELECT stock_id
			FROM trades
			GROUP BY stock_id
			HAVING SUM(CASE WHEN action = 'BUY' THEN quantity ELSE -quantity END) > 0
		) positions
	`
	if err := db.conn.QueryRow(openQuery).Scan(&summary.OpenPositions); err != nil {
		return nil, fmt.Errorf("failed to count open positions: %w", err)
	}

	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM stocks`).Scan(&summary.TotalSymbols); err != nil {
		return nil, fmt.Errorf("failed to count stocks: %w", err)
	}
	if summary.TotalSymbols == 0 {
		// Orphaned trades can only exist if the stocks table was wiped out
		// from under us, but the dashboard still reports the symbols seen.
		err := db.conn.QueryRow(`SELECT COUNT(DISTINCT stock_id) FROM trades`).Scan(&summary.TotalSymbols)
		if err != nil {
			return nil, fmt.Errorf("failed to count traded symbols: %w", err)
		}
	}

	return summary, nil
}
