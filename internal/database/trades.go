package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kdrennan/trade-ledger-service/internal/models"
)

// CreateTrade inserts a new trade. executed_at is assigned here and is
// immutable afterwards.
func (db *DB) CreateTrade(t *models.Trade) error {
	query := `
		INSERT INTO trades (stock_id, action, quantity, notional, status, notes, executed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	now := time.Now()
	if t.Status == "" {
		t.Status = models.StatusCompleted
	}

	err := db.conn.QueryRow(query,
		t.StockID, t.Action, t.Quantity, t.Notional, t.Status, t.Notes, now,
	).Scan(&t.ID)

	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: stock %d", ErrNotFound, t.StockID)
	}
	if err != nil {
		return fmt.Errorf("failed to create trade: %w", err)
	}
	t.ExecutedAt = now

	return db.fillStockFields(t)
}

// GetTradeByID retrieves a trade by id with its stock fields joined in
func (db *DB) GetTradeByID(id int64) (*models.Trade, error) {
	query := `
		SELECT t.id, t.stock_id, s.symbol, s.company_name,
		       t.action, t.quantity, t.notional, t.status, t.notes, t.executed_at
		FROM trades t
		JOIN stocks s ON t.stock_id = s.id
		WHERE t.id = $1
	`
	var t models.Trade
	err := db.conn.QueryRow(query, id).Scan(
		&t.ID, &t.StockID, &t.StockSymbol, &t.CompanyName,
		&t.Action, &t.Quantity, &t.Notional, &t.Status, &t.Notes, &t.ExecutedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: trade %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trade: %w", err)
	}

	return &t, nil
}

// GetAllTrades retrieves all trades newest first, with stock fields joined
// in a single query
func (db *DB) GetAllTrades() ([]*models.Trade, error) {
	query := `
		SELECT t.id, t.stock_id, s.symbol, s.company_name,
		       t.action, t.quantity, t.notional, t.status, t.notes, t.executed_at
		FROM trades t
		JOIN stocks s ON t.stock_id = s.id
		ORDER BY t.executed_at DESC, t.id DESC
	`
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	trades := []*models.Trade{}
	for rows.Next() {
		var t models.Trade
		err := rows.Scan(
			&t.ID, &t.StockID, &t.StockSymbol, &t.CompanyName,
			&t.Action, &t.Quantity, &t.Notional, &t.Status, &t.Notes, &t.ExecutedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, &t)
	}

	return trades, rows.Err()
}

// UpdateTrade updates a trade's mutable fields. executed_at never changes.
func (db *DB) UpdateTrade(t *models.Trade) error {
	query := `
		UPDATE trades SET
			stock_id = $2, action = $3, quantity = $4,
			notional = $5, status = $6, notes = $7
		WHERE id = $1
	`
	result, err := db.conn.Exec(query,
		t.ID, t.StockID, t.Action, t.Quantity, t.Notional, t.Status, t.Notes,
	)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: stock %d", ErrNotFound, t.StockID)
	}
	if err != nil {
		return fmt.Errorf("failed to update trade: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("%w: trade %d", ErrNotFound, t.ID)
	}

	return db.fillStockFields(t)
}

// DeleteTrade removes a trade by id
func (db *DB) DeleteTrade(id int64) error {
	query := `DELETE FROM trades WHERE id = $1`
	result, err := db.conn.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete trade: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("%w: trade %d", ErrNotFound, id)
	}
	return nil
}

func (db *DB) fillStockFields(t *models.Trade) error {
	query := `SELECT symbol, company_name FROM stocks WHERE id = $1`
	err := db.conn.QueryRow(query, t.StockID).Scan(&t.StockSymbol, &t.CompanyName)
	if err != nil {
		return fmt.Errorf("failed to load stock for trade: %w", err)
	}
	return nil
}
