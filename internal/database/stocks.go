package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kdrennan/trade-ledger-service/internal/models"
)

// CreateStock inserts a new stock, assigning id and last_updated
func (db *DB) CreateStock(s *models.Stock) error {
	query := `
		INSERT INTO stocks (symbol, company_name, last_price, daily_change_percent, last_updated)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	now := time.Now()

	err := db.conn.QueryRow(query,
		s.Symbol, s.CompanyName, s.LastPrice, s.DailyChangePercent, now,
	).Scan(&s.ID)

	if isUniqueViolation(err) {
		return fmt.Errorf("%w: stock %s", ErrConflict, s.Symbol)
	}
	if err != nil {
		return fmt.Errorf("failed to create stock: %w", err)
	}
	s.LastUpdated = now
	return nil
}

// GetStockByID retrieves a stock by id
func (db *DB) GetStockByID(id int64) (*models.Stock, error) {
	query := `
		SELECT id, symbol, company_name, last_price, daily_change_percent, last_updated
		FROM stocks
		WHERE id = $1
	`
	var s models.Stock
	err := db.conn.QueryRow(query, id).Scan(
		&s.ID, &s.Symbol, &s.CompanyName, &s.LastPrice, &s.DailyChangePercent, &s.LastUpdated,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: stock %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stock: %w", err)
	}

	return &s, nil
}

// GetAllStocks retrieves all stocks ordered by symbol
func (db *DB) GetAllStocks() ([]*models.Stock, error) {
	query := `
		SELECT id, symbol, company_name, last_price, daily_change_percent, last_updated
		FROM stocks
		ORDER BY symbol ASC
	`
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query stocks: %w", err)
	}
	defer rows.Close()

	stocks := []*models.Stock{}
	for rows.Next() {
		var s models.Stock
		err := rows.Scan(
			&s.ID, &s.Symbol, &s.CompanyName, &s.LastPrice, &s.DailyChangePercent, &s.LastUpdated,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock: %w", err)
		}
		stocks = append(stocks, &s)
	}

	return stocks, rows.Err()
}

// UpdateStock updates a stock's mutable fields and refreshes last_updated
func (db *DB) UpdateStock(s *models.Stock) error {
	query := `
		UPDATE stocks SET
			symbol = $2, company_name = $3, last_price = $4,
			daily_change_percent = $5, last_updated = $6
		WHERE id = $1
	`
	now := time.Now()
	result, err := db.conn.Exec(query,
		s.ID, s.Symbol, s.CompanyName, s.LastPrice, s.DailyChangePercent, now,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: stock %s", ErrConflict, s.Symbol)
	}
	if err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("%w: stock %d", ErrNotFound, s.ID)
	}
	s.LastUpdated = now
	return nil
}

// DeleteStock removes a stock; its trades go with it via the cascade
func (db *DB) DeleteStock(id int64) error {
	query := `DELETE FROM stocks WHERE id = $1`
	result, err := db.conn.Exec(query, id)
	if err != nil {
		return fmt.Errorf("failed to delete stock: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("%w: stock %d", ErrNotFound, id)
	}
	return nil
}
