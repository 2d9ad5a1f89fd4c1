package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock represents a tracked equity
type Stock struct {
	ID                 int64           `json:"id"`
	Symbol             string          `json:"symbol"`
	CompanyName        string          `json:"company_name"`
	LastPrice          decimal.Decimal `json:"last_price"`
	DailyChangePercent decimal.Decimal `json:"daily_change_percent"`
	LastUpdated        time.Time       `json:"last_updated"`
}

// StockEvent represents a Kafka event for stock changes
type StockEvent struct {
	EventType string    `json:"event_type"`
	Stock     *Stock    `json:"stock,omitempty"`
	Symbol    string    `json:"symbol"`
	Timestamp time.Time `json:"timestamp"`
}
