package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Action is the side of a trade. Only BUY and SELL are valid.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
)

// ParseAction validates a raw action string
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionBuy, ActionSell:
		return Action(s), nil
	}
	return "", fmt.Errorf("invalid action: %q", s)
}

// StatusCompleted is the default trade status
const StatusCompleted = "completed"

// Trade represents an executed trade against a stock.
// StockSymbol and CompanyName are denormalized from the joined stock row.
type Trade struct {
	ID          int64           `json:"id"`
	StockID     int64           `json:"stock"`
	StockSymbol string          `json:"stock_symbol"`
	CompanyName string          `json:"company_name"`
	Action      Action          `json:"action"`
	Quantity    int64           `json:"quantity"`
	Notional    decimal.Decimal `json:"notional"`
	Status      string          `json:"status"`
	Notes       string          `json:"notes"`
	ExecutedAt  time.Time       `json:"executed_at"`
}

// TradeEvent represents a Kafka event for trade changes
type TradeEvent struct {
	EventType string    `json:"event_type"`
	Trade     *Trade    `json:"trade,omitempty"`
	TradeID   int64     `json:"trade_id"`
	Symbol    string    `json:"symbol,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
