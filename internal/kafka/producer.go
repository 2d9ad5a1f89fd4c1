package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/kdrennan/trade-ledger-service/internal/models"
)

// Event type constants
const (
	EventStockAdded    = "STOCK_ADDED"
	EventStockUpdated  = "STOCK_UPDATED"
	EventStockRemoved  = "STOCK_REMOVED"
	EventTradeRecorded = "TRADE_RECORDED"
	EventTradeUpdated  = "TRADE_UPDATED"
	EventTradeRemoved  = "TRADE_REMOVED"
)

// Producer publishes ledger change events to Kafka
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer creates a new Kafka producer
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}

	return &Producer{
		writer: writer,
		topic:  topic,
	}
}

// PublishStockChange publishes a stock lifecycle event keyed by symbol
func (p *Producer) PublishStockChange(ctx context.Context, eventType string, stock *models.Stock) error {
	event := models.StockEvent{
		EventType: eventType,
		Stock:     stock,
		Symbol:    stock.Symbol,
		Timestamp: time.Now(),
	}
	return p.publish(ctx, stock.Symbol, event)
}

// PublishStockRemoved publishes a stock removal event
func (p *Producer) PublishStockRemoved(ctx context.Context, symbol string) error {
	event := models.StockEvent{
		EventType: EventStockRemoved,
		Symbol:    symbol,
		Timestamp: time.Now(),
	}
	return p.publish(ctx, symbol, event)
}

// PublishTradeChange publishes a trade lifecycle event keyed by stock symbol
func (p *Producer) PublishTradeChange(ctx context.Context, eventType string, trade *models.Trade) error {
	event := models.TradeEvent{
		EventType: eventType,
		Trade:     trade,
		TradeID:   trade.ID,
		Symbol:    trade.StockSymbol,
		Timestamp: time.Now(),
	}
	return p.publish(ctx, trade.StockSymbol, event)
}

// PublishTradeRemoved publishes a trade removal event
func (p *Producer) PublishTradeRemoved(ctx context.Context, tradeID int64) error {
	event := models.TradeEvent{
		EventType: EventTradeRemoved,
		TradeID:   tradeID,
		Timestamp: time.Now(),
	}
	return p.publish(ctx, fmt.Sprintf("trade-%d", tradeID), event)
}

func (p *Producer) publish(ctx context.Context, key string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	return nil
}

// Close closes the Kafka producer
func (p *Producer) Close() error {
	return p.writer.Close()
}
