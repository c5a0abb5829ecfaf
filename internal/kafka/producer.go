package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/trogers1052/networth-service/internal/models"
)

// Producer handles publishing valuation events to Kafka
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

// PublishValuationComputed publishes the totals of a completed portfolio
// valuation
func (p *Producer) PublishValuationComputed(ctx context.Context, report *models.PortfolioReport, holdingCount int) error {
	event := models.ValuationEvent{
		EventType:        "VALUATION_COMPUTED",
		TotalWorth:       report.TotalWorth,
		StocksTotal:      report.Breakdown.Stocks.Total,
		MutualFundsTotal: report.Breakdown.MutualFunds.Total,
		GoldTotal:        report.Breakdown.Gold.Total,
		HoldingCount:     holdingCount,
		Timestamp:        time.Now(),
	}
	key := strconv.FormatInt(event.Timestamp.UnixNano(), 10)
	return p.publish(ctx, key, event)
}

func (p *Producer) publish(ctx context.Context, key string, event models.ValuationEvent) error {
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
