package kafkaadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"bdcompass/internal/domain"
	"bdcompass/internal/ports"
)

const (
	OpportunitiesTopic = "bd.opportunities"
	DigestsTopic       = "bd.digests"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes scored opportunities and weekly digests.
type Producer struct {
	opportunities messageWriter
	digests       messageWriter
	log           *zap.Logger
}

var _ ports.Publisher = (*Producer)(nil)

// NewProducer creates a producer writing to the default topics.
func NewProducer(brokers []string, log *zap.Logger) *Producer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Producer{
		opportunities: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    OpportunitiesTopic,
			Balancer: &kafka.Hash{},
		},
		digests: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    DigestsTopic,
			Balancer: &kafka.LeastBytes{},
		},
		log: log,
	}
}

type opportunityEvent struct {
	AccountID string `json:"account_id"`
	domain.ScoredOpportunity
}

type digestEvent struct {
	AccountID string       `json:"account_id"`
	Window    ports.Window `json:"window"`
	domain.Digest
}

// PublishOpportunities writes one message per opportunity keyed by company id
// so a company's updates stay on one partition.
func (p *Producer) PublishOpportunities(ctx context.Context, accountID string, opps []domain.ScoredOpportunity) error {
	msgs := make([]kafka.Message, 0, len(opps))
	for _, o := range opps {
		data, err := json.Marshal(opportunityEvent{AccountID: accountID, ScoredOpportunity: o})
		if err != nil {
			return err
		}
		msgs = append(msgs, kafka.Message{Key: []byte(o.CompanyID), Value: data})
	}
	if len(msgs) == 0 {
		return nil
	}
	if err := p.opportunities.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %s: %w", OpportunitiesTopic, err)
	}
	p.log.Debug("opportunities published", zap.String("account_id", accountID), zap.Int("count", len(msgs)))
	return nil
}

func (p *Producer) PublishDigest(ctx context.Context, accountID string, window ports.Window, d domain.Digest) error {
	data, err := json.Marshal(digestEvent{AccountID: accountID, Window: window, Digest: d})
	if err != nil {
		return err
	}
	if err := p.digests.WriteMessages(ctx, kafka.Message{Key: []byte(accountID), Value: data}); err != nil {
		return fmt.Errorf("write %s: %w", DigestsTopic, err)
	}
	p.log.Debug("digest published", zap.String("account_id", accountID))
	return nil
}

// Close closes both writers.
func (p *Producer) Close() error {
	return errors.Join(p.opportunities.Close(), p.digests.Close())
}
