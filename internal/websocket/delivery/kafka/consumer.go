package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	ws "shop-notification-srv/internal/websocket"
	"shop-notification-srv/pkg/log"
)

const source = "kafka"

// defaultRetryDelay spaces out FetchMessage retries after a read error.
const defaultRetryDelay = time.Second

// Config selects the topic and consumer group.
type Config struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Reader is the subset of *kafka.Reader the consumer needs.
type Reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer reads dispatch requests from a Kafka topic. The message value
// is {"kind": "<dispatch kind>", "payload": {...}}; when kind is absent the
// message key is used instead.
type Consumer struct {
	reader     Reader
	uc         ws.UseCase
	logger     log.Logger
	retryDelay time.Duration

	wg   sync.WaitGroup
	stop context.CancelFunc
}

type rawEvent struct {
	Kind    ws.DispatchKind `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

func New(cfg Config, uc ws.UseCase, logger log.Logger) *Consumer {
	return NewWithReader(kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.Brokers,
		GroupID: cfg.GroupID,
		Topic:   cfg.Topic,
	}), uc, logger)
}

func NewWithReader(reader Reader, uc ws.UseCase, logger log.Logger) *Consumer {
	return &Consumer{reader: reader, uc: uc, logger: logger, retryDelay: defaultRetryDelay}
}

// Start consumes in the background until Shutdown or ctx is done.
func (c *Consumer) Start(ctx context.Context) {
	ctx, c.stop = context.WithCancel(ctx)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.consume(ctx)
	}()
	c.logger.Infof(ctx, "Kafka consumer started")
}

func (c *Consumer) consume(ctx context.Context) {
	for {
		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return
			}
			if errors.Is(err, io.EOF) {
				c.logger.Warn(ctx, "kafka reader closed, consumer stopping")
				return
			}
			c.logger.Warnf(ctx, "kafka read error, retrying in %s: %v", c.retryDelay, err)
			timer := time.NewTimer(c.retryDelay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
			continue
		}

		if err := c.handle(ctx, m); err != nil {
			c.logger.Warnf(ctx, "kafka handler error: topic=%s partition=%d offset=%d err=%v", m.Topic, m.Partition, m.Offset, err)
		}

		// At-most-once: the offset is committed whether or not dispatch succeeded.
		if err := c.reader.CommitMessages(ctx, m); err != nil && ctx.Err() == nil {
			c.logger.Warnf(ctx, "kafka commit error: %v", err)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, m kafka.Message) error {
	var event rawEvent
	if err := json.Unmarshal(m.Value, &event); err != nil {
		return fmt.Errorf("%w: %v", ws.ErrInvalidMessage, err)
	}
	if event.Kind == "" {
		event.Kind = ws.DispatchKind(m.Key)
	}

	c.logger.Debugf(ctx, "kafka message consumed: topic=%s offset=%d kind=%s", m.Topic, m.Offset, event.Kind)
	return c.uc.ProcessMessage(ctx, ws.ProcessMessageInput{
		Source:  source,
		Kind:    event.Kind,
		Payload: event.Payload,
	})
}

func (c *Consumer) Shutdown(ctx context.Context) error {
	if c.stop != nil {
		c.stop()
	}
	c.wg.Wait()
	if err := c.reader.Close(); err != nil {
		return fmt.Errorf("close kafka reader: %w", err)
	}
	c.logger.Infof(ctx, "Kafka consumer stopped")
	return nil
}
