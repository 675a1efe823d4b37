package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/IBM/sarama"
	"train-ticketing/internal/models"
)

// CatalogConsumer subscribes to the external catalog feed and hands every
// announced train to a registration handler.
type CatalogConsumer struct {
	consumer sarama.ConsumerGroup
	topics   []string
}

func NewCatalogConsumer(brokers []string, groupID string) (*CatalogConsumer, error) {
	config := sarama.NewConfig()
	config.Consumer.Group.Rebalance.Strategy = sarama.BalanceStrategyRoundRobin
	config.Consumer.Offsets.Initial = sarama.OffsetNewest

	consumer, err := sarama.NewConsumerGroup(brokers, groupID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &CatalogConsumer{
		consumer: consumer,
		topics:   []string{"train.created"},
	}, nil
}

func (c *CatalogConsumer) ConsumeCatalog(ctx context.Context, handler func(*models.TrainEvent) error) error {
	consumerHandler := &catalogConsumerHandler{handler: handler}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			if err := c.consumer.Consume(ctx, c.topics, consumerHandler); err != nil {
				log.Printf("Error consuming messages: %v", err)
				return err
			}
		}
	}
}

func (c *CatalogConsumer) Close() error {
	return c.consumer.Close()
}

type catalogConsumerHandler struct {
	handler func(*models.TrainEvent) error
}

func (h *catalogConsumerHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *catalogConsumerHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *catalogConsumerHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		var event models.TrainEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("Failed to unmarshal message: %v", err)
			continue
		}

		if err := h.handler(&event); err != nil {
			log.Printf("Failed to handle train event: %v", err)
			continue
		}

		session.MarkMessage(message, "")
	}

	return nil
}
