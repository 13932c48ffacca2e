package notification

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"
)

// Consumer drains the validation-decision topic and fans each decision out
// through the notification channels. Runs until ctx is cancelled.
type Consumer struct {
	reader  *kafka.Reader
	service Service
}

func NewConsumer(reader *kafka.Reader, service Service) *Consumer {
	return &Consumer{reader: reader, service: service}
}

func (c *Consumer) Run(ctx context.Context) {
	log.Println("📨 Validation-decision consumer started")
	defer c.reader.Close()

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Println("📨 Validation-decision consumer stopped")
				return
			}
			log.Printf("❌ Kafka read error: %v", err)
			continue
		}

		var decision ValidationDecision
		if err := json.Unmarshal(msg.Value, &decision); err != nil {
			log.Printf("❌ Bad validation decision payload (offset %d): %v", msg.Offset, err)
			continue
		}

		if err := c.service.HandleValidationDecision(ctx, decision); err != nil {
			log.Printf("❌ Failed to handle validation decision for user %d: %v",
				decision.RecipientID, err)
		}
	}
}
