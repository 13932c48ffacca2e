package utils

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/AvalonleFae/ezevent/config"
)

const DefaultValidationTopic = "organizer-validations"

var kafkaWriter *kafka.Writer

// InitializeKafka sets up the writer used to publish validation decisions.
// Kafka being down must never block API writes, so failures here only log.
func InitializeKafka(cfg *config.Config) {
	brokers := cfg.KafkaBrokers
	if brokers == "" {
		brokers = "localhost:9092"
	}
	topic := cfg.KafkaTopic
	if topic == "" {
		topic = DefaultValidationTopic
	}

	kafkaWriter = &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}

	log.Printf("✅ Kafka writer ready (brokers=%s topic=%s)", brokers, topic)
}

// PublishMessage publishes a single keyed message; errors are returned so the
// caller can decide to log-and-continue.
func PublishMessage(ctx context.Context, key, value []byte) error {
	if kafkaWriter == nil {
		log.Println("⚠️ Kafka writer not initialized, dropping message")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return kafkaWriter.WriteMessages(ctx, kafka.Message{Key: key, Value: value})
}

// NewValidationReader builds a reader for the validation-decision consumer
func NewValidationReader(cfg *config.Config) *kafka.Reader {
	brokers := cfg.KafkaBrokers
	if brokers == "" {
		brokers = "localhost:9092"
	}
	topic := cfg.KafkaTopic
	if topic == "" {
		topic = DefaultValidationTopic
	}

	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: strings.Split(brokers, ","),
		Topic:   topic,
		GroupID: "ezevent-notifications",
	})
}
