package messaging

import (
	"context"
	"fmt"
	"time"

	"bedadmin/pkg/metrics"

	"github.com/segmentio/kafka-go"
)

const serviceName = "admin-service"

// KafkaProducer публикует события аудита изменений записей
// Writer асинхронный: экран не ждет подтверждения брокера
type KafkaProducer struct {
	writer *kafka.Writer
	topic  string
}

func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    100,
		BatchTimeout: time.Second,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				metrics.RecordKafkaError(serviceName, topic, "produce")
				return
			}
			metrics.RecordKafkaMessagesProduced(serviceName, topic, len(messages))
		},
	}

	return &KafkaProducer{writer: writer, topic: topic}
}

// PublishMessage ставит событие в очередь writer; ключ держит события записи в одной партиции
func (p *KafkaProducer) PublishMessage(ctx context.Context, key string, value []byte) error {
	message := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		metrics.RecordKafkaError(serviceName, p.topic, "enqueue")
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	return nil
}

func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
