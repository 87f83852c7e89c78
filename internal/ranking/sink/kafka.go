package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Kafka writes snapshots to a topic keyed by user id, so one user's snapshots stay
// ordered within a partition.
type Kafka struct {
	writer messageWriter
}

func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		Compression:            kafka.Snappy,
		AllowAutoTopicCreation: true,
		Async:                  false,
	}
}

func NewKafka(writer messageWriter) *Kafka {
	return &Kafka{
		writer: writer,
	}
}

func (k *Kafka) Name() string {
	return "kafka"
}

func (k *Kafka) Publish(ctx context.Context, snapshot Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.Itoa(snapshot.UserID)),
		Value: payload,
		Time:  snapshot.Timestamp,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("ranking.snapshot")},
			{Key: "event_id", Value: []byte(snapshot.EventID)},
		},
	}); err != nil {
		return fmt.Errorf("write kafka message: %w", err)
	}

	return nil
}

func (k *Kafka) Close() error {
	return k.writer.Close()
}
