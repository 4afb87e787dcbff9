// Lifecycle events published to Kafka for downstream consumers (the earnings
// ledger, notifications). Publishing is best-effort: a broker outage must
// never fail a pickup transition.
package pickup

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// EventPublisher emits pickup lifecycle events. Implementations must be safe
// for concurrent use.
type EventPublisher interface {
	PublishTransition(ctx context.Context, e TransitionEvent) error
}

// TransitionEvent is the wire form of one status change.
type TransitionEvent struct {
	PickupID   string    `json:"pickupId"`
	TrackingID string    `json:"trackingId"`
	RiderID    int64     `json:"riderId"`
	UserID     int64     `json:"userId"`
	FromStatus Status    `json:"fromStatus"`
	ToStatus   Status    `json:"toStatus"`
	OccurredAt time.Time `json:"occurredAt"`
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) PublishTransition(ctx context.Context, e TransitionEvent) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.PickupID),
		Value: payload,
	})
}
