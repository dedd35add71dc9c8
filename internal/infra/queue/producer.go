package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Alert kinds routed by the consumer.
const (
	AlertKindContact = "contact"
	AlertKindBooking = "booking"
)

// AlertPayload is the internal notification published when a lead comes
// in. The consumer renders it into an email and a WhatsApp message; the
// payload carries everything needed so the worker never reads the store.
type AlertPayload struct {
	Kind      string `json:"kind"`
	LeadID    string `json:"lead_id"`
	Reference string `json:"reference,omitempty"`

	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
	City  string `json:"city,omitempty"`

	// Interest for contacts, department for bookings.
	Topic   string            `json:"topic"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

type RabbitMQProducer struct {
	Ch *amqp.Channel
}

func NewProducer(ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishAlert(ctx context.Context, payload AlertPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("alert payload marshal failed: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("alert publish failed: %w", err)
	}
	return nil
}
