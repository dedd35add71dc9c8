package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/covercredit/cover-credit-backend/internal/infra/http/middleware"
)

// AlertMailer delivers the internal new-lead email (Brevo).
type AlertMailer interface {
	SendContactAlert(payload AlertPayload) error
	SendBookingAlert(payload AlertPayload) error
}

// AlertMessenger delivers the internal WhatsApp ping.
type AlertMessenger interface {
	SendLeadAlert(payload AlertPayload) error
}

// Worker consumes lead alerts and fans them out to email and WhatsApp.
// Delivery is best-effort: a failed channel is logged, never retried
// into the request path.
type Worker struct {
	Channel   *amqp.Channel
	Mailer    AlertMailer
	Messenger AlertMessenger
}

func NewWorker(ch *amqp.Channel, mailer AlertMailer, messenger AlertMessenger) *Worker {
	return &Worker{
		Channel:   ch,
		Mailer:    mailer,
		Messenger: messenger,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Fatalf("❌ [ALERTS] consumer registration failed: %s", err)
	}

	go func() {
		for d := range msgs {
			var payload AlertPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [ALERTS] malformed payload, dropping: %s", err)
				d.Nack(false, false)
				continue
			}

			w.deliver(payload)
			d.Ack(false)
		}
	}()

	log.Printf("📣 Alert worker consuming '%s'", queueName)
}

func (w *Worker) deliver(payload AlertPayload) {
	if w.Mailer != nil {
		var err error
		switch payload.Kind {
		case AlertKindBooking:
			err = w.Mailer.SendBookingAlert(payload)
		default:
			err = w.Mailer.SendContactAlert(payload)
		}
		if err != nil {
			log.Printf("⚠️ [ALERTS] email alert failed for %s: %v", payload.LeadID, err)
			middleware.RecordNotificationError("email")
		}
	}

	if w.Messenger != nil {
		if err := w.Messenger.SendLeadAlert(payload); err != nil {
			log.Printf("⚠️ [ALERTS] whatsapp alert failed for %s: %v", payload.LeadID, err)
			middleware.RecordNotificationError("whatsapp")
		}
	}
}
